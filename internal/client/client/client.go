package client

import (
	"context"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
)

// CodeQuery asks whether the product behind Code is safe for Species.
type CodeQuery struct {
	Code    string
	Species models.Species
}

type CodeResult struct {
	Message string
	Verdict models.Verdict
}

// ImageQuery carries a photographed barcode. Image holds the encoded picture
// (JPEG, PNG, ...) exactly as read from disk.
type ImageQuery struct {
	Image   []byte
	Species models.Species
}

// ImageResult is a CodeResult plus the code the service decoded from the image.
type ImageResult struct {
	Code    string
	Message string
	Verdict models.Verdict
}

type Client interface {
	Close() error
	CheckCode(ctx context.Context, q CodeQuery) (CodeResult, error)
	CheckImage(ctx context.Context, q ImageQuery) (ImageResult, error)
}
