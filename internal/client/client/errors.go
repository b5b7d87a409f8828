package client

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
)

var ErrUnavailable = errors.New("lookup service unavailable")

// ServiceError is a rejection reported by the lookup service itself, for
// example an unknown barcode or an unreadable image. Message is the text the
// service sent and is meant to be shown to the user as is.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// legacySafeMarker is how older servers flag a safe product inside the
// free-text result.
const legacySafeMarker = "✅"

// verdictOf prefers the explicit safe flag and falls back to the legacy marker.
func verdictOf(message string, safe *bool) models.Verdict {
	if safe != nil {
		return models.VerdictFromBool(*safe)
	}
	if message == "" {
		return models.VerdictUnknown
	}
	return models.VerdictFromBool(strings.Contains(message, legacySafeMarker))
}
