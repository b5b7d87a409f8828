package client

import (
	"fmt"

	"github.com/dmitrijs2005/petcheck/internal/client/config"
	"github.com/dmitrijs2005/petcheck/internal/common"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// NewLookupClient builds the lookup transport selected by cfg.LookupTransport.
// For grpc, LookupURL is a dial target such as "localhost:5001".
func NewLookupClient(cfg *config.Config) (Client, error) {
	switch cfg.LookupTransport {
	case TransportHTTP, "":
		return NewHTTPClient(cfg.LookupURL, cfg.LookupTimeout)
	case TransportGRPC:
		return NewGRPCClient(cfg.LookupURL, cfg.LookupTimeout)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnknownTransport, cfg.LookupTransport)
	}
}
