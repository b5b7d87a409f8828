// Package client contains the client-side plumbing around the session:
// the lookup service contract and its transports, and the state storage
// bootstrap.
//
// # Overview
//
//  1. A transport-agnostic contract (see the Client interface) for the
//     product lookup service: CheckCode for typed or scanned barcodes and
//     CheckImage for photographed ones.
//  2. Two implementations: HTTPClient (JSON and multipart over net/http) and
//     GRPCClient (google.protobuf.Struct messages over a grpc connection).
//     NewLookupClient picks one from configuration.
//  3. Storage bootstrap (OpenStorage, RunMigrations) that opens the configured
//     state backend and applies embedded goose migrations for SQL backends.
//
// # Error Handling
//
// A rejection by the service is returned as *ServiceError and carries the
// text to show the user. Anything else that prevents an answer (network
// failures, timeouts, unreadable replies) wraps ErrUnavailable; match it with
// errors.Is.
//
// Concurrency & Contexts
//
// Both transports are safe for concurrent use. All calls honor the context;
// the configured timeout applies when the context has no deadline of its own.
package client
