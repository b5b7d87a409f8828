// Package state provides the durable key/value store behind the session.
//
// # Overview
//
// Repository is the Persistence Adapter used by the session service: string
// keys, opaque byte values, complete overwrites on Set. Get reports a missing
// key as common.ErrorNotFound so callers can tell "absent" from "empty".
//
// Implementations
//
//   - SQLiteRepository   : local file via modernc.org/sqlite (default)
//   - PostgresRepository : shared database via pgx's database/sql driver
//   - S3Repository       : one object per key in an S3-compatible bucket
//   - MemoryRepository   : process-local map, for tests and demos
//
// The SQL schemas are created by goose migrations, see
// internal/client/migrations.
//
// # Concurrency
//
// All implementations are safe for concurrent use.
package state
