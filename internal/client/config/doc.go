// Package config loads runtime configuration for the PetCheck CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c / -config or the
//     PETCHECK_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string            lookup service address
//	-t string            lookup transport (http | grpc)
//	-timeout int         lookup timeout (seconds)
//	-store string        state backend (sqlite | postgres | s3 | memory)
//	-db string           sqlite database file
//	-dsn string          postgres connection string
//	-s3-bucket string    s3 bucket
//	-s3-prefix string    s3 key prefix
//	-s3-region string    s3 region
//	-s3-endpoint string  s3-compatible endpoint
//	-name string         default profile name
//	-log-level string    debug | info | warn | error
//	-log-format string   text | json
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "lookup_url": "http://localhost:5000",
//	  "lookup_transport": "http",
//	  "lookup_timeout": "10s",
//	  "store": "s3",
//	  "s3_bucket": "petcheck",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// S3 credentials are only read from JSON so they stay out of shell history.
package config
