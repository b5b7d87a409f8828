package config

import "time"

// Config holds runtime settings for the PetCheck CLI.
//
// Fields:
//   - LookupURL: base URL (http transport) or host:port (grpc transport) of
//     the product lookup service.
//   - LookupTransport: "http" or "grpc".
//   - LookupTimeout: per-request timeout for lookups.
//   - Store: state backend, one of "sqlite", "postgres", "s3", "memory".
//   - DatabasePath: SQLite file used by the sqlite backend.
//   - PostgresDSN: connection string for the postgres backend (pgx).
//   - S3*: bucket settings for the s3 backend; S3Endpoint targets
//     S3-compatible servers such as MinIO.
//   - DefaultProfileName: profile name used until the user picks one.
//   - LogLevel / LogFormat: logging.New parameters.
type Config struct {
	LookupURL       string
	LookupTransport string
	LookupTimeout   time.Duration

	Store        string
	DatabasePath string
	PostgresDSN  string

	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	DefaultProfileName string

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.LookupURL = "http://localhost:5000"
	c.LookupTransport = "http"
	c.LookupTimeout = 10 * time.Second
	c.Store = "sqlite"
	c.DatabasePath = "petcheck.db"
	c.S3Bucket = "petcheck"
	c.S3Prefix = "state/"
	c.S3Region = "us-east-1"
	c.DefaultProfileName = "Sylvie"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
