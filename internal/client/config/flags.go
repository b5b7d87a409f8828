package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/petcheck/internal/flagx"
)

var knownFlags = []string{
	"-a", "-t", "-timeout",
	"-store", "-db", "-dsn",
	"-s3-bucket", "-s3-prefix", "-s3-region", "-s3-endpoint",
	"-name", "-log-level", "-log-format",
}

// parseFlags populates Config fields from command-line flags. Only the flags
// listed in knownFlags are looked at, so the config-file flags handled by
// flagx do not trip this flag set. Invalid values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("petcheck", flag.ContinueOnError)

	fs.StringVar(&cfg.LookupURL, "a", cfg.LookupURL, "lookup service address")
	fs.StringVar(&cfg.LookupTransport, "t", cfg.LookupTransport, "lookup transport: http or grpc")
	timeout := fs.Int("timeout", int(cfg.LookupTimeout.Seconds()), "lookup timeout (in seconds)")

	fs.StringVar(&cfg.Store, "store", cfg.Store, "state backend: sqlite, postgres, s3 or memory")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "sqlite database file")
	fs.StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "postgres connection string")

	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "s3 bucket for state")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "s3 key prefix for state")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "s3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "s3-compatible endpoint URL")

	fs.StringVar(&cfg.DefaultProfileName, "name", cfg.DefaultProfileName, "default profile name")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LookupTimeout = time.Duration(*timeout) * time.Second
}
