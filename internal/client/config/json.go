package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/petcheck/internal/flagx"
	"github.com/dmitrijs2005/petcheck/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	LookupURL          string          `json:"lookup_url"`
	LookupTransport    string          `json:"lookup_transport"`
	LookupTimeout      *timex.Duration `json:"lookup_timeout"`
	Store              string          `json:"store"`
	DatabasePath       string          `json:"database_path"`
	PostgresDSN        string          `json:"postgres_dsn"`
	S3Bucket           string          `json:"s3_bucket"`
	S3Prefix           string          `json:"s3_prefix"`
	S3Region           string          `json:"s3_region"`
	S3Endpoint         string          `json:"s3_endpoint"`
	S3AccessKey        string          `json:"s3_access_key"`
	S3SecretKey        string          `json:"s3_secret_key"`
	DefaultProfileName string          `json:"default_profile_name"`
	LogLevel           string          `json:"log_level"`
	LogFormat          string          `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/-config (or PETCHECK_CONFIG). Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.LookupURL, jc.LookupURL)
	setString(&cfg.LookupTransport, jc.LookupTransport)
	if jc.LookupTimeout != nil {
		cfg.LookupTimeout = jc.LookupTimeout.Duration
	}
	setString(&cfg.Store, jc.Store)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.PostgresDSN, jc.PostgresDSN)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.DefaultProfileName, jc.DefaultProfileName)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
