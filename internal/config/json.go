package config

import (
	"encoding/json"
	"os"

	"github.com/caritas-cda/rawload/internal/flagx"
	"github.com/caritas-cda/rawload/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for the timeout field, which allows
// parsing both string values such as "5m" and integer nanoseconds, and a
// *bool for compress so an absent key can be told apart from false.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; its values are copied into the runtime Config.
type JsonConfig struct {
	SourceDir       string          `json:"source_dir"`
	Bucket          string          `json:"bucket"`
	Client          string          `json:"client"`
	RunDate         string          `json:"run_date"`
	Region          string          `json:"region"`
	Profile         string          `json:"profile"`
	Endpoint        string          `json:"endpoint"`
	AccessKeyID     string          `json:"access_key_id"`
	SecretAccessKey string          `json:"secret_access_key"`
	Compress        *bool           `json:"compress"`
	Workers         int             `json:"workers"`
	UploadTimeout   *timex.Duration `json:"upload_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded.
//
// Only keys present in the file override the current values, so JSON can be
// combined freely with defaults and flags. If the file cannot be read or
// contains invalid JSON, the function panics: a requested-but-broken config
// file should never be silently ignored.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.SourceDir != "" {
		config.SourceDir = c.SourceDir
	}
	if c.Bucket != "" {
		config.Bucket = c.Bucket
	}
	if c.Client != "" {
		config.Client = c.Client
	}
	if c.RunDate != "" {
		config.RunDate = c.RunDate
	}
	if c.Region != "" {
		config.Region = c.Region
	}
	if c.Profile != "" {
		config.Profile = c.Profile
	}
	if c.Endpoint != "" {
		config.Endpoint = c.Endpoint
	}
	if c.AccessKeyID != "" {
		config.AccessKeyID = c.AccessKeyID
	}
	if c.SecretAccessKey != "" {
		config.SecretAccessKey = c.SecretAccessKey
	}
	if c.Compress != nil {
		config.Compress = *c.Compress
	}
	if c.Workers != 0 {
		config.Workers = c.Workers
	}
	if c.UploadTimeout != nil {
		config.UploadTimeout = c.UploadTimeout.Duration
	}
}
