// Package config loads runtime configuration for the rawload CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Only keys present in the file take effect. The timeout accepts duration
// strings or integer nanoseconds:
//
//	{
//	  "source_dir": "./data",
//	  "bucket": "cda-raw-dev",
//	  "client": "wise",
//	  "region": "eu-west-2",
//	  "profile": "cda",
//	  "compress": true,
//	  "workers": 4,
//	  "upload_timeout": "5m"
//	}
//
// Primary API
//
//   - type Config                     — all settings for one run
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) Validate() error — fatal configuration checks before any upload
//
// Note: This package does not read environment variables directly; the AWS
// SDK's own environment and shared-config resolution still applies to
// anything not set here.
package config
