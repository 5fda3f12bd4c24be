package config

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/doccatalog/internal/flagx"
	"github.com/dmitrijs2005/doccatalog/internal/timex"
)

// fileConfig is the on-disk shape of Config, shared by JSON and YAML.
// Empty values leave the current setting untouched.
type fileConfig struct {
	ListenAddr      string          `json:"listen_addr" yaml:"listen_addr"`
	Storage         string          `json:"storage" yaml:"storage"`
	BoltPath        string          `json:"bolt_path" yaml:"bolt_path"`
	DatabaseDSN     string          `json:"database_dsn" yaml:"database_dsn"`
	MaxUploadSizeMB int64           `json:"max_upload_size_mb" yaml:"max_upload_size_mb"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	RequestTimeout  *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	CORSOrigins     []string        `json:"cors_origins" yaml:"cors_origins"`
	LogLevel        string          `json:"log_level" yaml:"log_level"`
	S3RootUser      string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword  string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket        string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region        string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if flagx.IsYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	setString(&cfg.ListenAddr, fc.ListenAddr)
	setString(&cfg.Storage, fc.Storage)
	setString(&cfg.BoltPath, fc.BoltPath)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	if fc.MaxUploadSizeMB > 0 {
		cfg.MaxUploadSize = fc.MaxUploadSizeMB << 20
	}
	if fc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if len(fc.CORSOrigins) > 0 {
		cfg.CORSOrigins = fc.CORSOrigins
	}
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.S3RootUser, fc.S3RootUser)
	setString(&cfg.S3RootPassword, fc.S3RootPassword)
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
