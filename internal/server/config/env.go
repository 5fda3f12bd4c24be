package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// MapLookup adapts a map, e.g. the result of godotenv.Read, to LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// parseEnv overlays Config with CATALOG_* variables.
func parseEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}

	strs := map[string]*string{
		"CATALOG_LISTEN_ADDR":      &cfg.ListenAddr,
		"CATALOG_STORAGE":          &cfg.Storage,
		"CATALOG_BOLT_PATH":        &cfg.BoltPath,
		"CATALOG_DATABASE_DSN":     &cfg.DatabaseDSN,
		"CATALOG_LOG_LEVEL":        &cfg.LogLevel,
		"CATALOG_S3_ROOT_USER":     &cfg.S3RootUser,
		"CATALOG_S3_ROOT_PASSWORD": &cfg.S3RootPassword,
		"CATALOG_S3_BUCKET":        &cfg.S3Bucket,
		"CATALOG_S3_REGION":        &cfg.S3Region,
		"CATALOG_S3_BASE_ENDPOINT": &cfg.S3BaseEndpoint,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("CATALOG_MAX_UPLOAD_SIZE_MB"); ok && v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: CATALOG_MAX_UPLOAD_SIZE_MB=%q", ErrInvalidConfig, v)
		}
		cfg.MaxUploadSize = mb << 20
	}

	if v, ok := lookup("CATALOG_SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: CATALOG_SHUTDOWN_TIMEOUT=%q", ErrInvalidConfig, v)
		}
		cfg.ShutdownTimeout = d
	}

	if v, ok := lookup("CATALOG_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: CATALOG_REQUEST_TIMEOUT=%q", ErrInvalidConfig, v)
		}
		cfg.RequestTimeout = d
	}

	if v, ok := lookup("CATALOG_CORS_ORIGINS"); ok && v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	return nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
