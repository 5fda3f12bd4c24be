package config

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/doccatalog/internal/flagx"
	"github.com/dmitrijs2005/doccatalog/internal/timex"
)

// fileConfig is the on-disk shape of Config. Absent fields leave the
// current value untouched.
type fileConfig struct {
	BaseURL        string          `json:"base_url" yaml:"base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	AutoConfirm    *bool           `json:"auto_confirm" yaml:"auto_confirm"`
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

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.AutoConfirm != nil {
		cfg.AutoConfirm = *fc.AutoConfirm
	}
	return nil
}
