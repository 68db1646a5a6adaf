package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the optional single-file configuration schema. It
// supplies defaults for settings that are usually stable across runs; flags
// always win over it.
type FileConfig struct {
	Dest    string `yaml:"dest" json:"dest"`
	Tag     string `yaml:"tag" json:"tag"`
	Command string `yaml:"command" json:"command"`

	NoDefaultOptions bool `yaml:"noDefaultOptions" json:"noDefaultOptions"`
	NFCNames         bool `yaml:"nfcNames" json:"nfcNames"`
	Verbose          bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig. Extension decides the
// format; without a recognized extension YAML is tried first, then JSON.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields that
// are currently unset. Flags should already have been parsed; this lets the
// file supply defaults while preserving anything given explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.DestDir == "" && fc.Dest != "" {
		cfg.DestDir = fc.Dest
	}
	if cfg.Tag == "" && fc.Tag != "" {
		cfg.Tag = fc.Tag
	}
	if cfg.Command == "" && fc.Command != "" {
		cfg.Command = fc.Command
	}
	if fc.NoDefaultOptions {
		cfg.NoDefaultOptions = true
	}
	if fc.NFCNames {
		cfg.NFCNames = true
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
