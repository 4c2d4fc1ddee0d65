package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Host is the optional host configuration file shared by every entrypoint.
type Host struct {
	AppID     string    `yaml:"app_id" toml:"app_id"`
	ConfigDir string    `yaml:"config_dir" toml:"config_dir"` // absolute path; overrides the resolved dir
	Port      int       `yaml:"port" toml:"port"`
	Verbose   bool      `yaml:"verbose" toml:"verbose"`
	Telemetry Telemetry `yaml:"telemetry" toml:"telemetry"`
}

type Telemetry struct {
	Traces  bool `yaml:"traces" toml:"traces"`
	Metrics bool `yaml:"metrics" toml:"metrics"`
}

// DefaultHost returns the values used when no host file is given.
func DefaultHost() Host {
	return Host{
		AppID: DefaultAppIdentifier,
		Port:  DefaultPort,
	}
}

// LoadHost reads path and overlays it on DefaultHost. An empty path returns
// the defaults. Files ending in .toml are decoded as TOML, everything else as
// YAML. Unknown keys are rejected in both formats.
func LoadHost(path string) (Host, error) {
	cfg := DefaultHost()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("host config %s not found", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("read host config: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return DefaultHost(), describeTOMLError(err, path)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(b), yaml.Strict())
		if err := dec.Decode(&cfg); err != nil {
			return DefaultHost(), describeYAMLError(err, path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return DefaultHost(), fmt.Errorf("host config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that would otherwise fail late.
func (h Host) Validate() error {
	var errs []error
	if strings.TrimSpace(h.AppID) == "" {
		errs = append(errs, errors.New("app_id cannot be empty"))
	}
	if h.Port <= 0 || h.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range (1-65535)", h.Port))
	}
	return errors.Join(errs...)
}

// describeYAMLError adds line/column information from goccy/go-yaml when
// available.
func describeYAMLError(err error, path string) error {
	var syntaxErr *yaml.SyntaxError
	if errors.As(err, &syntaxErr) {
		if tok := syntaxErr.GetToken(); tok != nil {
			return fmt.Errorf("host config error in %s at line %d, column %d: %s",
				path, tok.Position.Line, tok.Position.Column, syntaxErr.GetMessage())
		}
		return fmt.Errorf("host config error in %s: %s", path, syntaxErr.GetMessage())
	}
	return fmt.Errorf("host config error in %s: %w", path, err)
}

func describeTOMLError(err error, path string) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("host config error in %s at line %d, column %d: %s", path, row, col, decodeErr.Error())
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return fmt.Errorf("host config error in %s: %s", path, strictErr.String())
	}
	return fmt.Errorf("host config error in %s: %w", path, err)
}
