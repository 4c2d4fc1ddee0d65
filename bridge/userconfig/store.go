// Package userconfig persists the application settings record as JSON in the
// per-user application config directory.
package userconfig

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	cfgFileName = "settings.json"
	filePerm    = 0o644 // file:  rw-r--r--
	dirPerm     = 0o755 // dir:   rwxr-xr-x
)

// Store persists a single AppConfig at <app-config-dir>/settings.json.
// It keeps no state between calls; the file is the source of truth.
type Store struct {
	dirs DirResolver
}

// NewStore returns a Store that resolves its directory through dirs.
func NewStore(dirs DirResolver) *Store {
	return &Store{dirs: dirs}
}

func (s *Store) dir() (string, error) {
	if s == nil || s.dirs == nil {
		return "", newError(ConfigDirUnavailable, "", errors.New("no config dir resolver"))
	}
	dir, err := s.dirs.AppConfigDir()
	if err != nil {
		return "", newError(ConfigDirUnavailable, "", err)
	}
	if dir == "" {
		return "", newError(ConfigDirUnavailable, "", errors.New("empty config dir"))
	}
	dir, err = absDir(dir)
	if err != nil {
		return "", newError(ConfigDirUnavailable, "", err)
	}
	return dir, nil
}

// Path returns the absolute settings file path without touching the file.
func (s *Store) Path() (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cfgFileName), nil
}

// Load reads the settings file. A missing file yields Default() and no error.
func (s *Store) Load() (AppConfig, error) {
	cfgPath, err := s.Path()
	if err != nil {
		return Default(), err
	}
	data, err := os.ReadFile(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), newError(ReadError, cfgPath, err)
	}
	cfg, err := decodeConfig(data)
	if err != nil {
		return Default(), newError(DecodeError, cfgPath, err)
	}
	return cfg, nil
}

// Save replaces the settings file with cfg, creating the directory if needed.
func (s *Store) Save(cfg AppConfig) error {
	dir, err := s.dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return newError(DirCreateError, dir, err)
	}
	cfgPath := filepath.Join(dir, cfgFileName)
	data, err := encodeConfig(cfg)
	if err != nil {
		return newError(EncodeError, cfgPath, err)
	}
	if err := writeFileAtomic(cfgPath, data, filePerm); err != nil {
		return newError(WriteError, cfgPath, err)
	}
	return nil
}

// Delete removes the settings file. Deleting a missing file succeeds; a
// directory in its place is a DeleteError.
func (s *Store) Delete() error {
	cfgPath, err := s.Path()
	if err != nil {
		return err
	}
	info, err := os.Lstat(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return newError(DeleteError, cfgPath, err)
	}
	if info.IsDir() {
		return newError(DeleteError, cfgPath, errors.New("is a directory"))
	}
	if err := os.Remove(cfgPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return newError(DeleteError, cfgPath, err)
	}
	return nil
}

func decodeConfig(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func encodeConfig(cfg AppConfig) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

// Exists reports whether the settings file is present as a regular file.
func (s *Store) Exists() (bool, error) {
	cfgPath, err := s.Path()
	if err != nil {
		return false, err
	}
	ok, err := CheckConfig(cfgPath)
	if err != nil {
		return false, newError(ReadError, cfgPath, err)
	}
	return ok, nil
}
