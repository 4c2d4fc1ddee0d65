package userconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// HomeEnv overrides the resolved config directory when set.
const HomeEnv = "APPSETTINGS_HOME"

// DirResolver supplies the per-user application config directory.
type DirResolver interface {
	AppConfigDir() (string, error)
}

// DirFunc adapts a plain function to DirResolver.
type DirFunc func() (string, error)

func (f DirFunc) AppConfigDir() (string, error) {
	if f == nil {
		return "", errors.New("no config dir resolver")
	}
	return f()
}

// StaticDir always resolves to dir.
func StaticDir(dir string) DirResolver {
	return DirFunc(func() (string, error) { return absDir(dir) })
}

// AppDir resolves <config-home>/<Identifier>.
//
// Precedence:
//  1. Override, when non-empty
//  2. $APPSETTINGS_HOME
//  3. $XDG_CONFIG_HOME/<Identifier>
//  4. xdg.ConfigHome/<Identifier> (platform default)
type AppDir struct {
	Identifier string
	Override   string
}

func (d AppDir) AppConfigDir() (string, error) {
	if o := strings.TrimSpace(d.Override); o != "" {
		return absDir(o)
	}
	if env := strings.TrimSpace(os.Getenv(HomeEnv)); env != "" {
		dir, err := absDir(env)
		if err != nil {
			return "", fmt.Errorf("resolve %s %q: %w", HomeEnv, env, err)
		}
		return dir, nil
	}

	id := strings.TrimSpace(d.Identifier)
	if id == "" {
		return "", errors.New("empty app identifier")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid app identifier %q", id)
	}

	// XDG_CONFIG_HOME is read on every call; xdg.ConfigHome is captured at
	// package init and goes stale when the environment changes.
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" || !filepath.IsAbs(base) {
		base = strings.TrimSpace(xdg.ConfigHome)
	}
	if base == "" {
		return "", errors.New("config home not found")
	}
	return absDir(filepath.Join(base, id))
}

func absDir(dir string) (string, error) {
	dir = filepath.Clean(dir)
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	return filepath.Abs(dir)
}
