package userconfig

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppDirPrefersOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom")
	t.Setenv(HomeEnv, filepath.Join(t.TempDir(), "ignored"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "ignored-too"))

	dir, err := AppDir{Identifier: "com.example.app", Override: override}.AppConfigDir()
	require.NoError(t, err)
	assert.Equal(t, override, dir)
}

func TestAppDirPrefersHomeEnv(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv(HomeEnv, home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "ignored"))

	dir, err := AppDir{Identifier: "com.example.app"}.AppConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)
}

func TestAppDirUsesXDGConfigHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := AppDir{Identifier: "com.example.app"}.AppConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "com.example.app"), dir)
}

func TestAppDirRelativeOverrideIsAbsolute(t *testing.T) {
	dir, err := AppDir{Identifier: "x", Override: "relative/dir"}.AppConfigDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "dir", filepath.Base(dir))
}

func TestAppDirRejectsBadIdentifier(t *testing.T) {
	t.Setenv(HomeEnv, "")
	for _, id := range []string{"", "   ", "a/b", `a\b`, "..", "."} {
		_, err := AppDir{Identifier: id}.AppConfigDir()
		assert.Error(t, err, "identifier %q", id)
	}
}

func TestAppDirFailureSurfacesAsConfigDirUnavailable(t *testing.T) {
	t.Setenv(HomeEnv, "")
	store := NewStore(AppDir{})

	_, err := store.Path()
	require.Error(t, err)
	assert.Equal(t, ConfigDirUnavailable, KindOf(err))
}

func TestDirFuncNil(t *testing.T) {
	var f DirFunc
	_, err := f.AppConfigDir()
	assert.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	inner := errors.New("disk on fire")
	err := newError(WriteError, "/tmp/x/settings.json", inner)

	assert.Equal(t, "write config /tmp/x/settings.json: disk on fire", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, WriteError, KindOf(err))
	assert.Equal(t, "write_error", WriteError.String())

	wrapped := errors.Join(errors.New("outer"), err)
	assert.True(t, IsKind(wrapped, WriteError))

	assert.Equal(t, KindUnknown, KindOf(inner))
	assert.False(t, IsKind(nil, KindUnknown))
	assert.Equal(t, "unknown", Kind(99).String())

	noPath := newError(ConfigDirUnavailable, "", inner)
	assert.Equal(t, "get config dir: disk on fire", noPath.Error())
}
