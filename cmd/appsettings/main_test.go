package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mordilloSan/appsettings/bridge/userconfig"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func TestCLIScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "settings")
	want := userconfig.AppConfig{Theme: "dark", Color: "blue", Zoom: 100, ShowAppRail: true, SidebarOpen: false, SidebarWidth: 240}
	doc, err := json.Marshal(want)
	require.NoError(t, err)

	code, out, _ := runCLI(t, "", "--dir", dir, "get")
	require.Equal(t, exitOK, code)
	var got userconfig.AppConfig
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, userconfig.Default(), got)

	code, out, stderr := runCLI(t, "", "--dir", dir, "set", string(doc))
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, out)

	code, out, _ = runCLI(t, "", "--dir", dir, "get")
	require.Equal(t, exitOK, code)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, want, got)

	code, out, _ = runCLI(t, "", "--dir", dir, "path")
	require.Equal(t, exitOK, code)
	assert.Equal(t, filepath.Join(dir, "settings.json"), strings.TrimSpace(out))

	code, _, _ = runCLI(t, "", "--dir", dir, "delete")
	require.Equal(t, exitOK, code)
	_, err = os.Stat(filepath.Join(dir, "settings.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCLISetFromStdin(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCLI(t, `{"theme":"light","zoom":90}`, "--dir", dir, "set", "-")
	require.Equal(t, exitOK, code, stderr)

	code, out, stderr := runCLI(t, `{"zoom":110}`, "--dir", dir, "update", "-")
	require.Equal(t, exitOK, code, stderr)
	var got userconfig.AppConfig
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, int32(110), got.Zoom)
}

func TestCLIErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("no_command", func(t *testing.T) {
		code, _, stderr := runCLI(t, "")
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr, "Usage:")
	})

	t.Run("unknown_command", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "--dir", dir, "wat")
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr, `unknown command "wat"`)
	})

	t.Run("set_without_arg", func(t *testing.T) {
		code, _, _ := runCLI(t, "", "--dir", dir, "set")
		assert.Equal(t, exitUsage, code)
	})

	t.Run("invalid_json", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "--dir", dir, "set", "{nope")
		assert.Equal(t, exitFail, code)
		assert.Contains(t, stderr, "bad_request:invalid config")
	})

	t.Run("malformed_file", func(t *testing.T) {
		bad := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(bad, "settings.json"), []byte("{"), 0o644))
		code, _, stderr := runCLI(t, "", "--dir", bad, "get")
		assert.Equal(t, exitFail, code)
		assert.Contains(t, stderr, "parse config")
	})

	t.Run("missing_host_file", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", "--config", filepath.Join(dir, "host.yaml"), "get")
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr, "not found")
	})
}

func TestCLICommandsAndVersion(t *testing.T) {
	code, out, _ := runCLI(t, "", "--dir", t.TempDir(), "commands")
	require.Equal(t, exitOK, code)
	assert.Equal(t, []string{"delete_config", "get_config", "get_config_path", "set_config", "update_config"},
		strings.Fields(out))

	code, out, _ = runCLI(t, "", "version")
	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "appsettings "))
}

func TestCLIShow(t *testing.T) {
	dir := t.TempDir()
	code, out, _ := runCLI(t, "", "--dir", dir, "show")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "defaults (no file)")

	code, _, _ = runCLI(t, "", "--dir", dir, "set", `{"theme":"neon","zoom":-5}`)
	require.Equal(t, exitOK, code)

	code, out, _ = runCLI(t, "", "--dir", dir, "show")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "saved")
	assert.Contains(t, out, "neon")
	assert.Contains(t, out, filepath.Join(dir, "settings.json"))
	assert.Contains(t, out, "!")
}
