package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mordilloSan/appsettings/bridge/userconfig"
	"github.com/mordilloSan/appsettings/common/ipc"
)

func newTestDispatcher(t *testing.T) (*ipc.Dispatcher, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "com.example.app")
	reg := ipc.NewRegistry()
	RegisterHandlers(reg, userconfig.NewStore(userconfig.StaticDir(dir)))
	return ipc.NewDispatcher(reg, nil), dir
}

const sampleJSON = `{"theme":"dark","color":"blue","zoom":100,"show_app_rail":true,"sidebar_open":false,"sidebar_width":240}`

func TestConfigCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("get_defaults_when_absent", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		resp := d.Invoke(ctx, "test", CmdGetConfig)
		require.True(t, resp.OK(), resp.Error)

		var cfg userconfig.AppConfig
		require.NoError(t, resp.Decode(&cfg))
		assert.Equal(t, userconfig.Default(), cfg)
	})

	t.Run("set_then_get", func(t *testing.T) {
		d, dir := newTestDispatcher(t)
		resp := d.Invoke(ctx, "test", CmdSetConfig, sampleJSON)
		require.True(t, resp.OK(), resp.Error)
		assert.Empty(t, resp.Output)

		resp = d.Invoke(ctx, "test", CmdGetConfig)
		require.True(t, resp.OK(), resp.Error)
		assert.JSONEq(t, sampleJSON, string(resp.Output))

		_, err := os.Stat(filepath.Join(dir, "settings.json"))
		assert.NoError(t, err)
	})

	t.Run("set_rejects_missing_and_malformed_payload", func(t *testing.T) {
		d, dir := newTestDispatcher(t)

		resp := d.Invoke(ctx, "test", CmdSetConfig)
		assert.False(t, resp.OK())
		assert.True(t, strings.HasPrefix(resp.Error, "bad_request:"), resp.Error)

		resp = d.Invoke(ctx, "test", CmdSetConfig, `{"theme":`)
		assert.False(t, resp.OK())
		assert.True(t, strings.HasPrefix(resp.Error, "bad_request:invalid config"), resp.Error)

		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err), "rejected payload must not touch disk")
	})

	t.Run("set_rejects_null", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		require.True(t, d.Invoke(ctx, "test", CmdSetConfig, sampleJSON).OK())

		for _, payload := range []string{"null", " null \n"} {
			resp := d.Invoke(ctx, "test", CmdSetConfig, payload)
			assert.False(t, resp.OK())
			assert.True(t, strings.HasPrefix(resp.Error, "bad_request:invalid config"), resp.Error)
		}

		resp := d.Invoke(ctx, "test", CmdGetConfig)
		require.True(t, resp.OK(), resp.Error)
		assert.JSONEq(t, sampleJSON, string(resp.Output))
	})

	t.Run("update_rejects_null", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		require.True(t, d.Invoke(ctx, "test", CmdSetConfig, sampleJSON).OK())

		resp := d.Invoke(ctx, "test", CmdUpdateConfig, "null")
		assert.False(t, resp.OK())
		assert.True(t, strings.HasPrefix(resp.Error, "bad_request:invalid patch"), resp.Error)

		resp = d.Invoke(ctx, "test", CmdGetConfig)
		assert.JSONEq(t, sampleJSON, string(resp.Output))
	})

	t.Run("set_rejects_out_of_range_numbers", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		require.True(t, d.Invoke(ctx, "test", CmdSetConfig, sampleJSON).OK())

		resp := d.Invoke(ctx, "test", CmdSetConfig, `{"zoom":3000000000}`)
		assert.False(t, resp.OK())
		assert.Contains(t, resp.Error, "bad_request:invalid config")

		resp = d.Invoke(ctx, "test", CmdUpdateConfig, `{"sidebar_width":-3000000000}`)
		assert.False(t, resp.OK())
		assert.Contains(t, resp.Error, "bad_request:invalid patch")

		resp = d.Invoke(ctx, "test", CmdGetConfig)
		assert.JSONEq(t, sampleJSON, string(resp.Output))
	})

	t.Run("delete_is_idempotent", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		require.True(t, d.Invoke(ctx, "test", CmdSetConfig, sampleJSON).OK())

		assert.True(t, d.Invoke(ctx, "test", CmdDeleteConfig).OK())
		assert.True(t, d.Invoke(ctx, "test", CmdDeleteConfig).OK())

		resp := d.Invoke(ctx, "test", CmdGetConfig)
		var cfg userconfig.AppConfig
		require.NoError(t, resp.Decode(&cfg))
		assert.Equal(t, userconfig.Default(), cfg)
	})

	t.Run("get_path", func(t *testing.T) {
		d, dir := newTestDispatcher(t)
		resp := d.Invoke(ctx, "test", CmdGetConfigPath)
		require.True(t, resp.OK(), resp.Error)

		var p string
		require.NoError(t, resp.Decode(&p))
		assert.Equal(t, filepath.Join(dir, "settings.json"), p)

		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err), "path lookup must not touch the filesystem")
	})

	t.Run("update_merges_over_current", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		require.True(t, d.Invoke(ctx, "test", CmdSetConfig, sampleJSON).OK())

		resp := d.Invoke(ctx, "test", CmdUpdateConfig, `{"theme":"light","sidebar_open":true}`)
		require.True(t, resp.OK(), resp.Error)

		var merged userconfig.AppConfig
		require.NoError(t, resp.Decode(&merged))
		assert.Equal(t, userconfig.AppConfig{
			Theme: "light", Color: "blue", Zoom: 100, ShowAppRail: true, SidebarOpen: true, SidebarWidth: 240,
		}, merged)

		var stored userconfig.AppConfig
		require.NoError(t, d.Invoke(ctx, "test", CmdGetConfig).Decode(&stored))
		assert.Equal(t, merged, stored)
	})

	t.Run("update_empty_patch_does_not_write", func(t *testing.T) {
		d, dir := newTestDispatcher(t)
		resp := d.Invoke(ctx, "test", CmdUpdateConfig, `{}`)
		require.True(t, resp.OK(), resp.Error)
		assert.JSONEq(t, `{"theme":"","color":"","zoom":0,"show_app_rail":false,"sidebar_open":false,"sidebar_width":0}`, string(resp.Output))

		_, err := os.Stat(dir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("update_rejects_bad_patch", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		assert.False(t, d.Invoke(ctx, "test", CmdUpdateConfig).OK())
		resp := d.Invoke(ctx, "test", CmdUpdateConfig, `{"zoom":"wide"}`)
		assert.False(t, resp.OK())
		assert.Contains(t, resp.Error, "bad_request:invalid patch")
	})

	t.Run("store_errors_are_flattened", func(t *testing.T) {
		d, dir := newTestDispatcher(t)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("not json"), 0o644))

		resp := d.Invoke(ctx, "test", CmdGetConfig)
		assert.False(t, resp.OK())
		assert.Contains(t, resp.Error, "parse config")
	})

	t.Run("lint_findings_do_not_reject", func(t *testing.T) {
		d, _ := newTestDispatcher(t)
		resp := d.Invoke(ctx, "test", CmdSetConfig, `{"theme":"neon","zoom":-1}`)
		assert.True(t, resp.OK(), resp.Error)
	})
}

func TestConfigHandlersNames(t *testing.T) {
	group := ConfigHandlers(userconfig.NewStore(userconfig.StaticDir(t.TempDir())))
	for _, name := range []string{CmdGetConfig, CmdSetConfig, CmdDeleteConfig, CmdGetConfigPath, CmdUpdateConfig} {
		assert.Contains(t, group, name)
	}
}
