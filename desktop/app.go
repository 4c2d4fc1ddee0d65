// Package desktop exposes the settings commands as Wails-bound methods. Each
// method forwards to the shared dispatcher so the desktop front-end sees the
// same results and error strings as the web relay.
package desktop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mordilloSan/go-logger/logger"

	cfgcmd "github.com/mordilloSan/appsettings/bridge/handlers/config"
	"github.com/mordilloSan/appsettings/bridge/userconfig"
	"github.com/mordilloSan/appsettings/common/ipc"
)

const transport = "desktop"

var errNotReady = errors.New("desktop app not initialised")

// App is bound into the Wails runtime.
type App struct {
	ctx        context.Context
	dispatcher *ipc.Dispatcher

	// OnChange, when set, is called with the stored record after every
	// successful write. Delete reports Default().
	OnChange func(ctx context.Context, cfg userconfig.AppConfig)
}

// NewApp creates a new App bound to d.
func NewApp(d *ipc.Dispatcher) *App {
	return &App{ctx: context.Background(), dispatcher: d}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	logger.Debugf("[desktop] startup")
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	logger.Debugf("[desktop] shutdown")
}

// GetConfig returns the stored settings, or defaults when none are saved.
func (a *App) GetConfig() (userconfig.AppConfig, error) {
	var cfg userconfig.AppConfig
	resp := a.invoke(cfgcmd.CmdGetConfig)
	if err := resp.Decode(&cfg); err != nil {
		return userconfig.AppConfig{}, err
	}
	return cfg, nil
}

// SetConfig replaces the stored settings.
func (a *App) SetConfig(cfg userconfig.AppConfig) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := a.invoke(cfgcmd.CmdSetConfig, string(doc)).Decode(nil); err != nil {
		return err
	}
	a.changed(cfg)
	return nil
}

// UpdateConfig merges patch into the stored settings and returns the result.
func (a *App) UpdateConfig(patch userconfig.Patch) (userconfig.AppConfig, error) {
	doc, err := json.Marshal(patch)
	if err != nil {
		return userconfig.AppConfig{}, fmt.Errorf("serialize patch: %w", err)
	}
	var cfg userconfig.AppConfig
	if err := a.invoke(cfgcmd.CmdUpdateConfig, string(doc)).Decode(&cfg); err != nil {
		return userconfig.AppConfig{}, err
	}
	if !patch.Empty() {
		a.changed(cfg)
	}
	return cfg, nil
}

// DeleteConfig removes the settings file. A missing file is not an error.
func (a *App) DeleteConfig() error {
	if err := a.invoke(cfgcmd.CmdDeleteConfig).Decode(nil); err != nil {
		return err
	}
	a.changed(userconfig.Default())
	return nil
}

// GetConfigPath returns the absolute settings file path.
func (a *App) GetConfigPath() (string, error) {
	var p string
	if err := a.invoke(cfgcmd.CmdGetConfigPath).Decode(&p); err != nil {
		return "", err
	}
	return p, nil
}

func (a *App) invoke(command string, args ...string) ipc.Response {
	if a == nil || a.dispatcher == nil {
		return ipc.Response{Status: ipc.StatusError, Error: errNotReady.Error()}
	}
	return a.dispatcher.Invoke(a.ctx, transport, command, args...)
}

func (a *App) changed(cfg userconfig.AppConfig) {
	if a.OnChange != nil {
		a.OnChange(a.ctx, cfg)
	}
}
