package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/mordilloSan/appsettings/bridge/userconfig"
	"github.com/mordilloSan/appsettings/common/ipc"
)

// Command names exposed to the front-end.
const (
	CmdGetConfig     = "get_config"
	CmdSetConfig     = "set_config"
	CmdDeleteConfig  = "delete_config"
	CmdGetConfigPath = "get_config_path"
	CmdUpdateConfig  = "update_config"
)

type handlers struct {
	store *userconfig.Store
}

// ConfigHandlers returns the settings command group backed by store.
func ConfigHandlers(store *userconfig.Store) map[string]ipc.HandlerFunc {
	h := &handlers{store: store}
	return map[string]ipc.HandlerFunc{
		CmdGetConfig:     h.getConfig,
		CmdSetConfig:     h.setConfig,
		CmdDeleteConfig:  h.deleteConfig,
		CmdGetConfigPath: h.getConfigPath,
		CmdUpdateConfig:  h.updateConfig,
	}
}

// RegisterHandlers adds the settings commands to reg.
func RegisterHandlers(reg *ipc.Registry, store *userconfig.Store) {
	reg.RegisterAll(ConfigHandlers(store))
}

func (h *handlers) getConfig(args []string) (any, error) {
	cfg, err := h.store.Load()
	if err != nil {
		return nil, err
	}
	logger.Debugf("[config.get] theme=%s color=%s zoom=%d rail=%v sidebar=%v width=%d",
		cfg.Theme, cfg.Color, cfg.Zoom, cfg.ShowAppRail, cfg.SidebarOpen, cfg.SidebarWidth)
	return cfg, nil
}

func (h *handlers) setConfig(args []string) (any, error) {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return nil, errors.New("bad_request:missing config")
	}
	var in *userconfig.AppConfig
	if err := json.Unmarshal([]byte(args[0]), &in); err != nil {
		return nil, fmt.Errorf("bad_request:invalid config: %v", err)
	}
	if in == nil {
		return nil, errors.New("bad_request:invalid config: null")
	}
	cfg := *in

	if err := h.store.Save(cfg); err != nil {
		return nil, err
	}
	logFindings("config.set", cfg)
	logger.Debugf("[config.set] theme=%s color=%s zoom=%d rail=%v sidebar=%v width=%d",
		cfg.Theme, cfg.Color, cfg.Zoom, cfg.ShowAppRail, cfg.SidebarOpen, cfg.SidebarWidth)
	return nil, nil
}

func (h *handlers) deleteConfig(args []string) (any, error) {
	if err := h.store.Delete(); err != nil {
		return nil, err
	}
	logger.Debugf("[config.delete] settings removed")
	return nil, nil
}

func (h *handlers) getConfigPath(args []string) (any, error) {
	cfgPath, err := h.store.Path()
	if err != nil {
		return nil, err
	}
	logger.Debugf("[config.path] path=%s", cfgPath)
	return cfgPath, nil
}

func (h *handlers) updateConfig(args []string) (any, error) {
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		return nil, errors.New("bad_request:missing patch")
	}
	var in *userconfig.Patch
	if err := json.Unmarshal([]byte(args[0]), &in); err != nil {
		return nil, fmt.Errorf("bad_request:invalid patch: %v", err)
	}
	if in == nil {
		return nil, errors.New("bad_request:invalid patch: null")
	}
	patch := *in

	current, err := h.store.Load()
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return current, nil
	}

	next := patch.Apply(current)
	if err := h.store.Save(next); err != nil {
		return nil, err
	}
	logFindings("config.update", next)
	logger.Debugf("[config.update] theme=%s color=%s zoom=%d rail=%v sidebar=%v width=%d",
		next.Theme, next.Color, next.Zoom, next.ShowAppRail, next.SidebarOpen, next.SidebarWidth)
	return next, nil
}

func logFindings(tag string, cfg userconfig.AppConfig) {
	for _, f := range userconfig.Lint(cfg) {
		logger.Warnf("[%s] %s", tag, f)
	}
}
