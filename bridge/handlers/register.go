package handlers

import (
	"github.com/mordilloSan/appsettings/bridge/handlers/config"
	"github.com/mordilloSan/appsettings/bridge/userconfig"
	"github.com/mordilloSan/appsettings/common/ipc"
	"github.com/mordilloSan/appsettings/common/telemetry"
)

// RegisterAllHandlers wires every command group onto reg.
func RegisterAllHandlers(reg *ipc.Registry, store *userconfig.Store) {
	config.RegisterHandlers(reg, store)
}

// NewDispatcher builds a registry holding every command group and wraps it in
// a dispatcher. inst may be nil.
func NewDispatcher(store *userconfig.Store, inst *telemetry.CommandInstruments) *ipc.Dispatcher {
	reg := ipc.NewRegistry()
	RegisterAllHandlers(reg, store)
	return ipc.NewDispatcher(reg, inst)
}
