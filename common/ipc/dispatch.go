package ipc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/mordilloSan/appsettings/common/telemetry"
)

// Dispatcher runs requests against a Registry and flattens every failure to
// the Response.Error string.
type Dispatcher struct {
	reg  *Registry
	inst *telemetry.CommandInstruments
}

// NewDispatcher builds a dispatcher. inst may be nil.
func NewDispatcher(reg *Registry, inst *telemetry.CommandInstruments) *Dispatcher {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Dispatcher{reg: reg, inst: inst}
}

// Registry exposes the underlying registry.
func (d *Dispatcher) Registry() *Registry {
	return d.reg
}

// Dispatch executes req. transport labels telemetry and logs ("ws", "http",
// "desktop", "cli").
func (d *Dispatcher) Dispatch(ctx context.Context, transport string, req Request) (resp Response) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	resp.ID = req.ID

	h, _ := d.inst.Start(ctx, req.Command, transport)
	defer func() {
		d.inst.Finish(h, resp.Error)
	}()

	handler, ok := d.reg.Get(req.Command)
	if !ok {
		return d.fail(req, transport, fmt.Errorf("%w %q", ErrUnknownCommand, req.Command))
	}

	result, err := d.run(handler, req.Args)
	if err != nil {
		return d.fail(req, transport, err)
	}

	resp.Status = StatusOK
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			return d.fail(req, transport, fmt.Errorf("encode result: %w", err))
		}
		resp.Output = raw
	}
	logger.Debugf("[ipc] id=%s transport=%s command=%s ok", req.ID, transport, req.Command)
	return resp
}

// Invoke is a convenience wrapper for in-process callers.
func (d *Dispatcher) Invoke(ctx context.Context, transport, command string, args ...string) Response {
	return d.Dispatch(ctx, transport, Request{Command: command, Args: args})
}

func (d *Dispatcher) run(handler HandlerFunc, args []string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(args)
}

func (d *Dispatcher) fail(req Request, transport string, err error) Response {
	logger.WarnKV("command failed", "id", req.ID, "transport", transport, "command", req.Command, "error", err.Error())
	return Response{ID: req.ID, Status: StatusError, Error: err.Error()}
}
