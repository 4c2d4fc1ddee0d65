package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CommandInstruments publishes metrics and spans for dispatched commands.
type CommandInstruments struct {
	counterRequests metric.Int64Counter
	counterErrors   metric.Int64Counter
	histDuration    metric.Float64Histogram

	tracer trace.Tracer
}

// Handle tracks one in-flight command.
type Handle struct {
	ctx   context.Context
	span  trace.Span
	start time.Time
	attrs []attribute.KeyValue
}

func newCommandInstruments(meter metric.Meter, tracer trace.Tracer) *CommandInstruments {
	inst := &CommandInstruments{tracer: tracer}
	if meter != nil {
		inst.counterRequests, _ = meter.Int64Counter(
			"appsettings.commands_total",
			metric.WithDescription("Number of commands dispatched"),
		)
		inst.counterErrors, _ = meter.Int64Counter(
			"appsettings.command_errors_total",
			metric.WithDescription("Number of commands that ended in error"),
		)
		inst.histDuration, _ = meter.Float64Histogram(
			"appsettings.command.duration",
			metric.WithDescription("Duration of commands in milliseconds"),
			metric.WithUnit("ms"),
		)
	}
	return inst
}

// Start opens a span for command when tracing is enabled.
func (i *CommandInstruments) Start(parent context.Context, command, transport string) (*Handle, context.Context) {
	if i == nil {
		return nil, parent
	}
	h := &Handle{
		ctx:   parent,
		start: time.Now(),
		attrs: []attribute.KeyValue{attribute.String("command", command)},
	}
	if transport != "" {
		h.attrs = append(h.attrs, attribute.String("transport", transport))
	}
	if i.tracer != nil {
		ctx, span := i.tracer.Start(parent, "command "+command, trace.WithAttributes(h.attrs...))
		h.ctx = ctx
		h.span = span
	}
	return h, h.ctx
}

// Finish records the outcome. errText is empty on success.
func (i *CommandInstruments) Finish(h *Handle, errText string) {
	if i == nil || h == nil {
		return
	}
	outcome := "ok"
	if errText != "" {
		outcome = "error"
	}
	attrs := append([]attribute.KeyValue{}, h.attrs...)
	attrs = append(attrs, attribute.String("outcome", outcome))

	if i.counterRequests != nil {
		i.counterRequests.Add(h.ctx, 1, metric.WithAttributes(attrs...))
	}
	if errText != "" && i.counterErrors != nil {
		i.counterErrors.Add(h.ctx, 1, metric.WithAttributes(attrs...))
	}
	if i.histDuration != nil {
		elapsed := float64(time.Since(h.start).Microseconds()) / 1000
		i.histDuration.Record(h.ctx, elapsed, metric.WithAttributes(attrs...))
	}

	if h.span != nil {
		h.span.SetAttributes(attrs...)
		if errText != "" {
			h.span.SetStatus(codes.Error, errText)
		}
		h.span.End()
	}
}
