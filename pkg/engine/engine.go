// Package engine exposes the higher-order array functions behind a
// small facade that wires in logging, metrics, and memory allocation.
// Callers that do not need those resolve functions directly through
// [executor.Lookup].
package engine

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vireodb/vireo/pkg/columnar"
	"github.com/vireodb/vireo/pkg/engine/executor"
)

// Params holds parameters for constructing a new [Engine].
type Params struct {
	Logger     log.Logger            // Logger for optional log messages.
	Registerer prometheus.Registerer // Registerer for optional metrics.

	// Allocator for result columns. Defaults to the Arrow default
	// allocator.
	Allocator memory.Allocator
}

// validate validates p and applies defaults.
func (p *Params) validate() error {
	if p.Logger == nil {
		p.Logger = log.NewNopLogger()
	}
	if p.Registerer == nil {
		p.Registerer = prometheus.NewRegistry()
	}
	if p.Allocator == nil {
		p.Allocator = memory.DefaultAllocator
	}
	return nil
}

// Engine evaluates higher-order array functions over column batches.
// Engines are stateless between invocations and safe for concurrent
// use.
type Engine struct {
	logger  log.Logger
	metrics *metrics
	mem     memory.Allocator
}

// New creates a new Engine.
func New(params Params) (*Engine, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		logger:  params.Logger,
		metrics: newMetrics(params.Registerer),
		mem:     params.Allocator,
	}, nil
}

// Function resolves a registered function by name, for callers that
// want to derive types or drive execution themselves.
func (e *Engine) Function(name string) (*executor.Function, error) {
	return executor.Lookup(name)
}

// Evaluate runs the named function over one batch of arguments.
// Array-backed results are allocated from the engine's allocator and
// owned by the caller.
func (e *Engine) Evaluate(name string, args []executor.Argument) (columnar.ColumnVector, error) {
	fn, err := executor.Lookup(name)
	if err != nil {
		e.metrics.invocations.WithLabelValues(statusNotImplemented).Inc()
		return nil, err
	}

	timer := prometheus.NewTimer(e.metrics.execution)
	out, err := fn.Execute(e.mem, args)
	duration := timer.ObserveDuration()

	if err != nil {
		e.metrics.invocations.WithLabelValues(errorStatus(err)).Inc()
		level.Warn(e.logger).Log("msg", "function evaluation failed", "function", name, "err", err)
		return nil, err
	}

	rows, elements := batchShape(args)
	e.metrics.invocations.WithLabelValues(statusSuccess).Inc()
	e.metrics.rows.Add(float64(rows))
	e.metrics.elements.Add(float64(elements))

	level.Debug(e.logger).Log(
		"msg", "evaluated function",
		"function", name,
		"rows", rows,
		"elements", elements,
		"duration", duration.String(),
	)
	return out, nil
}

// batchShape reports the rows and total elements of the first array
// argument, for logging and metrics. All array arguments agree on
// shape once execution succeeds.
func batchShape(args []executor.Argument) (rows, elements int64) {
	for _, arg := range args {
		if l, ok := arg.Vector.(*columnar.List); ok {
			return l.Len(), l.TotalElements()
		}
	}
	return 0, 0
}

// errorStatus maps an evaluation error to a metric status label.
func errorStatus(err error) string {
	if errors.Is(err, columnar.ErrNotImplemented) {
		return statusNotImplemented
	}
	return statusFailure
}
