// Package progrock provides the Progrock implementation of the tracing adapter.
package progrock

import (
	"context"
	"fmt"

	"github.com/Baltazore/hex/internal/core/ports"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

// Tracer implements ports.Tracer on top of a progrock recording session. Each
// span becomes a vertex on the tape, so UIs consuming the tape see resolution
// steps as they happen.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Tracer recording onto a fresh tape.
func New() *Tracer {
	return NewTracer(progrock.NewTape())
}

// NewTracer creates a Tracer recording onto the given writer.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex named after the resolution step.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	v := t.rec.Vertex(digest.FromString(name), name)
	if cfg.Cached {
		v.Cached()
	}
	return ctx, &Span{vertex: v}
}

// EmitPlan records the upcoming package set as a single completed vertex, so
// consumers can show the resolution frontier before any version is picked.
func (t *Tracer) EmitPlan(_ context.Context, packages []string) {
	v := t.rec.Vertex(digest.FromString("plan"), "plan")
	for _, pkg := range packages {
		_, _ = fmt.Fprintln(v.Stdout(), pkg)
	}
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (t *Tracer) Close() error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
