package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Span implements ports.Span wrapping *progrock.VertexRecorder. The vertex is
// completed on End with whatever error was recorded last.
type Span struct {
	vertex *progrock.VertexRecorder
	err    error
}

// Write forwards to the vertex's stdout stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// End completes the vertex.
func (s *Span) End() {
	s.vertex.Done(s.err)
}

// RecordError stores the error the vertex will complete with.
func (s *Span) RecordError(err error) {
	s.err = err
}

// SetAttribute records a key-value pair on the vertex's output stream.
// Progrock vertices carry no structured attributes, so this is display only.
func (s *Span) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "%s=%v\n", key, value)
}
