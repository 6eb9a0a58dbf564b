// Package linear provides a synchronous, line-buffered renderer for pipeline
// progress.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"

	"github.com/morsellabs/dashci/internal/ui/output"
	"github.com/morsellabs/dashci/internal/ui/style"
)

// Renderer implements ports.Renderer with chronological, prefixed log lines.
// It works the same on a TTY and in CI logs; only the color profile differs.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	stages  map[string]*stageState // spanID -> stage state
	buffers map[string]*bytes.Buffer
}

type stageState struct {
	name      string
	startTime time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile overrides the detected color profile.
func WithProfile(profile termenv.Profile) Option {
	return func(r *Renderer) {
		r.output = termenv.NewOutput(r.stderr, termenv.WithProfile(profile))
	}
}

// NewRenderer creates a new Renderer. The default color profile targets CI
// logs; pass WithProfile for richer terminals.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  termenv.NewOutput(stderr, termenv.WithProfile(output.ColorProfileANSI())),
		stages:  make(map[string]*stageState),
		buffers: make(map[string]*bytes.Buffer),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Start is a no-op for the linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}

	return nil
}

// Wait is a no-op for the linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the ordered stages about to run.
func (r *Renderer) OnPlanEmit(stages []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range stages {
		circle := r.output.String(style.Circle).Faint().String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s\n", circle, name)
	}
}

// OnStageStart prints a stage start message.
func (r *Renderer) OnStageStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stages[spanID] = &stageState{
		name:      name,
		startTime: startTime,
	}
	r.buffers[spanID] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s starting\n", prefix, style.Arrow)
}

// OnStageLog buffers log data and prints complete lines with a stage prefix.
func (r *Renderer) OnStageLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[spanID] = newBuf
			}
			break
		}

		r.printLineLocked(stage.name, line)
	}
}

// OnStageComplete flushes the remaining buffer and prints completion status.
func (r *Renderer) OnStageComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(stage.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", stage.name)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s done in %v\n",
			prefix, symbol, duration)
	}

	delete(r.stages, spanID)
	delete(r.buffers, spanID)
}

// flushBufferLocked flushes any remaining data in the buffer for a stage.
// Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	stage, ok := r.stages[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(stage.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints a line with the stage name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(stageName string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	prefix := fmt.Sprintf("[%s]", stageName)
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", prefix, string(line))
}
