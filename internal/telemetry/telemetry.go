// Package telemetry provides a JSONL event stream for recording
// refinement runs. Every level refined, every sparse selection, and
// every convergence decision is recorded as a structured JSON event,
// making runs auditable and comparable across meshes.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindRefineStart   = "refine_start"
	KindLevelSelected = "level_selected"
	KindLevelRefined  = "level_refined"
	KindConverged     = "converged"
	KindRefineDone    = "refine_done"
)

// Event represents a single telemetry record: a timestamp, a kind tag,
// the refinement depth it concerns (where applicable), and structured
// data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Mesh      string    `json:"mesh,omitempty"`
	Level     int       `json:"level,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// LevelStats is the per-level payload attached to level events.
type LevelStats struct {
	Vertices      int `json:"vertices"`
	Edges         int `json:"edges"`
	Faces         int `json:"faces"`
	SelectedFaces int `json:"selected_faces,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for
// concurrent use by multiple goroutines. A nil *Emitter is a valid
// no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter creates an Emitter appending JSONL events to the file at
// path, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{file: f, enc: json.NewEncoder(f)}, nil
}

// Emit writes a single event, stamping it with the current time if the
// caller left the timestamp zero. Calling Emit on a nil Emitter is a
// no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
