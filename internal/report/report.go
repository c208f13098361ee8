// Package report persists refinement run summaries as TOML files.
package report

import (
	"time"

	"github.com/tessella/subdiv/internal/hierarchy"
)

// LevelReport captures the component counts of a single refinement level.
type LevelReport struct {
	Depth         int `toml:"depth"`
	Vertices      int `toml:"vertices"`
	Edges         int `toml:"edges"`
	Faces         int `toml:"faces"`
	FaceVertices  int `toml:"face_vertices"`
	SelectedFaces int `toml:"selected_faces,omitempty"`
}

// Report summarizes one refinement run of a mesh.
type Report struct {
	Mesh          string        `toml:"mesh"`
	Scheme        string        `toml:"scheme"`
	Boundary      string        `toml:"boundary"`
	Adaptive      bool          `toml:"adaptive"`
	MaxLevel      int           `toml:"max_level"`
	StartedAt     time.Time     `toml:"started_at"`
	CompletedAt   time.Time     `toml:"completed_at"`
	TotalVertices int           `toml:"total_vertices"`
	TotalEdges    int           `toml:"total_edges"`
	TotalFaces    int           `toml:"total_faces"`
	PtexFaces     int           `toml:"ptex_faces"`
	Levels        []LevelReport `toml:"levels"`
}

// Build assembles a Report from a refined hierarchy. The caller supplies
// the mesh name and timing; topology counts come from the hierarchy itself.
func Build(mesh string, h *hierarchy.Hierarchy, startedAt, completedAt time.Time) Report {
	levels := make([]LevelReport, h.NumLevels())
	for i := range levels {
		lvl := h.Level(i)
		lr := LevelReport{
			Depth:        lvl.Depth(),
			Vertices:     lvl.NumVertices(),
			Edges:        lvl.NumEdges(),
			Faces:        lvl.NumFaces(),
			FaceVertices: lvl.NumFaceVerticesTotal(),
		}
		if i > 0 {
			lr.SelectedFaces = h.Refinement(i - 1).NumSelected()
		}
		levels[i] = lr
	}

	return Report{
		Mesh:          mesh,
		Scheme:        h.Scheme().String(),
		Boundary:      h.Options().Boundary.String(),
		Adaptive:      !h.IsUniform(),
		MaxLevel:      h.MaxLevel(),
		StartedAt:     startedAt,
		CompletedAt:   completedAt,
		TotalVertices: h.TotalVertices(),
		TotalEdges:    h.TotalEdges(),
		TotalFaces:    h.TotalFaces(),
		PtexFaces:     h.PtexFaceCount(),
		Levels:        levels,
	}
}

// Duration returns the wall-clock time of the run, or zero when either
// timestamp is missing.
func (r Report) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}
