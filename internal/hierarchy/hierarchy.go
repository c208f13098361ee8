// Package hierarchy owns the multi-resolution refinement hierarchy: the
// ordered sequence of topology levels, the refinements linking each
// consecutive pair, and the driver logic for uniform and
// feature-adaptive refinement.
package hierarchy

import (
	"errors"

	"github.com/tessella/subdiv/internal/scheme"
	"github.com/tessella/subdiv/internal/topology"
)

// ErrNoBaseLevel is returned when refinement is requested before a base
// level with at least one vertex has been set.
var ErrNoBaseLevel = errors.New("base level not initialized")

// ErrUnsupportedScheme is returned when refinement is requested for a
// scheme it is not implemented for.
var ErrUnsupportedScheme = errors.New("unsupported subdivision scheme")

// Hierarchy owns an ordered sequence of levels (index 0 = base mesh,
// index k = result of k refinement steps) and the refinements between
// them. Levels and refinements are created only by the refinement calls;
// callers never construct intermediate levels themselves.
type Hierarchy struct {
	scheme  scheme.Scheme
	options scheme.Options

	levels      []*topology.Level
	refinements []*topology.Refinement

	isUniform bool
	maxLevel  int

	// ptexIndices is derived solely from the base level; see ptex.go.
	ptexIndices []int
}

// New creates a hierarchy for the given scheme and options. The base
// level must be supplied with SetBaseLevel before refining.
func New(s scheme.Scheme, opts scheme.Options) *Hierarchy {
	h := &Hierarchy{scheme: s, options: opts}
	h.levels = make([]*topology.Level, 1, 8)
	return h
}

// Scheme returns the subdivision scheme fixed at construction.
func (h *Hierarchy) Scheme() scheme.Scheme { return h.scheme }

// Options returns the scheme options fixed at construction.
func (h *Hierarchy) Options() scheme.Options { return h.options }

// SetBaseLevel installs the base mesh as level 0, discarding any prior
// refinement state and the Ptex index cache.
func (h *Hierarchy) SetBaseLevel(base *topology.Level) {
	h.levels = h.levels[:0]
	h.levels = append(h.levels, base)
	h.refinements = nil
	h.isUniform = false
	h.maxLevel = 0
	h.ptexIndices = nil
}

// NumLevels returns the number of levels, including the base.
func (h *Hierarchy) NumLevels() int { return len(h.levels) }

// Level returns the level at the given depth, or nil if out of range.
func (h *Hierarchy) Level(i int) *topology.Level {
	if i < 0 || i >= len(h.levels) {
		return nil
	}
	return h.levels[i]
}

// Refinement returns the refinement producing level i+1 from level i,
// or nil if out of range.
func (h *Hierarchy) Refinement(i int) *topology.Refinement {
	if i < 0 || i >= len(h.refinements) {
		return nil
	}
	return h.refinements[i]
}

// MaxLevel returns the depth actually reached. Under adaptive
// refinement this may be less than requested if selection converged
// early.
func (h *Hierarchy) MaxLevel() int { return h.maxLevel }

// IsUniform reports whether the hierarchy was last built by uniform
// refinement.
func (h *Hierarchy) IsUniform() bool { return h.isUniform }

// RefineUniform refines every face of every level down to maxLevel. By
// default the last level only gets face topology, which is all that is
// needed when it will not be refined again; fullTopology forces the
// complete connectivity everywhere.
func (h *Hierarchy) RefineUniform(maxLevel int, fullTopology bool) error {
	if err := h.checkRefinable(false); err != nil {
		return err
	}

	h.isUniform = true
	h.maxLevel = maxLevel

	h.levels = h.levels[:1]
	h.refinements = h.refinements[:0]

	opts := topology.RefineOptions{Sparse: false}
	for i := 1; i <= maxLevel; i++ {
		opts.FaceTopologyOnly = !fullTopology && i == maxLevel

		ref := topology.NewRefinement()
		child := topology.NewLevel()
		h.levels = append(h.levels, child)
		h.refinements = append(h.refinements, ref)

		ref.SetScheme(h.scheme, h.options)
		ref.Initialize(h.levels[i-1], child)
		if err := ref.Refine(opts); err != nil {
			return err
		}
	}
	return nil
}

// RefineAdaptive sparsely refines topologically irregular regions down
// to at most subdivLevel. Refinement stops as soon as a level selects
// nothing, truncating the hierarchy to the deepest level that required
// refinement.
func (h *Hierarchy) RefineAdaptive(subdivLevel int, fullTopology bool) error {
	if err := h.checkRefinable(true); err != nil {
		return err
	}

	h.isUniform = false
	h.maxLevel = subdivLevel

	h.levels = h.levels[:1]
	h.refinements = h.refinements[:0]

	opts := topology.RefineOptions{
		Sparse:           true,
		FaceTopologyOnly: !fullTopology,
	}

	for i := 1; i <= subdivLevel; i++ {
		// Selection at the next level reads this level's vertex
		// adjacency, so full topology stays on for every level even
		// when the caller asked for face topology only.
		opts.FaceTopologyOnly = false

		ref := topology.NewRefinement()
		child := topology.NewLevel()
		h.levels = append(h.levels, child)
		h.refinements = append(h.refinements, ref)

		ref.SetScheme(h.scheme, h.options)
		ref.Initialize(h.levels[i-1], child)

		sel := topology.NewSelector(ref)
		h.selectFeatureAdaptive(sel)

		if sel.IsSelectionEmpty() {
			// Converged: nothing at this level needs isolating.
			// Drop the in-progress child and refinement slots.
			h.maxLevel = i - 1
			h.levels = h.levels[:i]
			h.refinements = h.refinements[:i-1]
			break
		}
		if err := ref.Refine(opts); err != nil {
			return err
		}
	}
	return nil
}

// Unrefine discards every refined level, leaving only the untouched
// base.
func (h *Hierarchy) Unrefine() {
	if len(h.levels) > 0 {
		h.levels = h.levels[:1]
	}
	h.refinements = nil
	h.maxLevel = 0
}

// Clear empties the hierarchy entirely, including the base level.
func (h *Hierarchy) Clear() {
	h.levels = h.levels[:0]
	h.refinements = nil
	h.maxLevel = 0
	h.ptexIndices = nil
}

// checkRefinable validates the preconditions shared by both refinement
// modes. Quad splitting covers the bilinear and Catmull-Clark schemes;
// feature-adaptive selection is Catmull-Clark only.
func (h *Hierarchy) checkRefinable(adaptive bool) error {
	if len(h.levels) == 0 || h.levels[0] == nil || h.levels[0].NumVertices() == 0 {
		return ErrNoBaseLevel
	}
	if h.scheme == scheme.Loop {
		return ErrUnsupportedScheme
	}
	if adaptive && h.scheme != scheme.CatmullClark {
		return ErrUnsupportedScheme
	}
	return nil
}

// TotalVertices returns the vertex count summed over all levels.
func (h *Hierarchy) TotalVertices() int {
	sum := 0
	for _, l := range h.levels {
		sum += l.NumVertices()
	}
	return sum
}

// TotalEdges returns the edge count summed over all levels.
func (h *Hierarchy) TotalEdges() int {
	sum := 0
	for _, l := range h.levels {
		sum += l.NumEdges()
	}
	return sum
}

// TotalFaces returns the face count summed over all levels.
func (h *Hierarchy) TotalFaces() int {
	sum := 0
	for _, l := range h.levels {
		sum += l.NumFaces()
	}
	return sum
}

// TotalFaceVertices returns the face-vertex count summed over all
// levels.
func (h *Hierarchy) TotalFaceVertices() int {
	sum := 0
	for _, l := range h.levels {
		sum += l.NumFaceVerticesTotal()
	}
	return sum
}

// TotalFVarValues returns the face-varying value count of channel ch
// summed over all levels.
func (h *Hierarchy) TotalFVarValues(ch int) int {
	sum := 0
	for _, l := range h.levels {
		sum += l.NumFVarValues(ch)
	}
	return sum
}
