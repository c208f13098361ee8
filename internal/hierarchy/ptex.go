package hierarchy

import (
	"github.com/tessella/subdiv/internal/scheme"
	"github.com/tessella/subdiv/internal/topology"
)

// Ptex assigns one texture face per regular base face and one per
// corner of each irregular base face (an n-gon subdivides into n
// quads, each its own texture face). The mapping is a prefix sum over
// the base level, computed lazily and kept until the base level is
// replaced.

// PtexFaceCount returns the total number of ptex faces of the base
// level, or 0 if the hierarchy is empty.
func (h *Hierarchy) PtexFaceCount() int {
	if !h.ensurePtexIndices() {
		return 0
	}
	return h.ptexIndices[len(h.ptexIndices)-1]
}

// PtexIndex returns the first ptex face index of base face f, or -1
// when f is out of range.
func (h *Hierarchy) PtexIndex(f topology.Index) int {
	if !h.ensurePtexIndices() {
		return -1
	}
	if f < 0 || f >= len(h.ptexIndices)-1 {
		return -1
	}
	return h.ptexIndices[f]
}

func (h *Hierarchy) ensurePtexIndices() bool {
	if h.ptexIndices != nil {
		return true
	}
	if len(h.levels) == 0 || h.levels[0] == nil {
		return false
	}
	// Dispatch on the scheme for its regular face valence; every
	// scheme shares the prefix-sum computation.
	switch h.scheme {
	case scheme.Bilinear, scheme.CatmullClark, scheme.Loop:
		regular := scheme.TraitsOf(h.scheme).RegularFaceValence
		h.ptexIndices = computePtexIndices(h.levels[0], regular)
	}
	return h.ptexIndices != nil
}

// computePtexIndices builds the prefix-sum table; the final entry holds
// the total ptex face count.
func computePtexIndices(base *topology.Level, regularFaceValence int) []int {
	n := base.NumFaces()
	indices := make([]int, n+1)
	id := 0
	for f := 0; f < n; f++ {
		indices[f] = id
		if nv := len(base.FaceVertices(f)); nv == regularFaceValence {
			id++
		} else {
			id += nv
		}
	}
	indices[n] = id
	return indices
}
