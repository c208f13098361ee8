package hierarchy

import (
	"github.com/tessella/subdiv/internal/scheme"
	"github.com/tessella/subdiv/internal/topology"
)

// selectFeatureAdaptive walks every face of the selector's parent level
// and selects those whose surrounding topology is too irregular for a
// regular patch, so that the next sparse refinement isolates them.
// Implemented for the Catmull-Clark scheme.
func (h *Hierarchy) selectFeatureAdaptive(sel *topology.Selector) {
	level := sel.Refinement().Parent()

	for f := topology.Index(0); f < level.NumFaces(); f++ {
		fverts := level.FaceVertices(f)

		// A non-quad face is irregular by construction; only possible
		// at the base level since refined faces are always quads. Its
		// whole one-ring must refine together, so every face incident
		// to any of its vertices is selected as well. This is the one
		// place selection reaches beyond the face under examination.
		if len(fverts) != 4 {
			for _, v := range fverts {
				for _, vf := range level.VertexFaces(v) {
					sel.SelectFace(vf)
				}
			}
			continue
		}

		comp := level.FaceCompositeTag(fverts)

		// A face at the fringe of the previous sparse selection has an
		// unresolved neighborhood and cannot be classified yet.
		if comp.Incomplete {
			continue
		}

		if shouldIsolateFace(comp) {
			sel.SelectFace(f)
		}
	}
}

// shouldIsolateFace decides whether a quad with the given composite
// vertex tag needs further isolation. Checks are ordered: hard
// irregularities first, then the dart case before the remaining crease
// tests, then the conservative fallbacks.
func shouldIsolateFace(comp topology.VertexTag) bool {
	switch {
	case comp.Extraordinary || comp.SemiSharp:
		return true
	case comp.Rule&scheme.RuleDart != 0:
		// A crease terminating inside the face always forces
		// isolation; handled before the other crease tests.
		return true
	case comp.NonManifold:
		// Isolate until non-manifold regions get dedicated handling.
		return true
	case comp.Rule&scheme.RuleSmooth == 0:
		// Every corner is a crease or corner vertex. Regular patches
		// support at most one corner or one boundary edge, so an
		// all-hard face must keep refining.
		return true
	default:
		// At least one smooth corner with the rest creases or
		// corners: the regular boundary and corner cases.
		return false
	}
}
