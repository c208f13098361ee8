package topology

import "github.com/tessella/subdiv/internal/scheme"

// Index addresses a vertex, edge, or face within one Level.
type Index = int

// IndexInvalid marks a missing component, e.g. a parent component with
// no child.
const IndexInvalid Index = -1

// VertexTag summarizes the topological classification of a vertex. Tags
// for the vertices of a face are OR-combined into a composite tag that
// drives the feature-adaptive selection decision.
type VertexTag struct {
	// Rule is the crease-rule classification of the vertex's limit
	// behavior. In a composite tag this holds the union of the rule
	// bits of all contributing vertices.
	Rule scheme.Rule

	// Boundary marks a vertex incident to a boundary edge.
	Boundary bool

	// Extraordinary marks a vertex whose valence differs from the
	// scheme's regular valence.
	Extraordinary bool

	// SemiSharp marks a vertex with a finite non-zero sharpness, or
	// one incident to a semi-sharp edge.
	SemiSharp bool

	// InfSharp marks a vertex with infinite sharpness, or one
	// incident to an infinitely sharp edge.
	InfSharp bool

	// NonManifold marks a vertex incident to a non-manifold edge.
	NonManifold bool

	// Incomplete marks a vertex of a sparse level whose parent
	// neighborhood was not fully selected, so its own neighborhood is
	// not fully known.
	Incomplete bool
}

// combine ORs another tag into the receiver, building a composite.
func (t *VertexTag) combine(o VertexTag) {
	t.Rule |= o.Rule
	t.Boundary = t.Boundary || o.Boundary
	t.Extraordinary = t.Extraordinary || o.Extraordinary
	t.SemiSharp = t.SemiSharp || o.SemiSharp
	t.InfSharp = t.InfSharp || o.InfSharp
	t.NonManifold = t.NonManifold || o.NonManifold
	t.Incomplete = t.Incomplete || o.Incomplete
}
