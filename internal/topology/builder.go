package topology

import (
	"errors"
	"fmt"

	"github.com/tessella/subdiv/internal/scheme"
)

// ErrBadFace is returned when a face references a vertex outside the
// builder's vertex range or has fewer than three vertices.
var ErrBadFace = errors.New("invalid face")

// ErrBadComponent is returned when a sharpness assignment references a
// component that does not exist.
var ErrBadComponent = errors.New("invalid component")

// Builder assembles a base Level from raw face-vertex lists and crease
// assignments. Finalize computes the derived connectivity and the
// per-vertex topological tags; the Builder must not be reused after.
type Builder struct {
	numVerts      int
	faces         [][]Index
	edgeSharpness map[edgeKey]float64
	vertSharpness map[Index]float64
	fvarCounts    []int
}

// NewBuilder creates a Builder for a mesh with the given vertex count.
func NewBuilder(numVertices int) *Builder {
	return &Builder{
		numVerts:      numVertices,
		edgeSharpness: make(map[edgeKey]float64),
		vertSharpness: make(map[Index]float64),
	}
}

// NumVertices returns the declared vertex count.
func (b *Builder) NumVertices() int { return b.numVerts }

// NumFaces returns the number of faces added so far.
func (b *Builder) NumFaces() int { return len(b.faces) }

// AddFace appends a face over the given vertices in winding order.
func (b *Builder) AddFace(verts ...Index) error {
	if len(verts) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrBadFace, len(verts))
	}
	for _, v := range verts {
		if v < 0 || v >= b.numVerts {
			return fmt.Errorf("%w: vertex %d out of range [0,%d)", ErrBadFace, v, b.numVerts)
		}
	}
	face := make([]Index, len(verts))
	copy(face, verts)
	b.faces = append(b.faces, face)
	return nil
}

// SetEdgeSharpness assigns a crease sharpness to the edge joining v0 and
// v1. The edge need not exist yet; assignments to edges that never
// materialize are ignored at Finalize.
func (b *Builder) SetEdgeSharpness(v0, v1 Index, sharpness float64) error {
	if v0 < 0 || v0 >= b.numVerts || v1 < 0 || v1 >= b.numVerts || v0 == v1 {
		return fmt.Errorf("%w: edge (%d,%d)", ErrBadComponent, v0, v1)
	}
	b.edgeSharpness[makeEdgeKey(v0, v1)] = sharpness
	return nil
}

// SetVertexSharpness assigns a corner crease sharpness to a vertex.
func (b *Builder) SetVertexSharpness(v Index, sharpness float64) error {
	if v < 0 || v >= b.numVerts {
		return fmt.Errorf("%w: vertex %d", ErrBadComponent, v)
	}
	b.vertSharpness[v] = sharpness
	return nil
}

// AddFVarChannel declares a face-varying channel with the given value
// count and returns its channel index.
func (b *Builder) AddFVarChannel(numValues int) int {
	b.fvarCounts = append(b.fvarCounts, numValues)
	return len(b.fvarCounts) - 1
}

// Finalize computes the base Level: edge table, vertex adjacency,
// boundary and non-manifold detection, and the per-vertex tags
// classified against the given scheme and options.
func (b *Builder) Finalize(s scheme.Scheme, opts scheme.Options) (*Level, error) {
	if len(b.faces) == 0 {
		return nil, fmt.Errorf("%w: mesh has no faces", ErrBadFace)
	}

	l := &Level{depth: 0}
	l.buildFaces(b.numVerts, b.faces)
	l.buildEdges()

	for e := range l.edges {
		key := makeEdgeKey(l.edges[e].V0, l.edges[e].V1)
		if sh, ok := b.edgeSharpness[key]; ok {
			l.edges[e].Sharpness = sh
		}
		// Boundary edges crease unless boundary interpolation is off.
		if l.edges[e].Boundary && opts.Boundary != scheme.BoundaryNone {
			l.edges[e].Sharpness = scheme.SharpnessInfinite
		}
	}
	for v, sh := range b.vertSharpness {
		l.vertSharpness[v] = sh
	}

	l.buildVertexRelations()
	l.computeVertexTags(s, opts)

	l.fvarCounts = make([]int, len(b.fvarCounts))
	copy(l.fvarCounts, b.fvarCounts)
	return l, nil
}

// computeVertexTags classifies every vertex of a fully built base level.
func (l *Level) computeVertexTags(s scheme.Scheme, opts scheme.Options) {
	traits := scheme.TraitsOf(s)
	// A regular boundary vertex has one face fewer than edges; the
	// regular boundary edge valence is half the interior valence plus
	// one (3 for quad schemes, 4 for Loop).
	regBoundaryValence := traits.RegularVertexValence/2 + 1

	for v := 0; v < l.NumVertices(); v++ {
		tag := &l.vertTags[v]

		numFaces := len(l.VertexFaces(v))
		edges := l.VertexEdges(v)

		sharpEdges := 0
		for _, e := range edges {
			ed := l.edges[e]
			if ed.Boundary {
				tag.Boundary = true
			}
			if ed.NonManifold {
				tag.NonManifold = true
			}
			if scheme.IsSharp(ed.Sharpness) {
				sharpEdges++
			}
			if scheme.IsSemiSharp(ed.Sharpness) {
				tag.SemiSharp = true
			}
			if scheme.IsInfSharp(ed.Sharpness) {
				tag.InfSharp = true
			}
		}

		if tag.Boundary {
			// Single-face corners count as regular; so does the
			// straight boundary valence.
			tag.Extraordinary = len(edges) != regBoundaryValence && numFaces != 1
			if numFaces == 1 && opts.Boundary == scheme.BoundaryEdgeAndCorner {
				l.vertSharpness[v] = scheme.SharpnessInfinite
			}
		} else {
			tag.Extraordinary = len(edges) != traits.RegularVertexValence
		}

		if scheme.IsSemiSharp(l.vertSharpness[v]) {
			tag.SemiSharp = true
		}
		if scheme.IsInfSharp(l.vertSharpness[v]) {
			tag.InfSharp = true
		}
		tag.Rule = scheme.ClassifyVertex(l.vertSharpness[v], sharpEdges)
	}
}
