package topology

import (
	"errors"

	"github.com/tessella/subdiv/internal/scheme"
)

// ErrNotInitialized is returned by Refine when the Refinement has no
// parent/child binding.
var ErrNotInitialized = errors.New("refinement not initialized")

// RefineOptions controls a single refine step.
type RefineOptions struct {
	// Sparse refines only the selected faces instead of every face.
	Sparse bool
	// FaceTopologyOnly skips building the child's vertex adjacency
	// arrays, which are only needed if the child is refined again.
	FaceTopologyOnly bool
}

// Refinement transforms a parent Level into a child Level by quad
// splitting: every refined n-gon becomes n quads around a new face
// point, with new edge points on its edges and vertex points at its
// corners. Child vertex tags derive from the parent components; crease
// sharpness decays one step per level.
type Refinement struct {
	scheme  scheme.Scheme
	options scheme.Options

	parent *Level
	child  *Level

	selected      []bool
	selectedCount int

	childVertFromVert []Index
	childVertFromEdge []Index
	childVertFromFace []Index
	childFaceParent   []Index
}

// NewRefinement returns an unbound Refinement.
func NewRefinement() *Refinement { return &Refinement{} }

// SetScheme binds the subdivision scheme and options applied by Refine.
func (r *Refinement) SetScheme(s scheme.Scheme, opts scheme.Options) {
	r.scheme = s
	r.options = opts
}

// Initialize binds the parent level and the (empty) child slot the
// refine step will populate, and resets any prior selection.
func (r *Refinement) Initialize(parent, child *Level) {
	r.parent = parent
	r.child = child
	r.resetSelection()
}

// Parent returns the level being refined.
func (r *Refinement) Parent() *Level { return r.parent }

// Child returns the level produced by Refine.
func (r *Refinement) Child() *Level { return r.child }

// NumSelected returns the number of faces currently selected.
func (r *Refinement) NumSelected() int { return r.selectedCount }

// ChildVertexOfVertex returns the child vertex refined from parent
// vertex v, or IndexInvalid if the vertex was outside the refined
// region.
func (r *Refinement) ChildVertexOfVertex(v Index) Index { return r.childVertFromVert[v] }

// ChildVertexOfEdge returns the child vertex placed on parent edge e,
// or IndexInvalid.
func (r *Refinement) ChildVertexOfEdge(e Index) Index { return r.childVertFromEdge[e] }

// ChildVertexOfFace returns the child vertex placed at the center of
// parent face f, or IndexInvalid.
func (r *Refinement) ChildVertexOfFace(f Index) Index { return r.childVertFromFace[f] }

// ParentFaceOfChildFace returns the parent face a child face was split
// from.
func (r *Refinement) ParentFaceOfChildFace(cf Index) Index { return r.childFaceParent[cf] }

func (r *Refinement) resetSelection() {
	if r.parent == nil {
		r.selected = nil
		r.selectedCount = 0
		return
	}
	r.selected = make([]bool, r.parent.NumFaces())
	r.selectedCount = 0
}

func (r *Refinement) selectFace(f Index) {
	if !r.selected[f] {
		r.selected[f] = true
		r.selectedCount++
	}
}

// origin kinds for child vertices.
const (
	fromVert = iota
	fromEdge
	fromFace
)

// Refine populates the child level from the parent and the current
// selection (all faces when not sparse).
func (r *Refinement) Refine(opts RefineOptions) error {
	if r.parent == nil || r.child == nil {
		return ErrNotInitialized
	}
	parent, child := r.parent, r.child

	if !opts.Sparse {
		for f := range r.selected {
			r.selectFace(Index(f))
		}
	}

	// Pass 1: mark the parent components contributing a child vertex
	// and count the selected incidence of vertices and edges, which
	// determines completeness of the sparse neighborhood.
	r.childVertFromVert = newInvalidIndices(parent.NumVertices())
	r.childVertFromEdge = newInvalidIndices(parent.NumEdges())
	r.childVertFromFace = newInvalidIndices(parent.NumFaces())

	selVertFaces := make([]int, parent.NumVertices())
	selEdgeFaces := make([]int, parent.NumEdges())

	for f := 0; f < parent.NumFaces(); f++ {
		if !r.selected[f] {
			continue
		}
		for _, v := range parent.FaceVertices(f) {
			r.childVertFromVert[v] = 0
			selVertFaces[v]++
		}
		for _, e := range parent.FaceEdges(f) {
			r.childVertFromEdge[e] = 0
			selEdgeFaces[e]++
		}
		r.childVertFromFace[f] = 0
	}

	// Pass 2: assign child vertex indices in component order: vertex
	// points, then edge points, then face points.
	next := Index(0)
	next = assignChildIndices(r.childVertFromVert, next)
	next = assignChildIndices(r.childVertFromEdge, next)
	next = assignChildIndices(r.childVertFromFace, next)
	numChildVerts := int(next)

	// Pass 3: emit child quads.
	var childFaces [][]Index
	r.childFaceParent = r.childFaceParent[:0]
	for f := 0; f < parent.NumFaces(); f++ {
		if !r.selected[f] {
			continue
		}
		fverts := parent.FaceVertices(f)
		fedges := parent.FaceEdges(f)
		n := len(fverts)
		for i := 0; i < n; i++ {
			prev := (i + n - 1) % n
			childFaces = append(childFaces, []Index{
				r.childVertFromVert[fverts[i]],
				r.childVertFromEdge[fedges[i]],
				r.childVertFromFace[f],
				r.childVertFromEdge[fedges[prev]],
			})
			r.childFaceParent = append(r.childFaceParent, Index(f))
		}
	}

	child.depth = parent.depth + 1
	child.buildFaces(numChildVerts, childFaces)
	child.buildEdges()

	// Track each child vertex's parent component to set sharpness on
	// the child edge halves.
	originKind := make([]byte, numChildVerts)
	originIndex := make([]Index, numChildVerts)
	recordOrigins(r.childVertFromVert, fromVert, originKind, originIndex)
	recordOrigins(r.childVertFromEdge, fromEdge, originKind, originIndex)
	recordOrigins(r.childVertFromFace, fromFace, originKind, originIndex)

	// A child edge joining a vertex point to an edge point is one half
	// of the parent edge and inherits its decayed sharpness; edges
	// radiating from a face point are smooth.
	for e := range child.edges {
		a, b := child.edges[e].V0, child.edges[e].V1
		var pe Index = IndexInvalid
		if originKind[a] == fromEdge && originKind[b] == fromVert {
			pe = originIndex[a]
		} else if originKind[b] == fromEdge && originKind[a] == fromVert {
			pe = originIndex[b]
		}
		if pe != IndexInvalid {
			child.edges[e].Sharpness = scheme.DecaySharpness(parent.edges[pe].Sharpness)
		}
	}

	if !opts.FaceTopologyOnly {
		child.buildVertexRelations()
	}

	// Pass 4: propagate tags and sharpness to child vertices.
	for cv := 0; cv < numChildVerts; cv++ {
		switch originKind[cv] {
		case fromVert:
			r.tagChildOfVertex(cv, originIndex[cv], opts.Sparse, selVertFaces)
		case fromEdge:
			r.tagChildOfEdge(cv, originIndex[cv], opts.Sparse, selEdgeFaces)
		case fromFace:
			child.vertTags[cv] = VertexTag{Rule: scheme.RuleSmooth}
		}
	}

	// Face-varying channels carry one value per child face corner, the
	// topological upper bound before seam merging.
	child.fvarCounts = make([]int, parent.NumFVarChannels())
	for ch := range child.fvarCounts {
		child.fvarCounts[ch] = child.NumFaceVerticesTotal()
	}
	return nil
}

// tagChildOfVertex classifies the child of parent vertex pv. Structural
// flags are inherited; the crease rule is reclassified from the decayed
// sharpness of the vertex and its incident edges.
func (r *Refinement) tagChildOfVertex(cv, pv Index, sparse bool, selVertFaces []int) {
	parent, child := r.parent, r.child
	ptag := parent.vertTags[pv]

	childSharp := scheme.DecaySharpness(parent.vertSharpness[pv])
	child.vertSharpness[cv] = childSharp

	sharpEdges := 0
	semi, inf := false, false
	for _, e := range parent.VertexEdges(pv) {
		s := scheme.DecaySharpness(parent.edges[e].Sharpness)
		if scheme.IsSharp(s) {
			sharpEdges++
		}
		semi = semi || scheme.IsSemiSharp(s)
		inf = inf || scheme.IsInfSharp(s)
	}

	tag := VertexTag{
		Boundary:      ptag.Boundary,
		Extraordinary: ptag.Extraordinary,
		NonManifold:   ptag.NonManifold,
		SemiSharp:     semi || scheme.IsSemiSharp(childSharp),
		InfSharp:      inf || scheme.IsInfSharp(childSharp),
		Rule:          scheme.ClassifyVertex(childSharp, sharpEdges),
	}
	if sparse && selVertFaces[pv] < len(parent.VertexFaces(pv)) {
		tag.Incomplete = true
	}
	child.vertTags[cv] = tag
}

// tagChildOfEdge classifies the child vertex placed on parent edge pe.
func (r *Refinement) tagChildOfEdge(cv, pe Index, sparse bool, selEdgeFaces []int) {
	parent, child := r.parent, r.child
	e := parent.edges[pe]

	s := scheme.DecaySharpness(e.Sharpness)
	tag := VertexTag{
		Boundary:    e.Boundary,
		NonManifold: e.NonManifold,
		SemiSharp:   scheme.IsSemiSharp(s),
		InfSharp:    scheme.IsInfSharp(s),
		Rule:        scheme.RuleSmooth,
	}
	if scheme.IsSharp(s) {
		tag.Rule = scheme.RuleCrease
	}
	if sparse && selEdgeFaces[pe] < e.FaceCount {
		tag.Incomplete = true
	}
	child.vertTags[cv] = tag
}

func newInvalidIndices(n int) []Index {
	s := make([]Index, n)
	for i := range s {
		s[i] = IndexInvalid
	}
	return s
}

// assignChildIndices replaces every marked (non-invalid) entry with the
// next running child index and returns the updated counter.
func assignChildIndices(marks []Index, next Index) Index {
	for i := range marks {
		if marks[i] != IndexInvalid {
			marks[i] = next
			next++
		}
	}
	return next
}

func recordOrigins(childOf []Index, kind byte, originKind []byte, originIndex []Index) {
	for i, cv := range childOf {
		if cv != IndexInvalid {
			originKind[cv] = kind
			originIndex[cv] = Index(i)
		}
	}
}
