// Package topology provides the mesh connectivity model the refinement
// driver operates on: immutable per-depth connectivity snapshots
// (Level), the transformation producing a child snapshot from a parent
// (Refinement), and the sparse selection accumulator feeding it
// (Selector).
package topology

// Edge is one edge of a Level, with its crease sharpness and incidence
// summary.
type Edge struct {
	V0, V1    Index
	Sharpness float64
	FaceCount int

	// Boundary marks an edge with exactly one incident face.
	Boundary bool
	// NonManifold marks an edge with more than two incident faces.
	NonManifold bool
}

// Level is a mesh connectivity snapshot at one refinement depth. A Level
// is immutable once its construction (by a Builder or a Refinement) has
// finished. Index 0 components of adjacency arrays follow CSR layout:
// per-component offsets into flat index slices.
type Level struct {
	depth int

	faceVertOffsets []int
	faceVerts       []Index
	faceEdges       []Index // parallel to faceVerts; faceEdges[k] joins faceVerts[k] to its successor

	edges []Edge

	vertFaceOffsets []int
	vertFaces       []Index
	vertEdgeOffsets []int
	vertEdges       []Index

	vertSharpness []float64
	vertTags      []VertexTag

	fvarCounts []int
}

// NewLevel returns an empty Level ready to serve as the child slot of a
// Refinement.
func NewLevel() *Level { return &Level{} }

// Depth returns the refinement depth of this level (0 = base).
func (l *Level) Depth() int { return l.depth }

// NumVertices returns the vertex count.
func (l *Level) NumVertices() int { return len(l.vertTags) }

// NumEdges returns the edge count.
func (l *Level) NumEdges() int { return len(l.edges) }

// NumFaces returns the face count.
func (l *Level) NumFaces() int { return len(l.faceVertOffsets) - 1 }

// NumFaceVerticesTotal returns the summed vertex count over all faces.
func (l *Level) NumFaceVerticesTotal() int { return len(l.faceVerts) }

// FaceVertices returns the vertices of face f in winding order. The
// returned slice aliases internal storage and must not be modified.
func (l *Level) FaceVertices(f Index) []Index {
	return l.faceVerts[l.faceVertOffsets[f]:l.faceVertOffsets[f+1]]
}

// FaceEdges returns the edges of face f, where entry k joins vertex k to
// vertex k+1 (mod n).
func (l *Level) FaceEdges(f Index) []Index {
	return l.faceEdges[l.faceVertOffsets[f]:l.faceVertOffsets[f+1]]
}

// VertexFaces returns the faces incident to vertex v. Empty when the
// level was built face-topology-only.
func (l *Level) VertexFaces(v Index) []Index {
	if l.vertFaceOffsets == nil {
		return nil
	}
	return l.vertFaces[l.vertFaceOffsets[v]:l.vertFaceOffsets[v+1]]
}

// VertexEdges returns the edges incident to vertex v. Empty when the
// level was built face-topology-only.
func (l *Level) VertexEdges(v Index) []Index {
	if l.vertEdgeOffsets == nil {
		return nil
	}
	return l.vertEdges[l.vertEdgeOffsets[v]:l.vertEdgeOffsets[v+1]]
}

// Edge returns edge e.
func (l *Level) Edge(e Index) Edge { return l.edges[e] }

// VertexSharpness returns the crease sharpness of vertex v.
func (l *Level) VertexSharpness(v Index) float64 { return l.vertSharpness[v] }

// VertexTagOf returns the topological tag of vertex v.
func (l *Level) VertexTagOf(v Index) VertexTag { return l.vertTags[v] }

// FaceCompositeTag aggregates the tags of the given face vertices into
// one composite tag.
func (l *Level) FaceCompositeTag(verts []Index) VertexTag {
	var comp VertexTag
	for _, v := range verts {
		comp.combine(l.vertTags[v])
	}
	return comp
}

// NumFVarChannels returns the number of face-varying channels.
func (l *Level) NumFVarChannels() int { return len(l.fvarCounts) }

// NumFVarValues returns the value count of face-varying channel ch, or 0
// for an unknown channel.
func (l *Level) NumFVarValues(ch int) int {
	if ch < 0 || ch >= len(l.fvarCounts) {
		return 0
	}
	return l.fvarCounts[ch]
}

// buildFaces populates the face-vertex CSR arrays from raw per-face
// vertex lists and allocates per-vertex storage.
func (l *Level) buildFaces(numVerts int, faces [][]Index) {
	l.faceVertOffsets = make([]int, len(faces)+1)
	total := 0
	for i, f := range faces {
		l.faceVertOffsets[i] = total
		total += len(f)
	}
	l.faceVertOffsets[len(faces)] = total

	l.faceVerts = make([]Index, 0, total)
	for _, f := range faces {
		l.faceVerts = append(l.faceVerts, f...)
	}

	l.vertSharpness = make([]float64, numVerts)
	l.vertTags = make([]VertexTag, numVerts)
}

// edgeKey identifies an edge independent of direction.
type edgeKey struct{ a, b Index }

func makeEdgeKey(v0, v1 Index) edgeKey {
	if v0 < v1 {
		return edgeKey{v0, v1}
	}
	return edgeKey{v1, v0}
}

// buildEdges derives the edge table and the face-edge arrays from the
// face-vertex arrays, counting incident faces to flag boundary and
// non-manifold edges.
func (l *Level) buildEdges() {
	byKey := make(map[edgeKey]Index)
	l.faceEdges = make([]Index, len(l.faceVerts))

	for f := 0; f < l.NumFaces(); f++ {
		fverts := l.FaceVertices(f)
		base := l.faceVertOffsets[f]
		for i := range fverts {
			v0 := fverts[i]
			v1 := fverts[(i+1)%len(fverts)]
			key := makeEdgeKey(v0, v1)
			e, ok := byKey[key]
			if !ok {
				e = Index(len(l.edges))
				byKey[key] = e
				l.edges = append(l.edges, Edge{V0: key.a, V1: key.b})
			}
			l.edges[e].FaceCount++
			l.faceEdges[base+i] = e
		}
	}

	for e := range l.edges {
		l.edges[e].Boundary = l.edges[e].FaceCount == 1
		l.edges[e].NonManifold = l.edges[e].FaceCount > 2
	}
}

// buildVertexRelations populates the vertex-face and vertex-edge CSR
// arrays. Skipped for face-topology-only levels.
func (l *Level) buildVertexRelations() {
	n := l.NumVertices()

	faceCounts := make([]int, n)
	for _, v := range l.faceVerts {
		faceCounts[v]++
	}
	l.vertFaceOffsets = offsetsFromCounts(faceCounts)
	l.vertFaces = make([]Index, len(l.faceVerts))
	fill := make([]int, n)
	for f := 0; f < l.NumFaces(); f++ {
		for _, v := range l.FaceVertices(f) {
			l.vertFaces[l.vertFaceOffsets[v]+fill[v]] = Index(f)
			fill[v]++
		}
	}

	edgeCounts := make([]int, n)
	for _, e := range l.edges {
		edgeCounts[e.V0]++
		edgeCounts[e.V1]++
	}
	l.vertEdgeOffsets = offsetsFromCounts(edgeCounts)
	l.vertEdges = make([]Index, 2*len(l.edges))
	fill = make([]int, n)
	for i, e := range l.edges {
		l.vertEdges[l.vertEdgeOffsets[e.V0]+fill[e.V0]] = Index(i)
		fill[e.V0]++
		l.vertEdges[l.vertEdgeOffsets[e.V1]+fill[e.V1]] = Index(i)
		fill[e.V1]++
	}
}

func offsetsFromCounts(counts []int) []int {
	offsets := make([]int, len(counts)+1)
	sum := 0
	for i, c := range counts {
		offsets[i] = sum
		sum += c
	}
	offsets[len(counts)] = sum
	return offsets
}
