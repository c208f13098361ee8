package topology

// Selector accumulates the faces of a parent level chosen for sparse
// refinement. It is a write-mostly view over one Refinement: creating a
// Selector clears any previous selection, and the only query is whether
// anything was selected at all.
type Selector struct {
	r *Refinement
}

// NewSelector binds a fresh, empty selection to the given Refinement.
func NewSelector(r *Refinement) *Selector {
	r.resetSelection()
	return &Selector{r: r}
}

// Refinement returns the Refinement this selection feeds.
func (s *Selector) Refinement() *Refinement { return s.r }

// SelectFace marks a face of the parent level for refinement. Selecting
// a face twice is a no-op.
func (s *Selector) SelectFace(f Index) { s.r.selectFace(f) }

// IsSelectionEmpty reports whether no face has been selected.
func (s *Selector) IsSelectionEmpty() bool { return s.r.selectedCount == 0 }
