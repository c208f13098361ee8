package hierarchy

import (
	"testing"

	"github.com/tessella/subdiv/internal/topology"
)

func TestPtexQuadAndHexagon(t *testing.T) {
	t.Parallel()

	// One quad and one hexagon sharing the edge (0,1).
	h := newHierarchy(t, 8, [][]topology.Index{
		{0, 1, 2, 3},
		{1, 0, 4, 5, 6, 7},
	})

	if got := h.PtexIndex(0); got != 0 {
		t.Errorf("PtexIndex(0) = %d, want 0", got)
	}
	if got := h.PtexIndex(1); got != 1 {
		t.Errorf("PtexIndex(1) = %d, want 1", got)
	}
	// 1 for the quad plus 6 for the hexagon.
	if got := h.PtexFaceCount(); got != 7 {
		t.Errorf("PtexFaceCount = %d, want 7", got)
	}
	if got := h.PtexIndex(2); got != -1 {
		t.Errorf("PtexIndex(2) = %d, want -1", got)
	}
	if got := h.PtexIndex(-1); got != -1 {
		t.Errorf("PtexIndex(-1) = %d, want -1", got)
	}
}

func TestPtexMonotonic(t *testing.T) {
	t.Parallel()

	h := pentagonPatch(t)

	base := h.Level(0)
	prev := -1
	wantTotal := 0
	for f := topology.Index(0); f < base.NumFaces(); f++ {
		idx := h.PtexIndex(f)
		if idx <= prev {
			t.Errorf("PtexIndex(%d) = %d not increasing after %d", f, idx, prev)
		}
		prev = idx
		if nv := len(base.FaceVertices(f)); nv == 4 {
			wantTotal++
		} else {
			wantTotal += nv
		}
	}
	if got := h.PtexFaceCount(); got != wantTotal {
		t.Errorf("PtexFaceCount = %d, want %d", got, wantTotal)
	}
}

func TestPtexSurvivesRefinementButNotClear(t *testing.T) {
	t.Parallel()

	h := singleQuad(t)
	if got := h.PtexFaceCount(); got != 1 {
		t.Fatalf("PtexFaceCount = %d, want 1", got)
	}

	// The mapping derives from the base level only; refining and
	// unrefining leave it untouched.
	if err := h.RefineUniform(2, false); err != nil {
		t.Fatalf("RefineUniform: %v", err)
	}
	if got := h.PtexFaceCount(); got != 1 {
		t.Errorf("PtexFaceCount after refine = %d, want 1", got)
	}
	h.Unrefine()
	if got := h.PtexFaceCount(); got != 1 {
		t.Errorf("PtexFaceCount after unrefine = %d, want 1", got)
	}

	h.Clear()
	if got := h.PtexFaceCount(); got != 0 {
		t.Errorf("PtexFaceCount after clear = %d, want 0", got)
	}
	if got := h.PtexIndex(0); got != -1 {
		t.Errorf("PtexIndex(0) after clear = %d, want -1", got)
	}
}
