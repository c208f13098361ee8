package scheme

import "fmt"

// BoundaryInterpolation controls how boundary edges and corners are
// treated when classifying and refining boundary components.
type BoundaryInterpolation int

const (
	// BoundaryNone leaves boundary edges unsharpened; boundary
	// vertices smooth toward the interior.
	BoundaryNone BoundaryInterpolation = iota
	// BoundaryEdgeOnly treats boundary edges as infinitely sharp
	// creases.
	BoundaryEdgeOnly
	// BoundaryEdgeAndCorner additionally pins single-face boundary
	// corners as sharp corner vertices.
	BoundaryEdgeAndCorner
)

func (b BoundaryInterpolation) String() string {
	switch b {
	case BoundaryNone:
		return "none"
	case BoundaryEdgeOnly:
		return "edge-only"
	case BoundaryEdgeAndCorner:
		return "edge-and-corner"
	}
	return fmt.Sprintf("boundary(%d)", int(b))
}

// ParseBoundary converts a boundary-interpolation name into its enum value.
func ParseBoundary(name string) (BoundaryInterpolation, error) {
	switch name {
	case "none":
		return BoundaryNone, nil
	case "edge-only":
		return BoundaryEdgeOnly, nil
	case "edge-and-corner":
		return BoundaryEdgeAndCorner, nil
	}
	return 0, fmt.Errorf("unknown boundary interpolation %q", name)
}

// CreasingMethod selects how semi-sharp edge sharpness decays across
// refinement levels.
type CreasingMethod int

const (
	// CreaseUniform decrements sharpness by one per level.
	CreaseUniform CreasingMethod = iota
	// CreaseChaikin averages sharpness along crease chains. Currently
	// falls back to uniform decay.
	CreaseChaikin
)

// Options bundles the scheme parameters fixed at hierarchy construction.
type Options struct {
	Boundary BoundaryInterpolation
	Creasing CreasingMethod
}

// DefaultOptions returns the options used when a caller specifies none:
// sharp boundary edges, uniform crease decay.
func DefaultOptions() Options {
	return Options{Boundary: BoundaryEdgeOnly, Creasing: CreaseUniform}
}
