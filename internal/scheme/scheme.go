// Package scheme defines the subdivision schemes the refiner can apply,
// their topological traits, and the crease-rule model used to classify
// vertex limit behavior.
package scheme

import "fmt"

// Scheme identifies a subdivision scheme. It is fixed for the lifetime
// of a hierarchy.
type Scheme int

const (
	// Bilinear simply splits faces without smoothing.
	Bilinear Scheme = iota
	// CatmullClark is the quad-based smoothing scheme. It is the only
	// scheme for which feature-adaptive refinement is implemented.
	CatmullClark
	// Loop is the triangle-based smoothing scheme.
	Loop
)

func (s Scheme) String() string {
	switch s {
	case Bilinear:
		return "bilinear"
	case CatmullClark:
		return "catmull-clark"
	case Loop:
		return "loop"
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Parse converts a scheme name as accepted on the command line into a
// Scheme. It recognizes the String forms plus the common short names.
func Parse(name string) (Scheme, error) {
	switch name {
	case "bilinear":
		return Bilinear, nil
	case "catmull-clark", "catmark":
		return CatmullClark, nil
	case "loop":
		return Loop, nil
	}
	return 0, fmt.Errorf("unknown subdivision scheme %q", name)
}

// Traits captures the per-scheme topological constants.
type Traits struct {
	// RegularFaceValence is the vertex count of a regular face
	// (4 for quad-based schemes, 3 for Loop).
	RegularFaceValence int
	// RegularVertexValence is the edge valence of a regular interior
	// vertex.
	RegularVertexValence int
}

// TraitsOf returns the topological traits of s.
func TraitsOf(s Scheme) Traits {
	switch s {
	case Loop:
		return Traits{RegularFaceValence: 3, RegularVertexValence: 6}
	default:
		return Traits{RegularFaceValence: 4, RegularVertexValence: 4}
	}
}
