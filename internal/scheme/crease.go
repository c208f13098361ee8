package scheme

// Sharpness bounds. Values in between are semi-sharp and decay toward
// smooth over successive refinement levels.
const (
	SharpnessSmooth   = 0.0
	SharpnessInfinite = 10.0
)

// IsSharp reports whether a sharpness value creases at this level.
func IsSharp(s float64) bool { return s > SharpnessSmooth }

// IsSemiSharp reports whether a sharpness value creases now but will
// eventually decay to smooth.
func IsSemiSharp(s float64) bool {
	return s > SharpnessSmooth && s < SharpnessInfinite
}

// IsInfSharp reports whether a sharpness value never decays.
func IsInfSharp(s float64) bool { return s >= SharpnessInfinite }

// DecaySharpness returns the sharpness an edge or vertex carries one
// refinement level down under uniform creasing: infinite stays infinite,
// everything else loses one, floored at smooth.
func DecaySharpness(s float64) float64 {
	if IsInfSharp(s) {
		return s
	}
	if s <= 1.0 {
		return SharpnessSmooth
	}
	return s - 1.0
}

// Rule classifies the limit behavior of a vertex. Rules are bit flags so
// they can be combined across the vertices of a face into a composite.
type Rule uint8

// Rule flags, one bit per crease rule.
const (
	RuleSmooth Rule = 1 << iota
	RuleDart
	RuleCrease
	RuleCorner

	// RuleUnknown is the zero value of an unclassified vertex.
	RuleUnknown Rule = 0
)

func (r Rule) String() string {
	switch r {
	case RuleUnknown:
		return "unknown"
	case RuleSmooth:
		return "smooth"
	case RuleDart:
		return "dart"
	case RuleCrease:
		return "crease"
	case RuleCorner:
		return "corner"
	}
	return "composite"
}

// ClassifyVertex determines the crease rule of a vertex from its own
// sharpness and the number of sharp edges incident to it:
//
//	0 sharp edges  -> Smooth
//	1 sharp edge   -> Dart (a crease terminating at the vertex)
//	2 sharp edges  -> Crease
//	3+ sharp edges -> Corner
//
// A sharp vertex is a Corner regardless of its edges.
func ClassifyVertex(vertexSharpness float64, sharpEdgeCount int) Rule {
	if IsSharp(vertexSharpness) {
		return RuleCorner
	}
	switch sharpEdgeCount {
	case 0:
		return RuleSmooth
	case 1:
		return RuleDart
	case 2:
		return RuleCrease
	}
	return RuleCorner
}
