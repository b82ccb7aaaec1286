package predict

import "math"

// Tier is the discrete confidence rating for an edge.
type Tier int

const (
	// TierWarning means the edge is too thin to act on.
	TierWarning Tier = iota
	// TierOneStar is a marginal edge.
	TierOneStar
	// TierThreeStar is a solid edge.
	TierThreeStar
	// TierFiveStar is a max-confidence edge.
	TierFiveStar
)

// Tier cut points, as fractions of the line. Comparisons are strictly
// greater-than.
const (
	fiveStarCut  = 0.12
	threeStarCut = 0.08
	oneStarCut   = 0.04
)

// Stars returns the star count for display.
func (t Tier) Stars() int {
	switch t {
	case TierFiveStar:
		return 5
	case TierThreeStar:
		return 3
	case TierOneStar:
		return 1
	default:
		return 0
	}
}

// String names the tier.
func (t Tier) String() string {
	switch t {
	case TierFiveStar:
		return "5-star"
	case TierThreeStar:
		return "3-star"
	case TierOneStar:
		return "1-star"
	default:
		return "warning"
	}
}

// Rate computes the signed edge of a projection against a line and its tier.
// Positive edge recommends the over.
func Rate(projection, line float64) (float64, Tier) {
	edge := projection - line
	abs := math.Abs(edge)

	switch {
	case abs > fiveStarCut*line:
		return edge, TierFiveStar
	case abs > threeStarCut*line:
		return edge, TierThreeStar
	case abs > oneStarCut*line:
		return edge, TierOneStar
	default:
		return edge, TierWarning
	}
}
