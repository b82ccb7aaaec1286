package predict

// MatchupClass classifies an elite-defender matchup.
type MatchupClass int

const (
	// MatchupNone means no healthy elite defender was found.
	MatchupNone MatchupClass = iota
	// MatchupSwitch means the threat guards another position.
	MatchupSwitch
	// MatchupPrimary means the threat shares the player's position.
	MatchupPrimary
)

// String names the class for responses.
func (m MatchupClass) String() string {
	switch m {
	case MatchupPrimary:
		return "primary"
	case MatchupSwitch:
		return "switch"
	default:
		return "none"
	}
}

// Modifiers are the independent contextual adjustments layered onto a base
// estimate. They combine by multiplication only; each stays independent of
// the others.
type Modifiers struct {
	TeammateOut bool
	Matchup     MatchupClass
	BackToBack  bool
}

// Factor returns the combined multiplier.
func (m Modifiers) Factor() float64 {
	factor := 1.0
	if m.TeammateOut {
		factor *= TeammateOutBoost
	}
	switch m.Matchup {
	case MatchupPrimary:
		factor *= PrimaryMatchupPenalty
	case MatchupSwitch:
		factor *= SwitchMatchupPenalty
	}
	if m.BackToBack {
		factor *= BackToBackPenalty
	}
	return factor
}
