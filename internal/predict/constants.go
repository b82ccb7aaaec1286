package predict

// League-wide fallback constants. Every failed lookup degrades to one of
// these rather than surfacing an error to the caller.
const (
	// LeagueAvgDefRating is the defensive rating assumed when an opponent
	// lookup fails.
	LeagueAvgDefRating = 114.5

	// LeagueAvgPace is the possessions-per-game baseline.
	LeagueAvgPace = 100.0

	// DefaultMinutes stands in for a missing minutes value.
	DefaultMinutes = 32.0
)

// Contextual multiplier magnitudes. All modifiers combine multiplicatively.
const (
	// TeammateOutBoost applies when a top scorer on the player's team is out.
	TeammateOutBoost = 1.15

	// PrimaryMatchupPenalty applies when an elite defender shares the
	// player's position.
	PrimaryMatchupPenalty = 0.92

	// SwitchMatchupPenalty applies when the elite defender guards a
	// different position and only switches onto the player.
	SwitchMatchupPenalty = 0.96

	// BackToBackPenalty is the fatigue multiplier on zero days rest.
	BackToBackPenalty = 0.95

	// HomeCourtBonus applies to heuristic estimates for home games.
	HomeCourtBonus = 1.02
)

// Scouting thresholds.
const (
	// EliteDefenderRating marks a defender as a matchup threat.
	EliteDefenderRating = 110.0

	// RotationMinutes filters rosters down to rotation players.
	RotationMinutes = 24.0

	// StrongDefenseRating and WeakDefenseRating bound the "average" band
	// when presenting an opponent's defense.
	StrongDefenseRating = 110.0
	WeakDefenseRating   = 118.0
)
