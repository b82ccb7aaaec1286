package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/fetch/nbastats"
	"github.com/fortuna/augur/internal/predict"
)

func TestReportStatusSubstringMatch(t *testing.T) {
	report := Report{
		"jayson tatum":  "out for season",
		"derrick white": "game time decision",
	}

	assert.Equal(t, "out for season", report.Status("Jayson Tatum"))
	assert.Equal(t, "out for season", report.Status("TATUM"), "substring containment, case-insensitive")
	assert.Equal(t, ActiveStatus, report.Status("Al Horford"))
	assert.Equal(t, ActiveStatus, report.Status(""))
}

func TestIsOut(t *testing.T) {
	assert.True(t, IsOut("out for season"))
	assert.True(t, IsOut("Injured - knee"))
	assert.False(t, IsOut("game time decision"))
	assert.False(t, IsOut("questionable"))
}

func TestInferPositions(t *testing.T) {
	assert.Equal(t, []string{"G"}, InferPositions(7.2, 4.0))
	assert.Equal(t, []string{"F"}, InferPositions(2.0, 7.5))
	assert.Equal(t, []string{"F", "C"}, InferPositions(2.0, 11.0))
	assert.Equal(t, []string{"G", "F"}, InferPositions(5.0, 8.0))
	assert.Equal(t, []string{"G", "F"}, InferPositions(2.0, 3.0), "no profile defaults to the wing set")
}

func teamRoster() []nbastats.RosterRow {
	return []nbastats.RosterRow{
		{Name: "Star Scorer", Points: 27.1},
		{Name: "Second Option", Points: 21.4},
		{Name: "Third Wheel", Points: 16.0},
		{Name: "Role Player", Points: 9.2},
		{Name: "Bench Guy", Points: 4.1},
	}
}

func TestTeammateOut(t *testing.T) {
	report := Report{"second option": "out (ankle)"}

	alert := TeammateOut(teamRoster(), "Star Scorer", report)
	require.NotNil(t, alert)
	assert.Equal(t, "Second Option", alert.Name)
	assert.Equal(t, "out (ankle)", alert.Status)
}

func TestTeammateOutSkipsSubject(t *testing.T) {
	report := Report{"star scorer": "out (rest)"}

	alert := TeammateOut(teamRoster(), "Star Scorer", report)
	assert.Nil(t, alert, "the player under analysis is not their own teammate")
}

func TestTeammateOutOnlyChecksTopScorers(t *testing.T) {
	report := Report{"bench guy": "out (illness)"}

	alert := TeammateOut(teamRoster(), "Star Scorer", report)
	assert.Nil(t, alert, "absences outside the top scorers carry no boost")
}

func TestTeammateOutAllHealthy(t *testing.T) {
	alert := TeammateOut(teamRoster(), "Star Scorer", Report{})
	assert.Nil(t, alert)
}

func opponentAdvanced() []nbastats.RosterRow {
	return []nbastats.RosterRow{
		{Name: "Lockdown Wing", Minutes: 33.0, DefRating: 106.5},
		{Name: "Rim Anchor", Minutes: 30.0, DefRating: 108.0},
		{Name: "Sieve Starter", Minutes: 35.0, DefRating: 117.9},
		{Name: "Deep Bench Stopper", Minutes: 11.0, DefRating: 101.0},
	}
}

func TestScoutDefenderFindsBestHealthyThreat(t *testing.T) {
	matchup := ScoutDefender(opponentAdvanced(), nil, []string{"G", "F"}, Report{})
	require.NotNil(t, matchup)
	assert.Equal(t, "Lockdown Wing", matchup.Name, "bench players below the minutes floor are ignored")
	assert.Equal(t, 106.5, matchup.Rating)
	assert.False(t, matchup.Out)
	assert.Equal(t, predict.MatchupPrimary, matchup.Class)
}

func TestScoutDefenderOutIsNoThreat(t *testing.T) {
	report := Report{"lockdown wing": "out (hamstring)"}

	matchup := ScoutDefender(opponentAdvanced(), nil, []string{"G"}, report)
	require.NotNil(t, matchup)
	assert.True(t, matchup.Out)
	assert.Equal(t, predict.MatchupNone, matchup.Class)
}

func TestScoutDefenderSwitchClassification(t *testing.T) {
	base := []nbastats.RosterRow{
		// Center profile: heavy rebounds, few assists
		{Name: "Lockdown Wing", Assists: 1.5, Rebounds: 10.2},
	}

	matchup := ScoutDefender(opponentAdvanced(), base, []string{"G"}, Report{})
	require.NotNil(t, matchup)
	assert.Equal(t, predict.MatchupSwitch, matchup.Class)

	// A forward subject shares the big's position set
	matchup = ScoutDefender(opponentAdvanced(), base, []string{"F"}, Report{})
	require.NotNil(t, matchup)
	assert.Equal(t, predict.MatchupPrimary, matchup.Class)
}

func TestScoutDefenderNoEliteRotation(t *testing.T) {
	advanced := []nbastats.RosterRow{
		{Name: "Average Joe", Minutes: 32.0, DefRating: 113.0},
		{Name: "Turnstile", Minutes: 28.0, DefRating: 119.4},
	}

	matchup := ScoutDefender(advanced, nil, []string{"G"}, Report{})
	assert.Nil(t, matchup)
}
