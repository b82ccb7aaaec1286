package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicOpponentRatingScaling(t *testing.T) {
	est := &HeuristicEstimator{Averages: map[string]float64{"PTS": 20.0}}

	// Opponent rating 10% above league average boosts the average by 10%
	got := est.Estimate("PTS", Features{OppRating: LeagueAvgDefRating * 1.10})
	assert.InDelta(t, 22.0, got, 1e-9)

	// 10% below cuts it by 10%
	got = est.Estimate("PTS", Features{OppRating: LeagueAvgDefRating * 0.90})
	assert.InDelta(t, 18.0, got, 1e-9)
}

func TestHeuristicMissingRatingUsesLeagueAverage(t *testing.T) {
	est := &HeuristicEstimator{Averages: map[string]float64{"REB": 8.0}}

	got := est.Estimate("REB", Features{OppRating: 0})
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestHeuristicPaceAndHomeLayers(t *testing.T) {
	est := &HeuristicEstimator{Averages: map[string]float64{"PTS": 20.0}}

	got := est.Estimate("PTS", Features{OppRating: LeagueAvgDefRating, Pace: 105.0})
	assert.InDelta(t, 21.0, got, 1e-9)

	got = est.Estimate("PTS", Features{OppRating: LeagueAvgDefRating, Home: true})
	assert.InDelta(t, 20.0*HomeCourtBonus, got, 1e-9)
}

func TestHeuristicNonPositiveAverage(t *testing.T) {
	est := &HeuristicEstimator{Averages: map[string]float64{"AST": 0}}

	assert.Equal(t, 0.0, est.Estimate("AST", Features{OppRating: 120}))
	assert.Equal(t, 0.0, est.Estimate("PTS", Features{OppRating: 120}), "unknown stat estimates zero")
}

func TestHeuristicMode(t *testing.T) {
	est := &HeuristicEstimator{}
	assert.Equal(t, "heuristic", est.Mode())
}
