package predict

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticRows generates games from a known linear process so the fit can be
// checked against held-out inputs.
func syntheticRows(n int) []TrainingRow {
	rng := rand.New(rand.NewSource(7))
	rows := make([]TrainingRow, 0, n)
	for i := 0; i < n; i++ {
		f := Features{
			DaysRest:    float64(rng.Intn(4)),
			Home:        rng.Intn(2) == 1,
			PrevMinutes: 28 + rng.Float64()*12,
			SeasonAvg:   18 + rng.Float64()*6,
			OppRating:   LeagueAvgDefRating,
		}
		rows = append(rows, TrainingRow{Features: f, Targets: map[string]float64{
			"PTS": syntheticPoints(f),
			"REB": 7.5,
			"AST": 5.0,
		}})
	}
	return rows
}

func syntheticPoints(f Features) float64 {
	home := 0.0
	if f.Home {
		home = 1.0
	}
	return 2.0 + 0.6*f.DaysRest + 1.5*home + 0.25*f.PrevMinutes + 0.55*f.SeasonAvg
}

func TestTrainedEstimatorRecoversLinearProcess(t *testing.T) {
	est, err := NewTrainedEstimator(syntheticRows(60))
	require.NoError(t, err)
	assert.Equal(t, "trained", est.Mode())

	probe := Features{
		DaysRest:    2,
		Home:        true,
		PrevMinutes: 34,
		SeasonAvg:   21,
		OppRating:   LeagueAvgDefRating,
	}
	got := est.Estimate("PTS", probe)
	assert.InDelta(t, syntheticPoints(probe), got, 0.5)

	// Constant targets fit to the constant
	assert.InDelta(t, 7.5, est.Estimate("REB", probe), 0.5)
	assert.InDelta(t, 5.0, est.Estimate("AST", probe), 0.5)
}

func TestTrainedEstimatorRejectsShortLogs(t *testing.T) {
	_, err := NewTrainedEstimator(syntheticRows(MinTrainingRows - 1))
	assert.Error(t, err)
}

func TestTrainedEstimatorNeverNegative(t *testing.T) {
	rows := syntheticRows(30)
	for i := range rows {
		rows[i].Targets["PTS"] = 0.5
	}
	est, err := NewTrainedEstimator(rows)
	require.NoError(t, err)

	// An absurd extrapolation point must still clamp at zero
	got := est.Estimate("PTS", Features{DaysRest: -50, PrevMinutes: -100, SeasonAvg: -40, OppRating: LeagueAvgDefRating})
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestSelectPrefersTrainedWithEnoughRows(t *testing.T) {
	est := Select(syntheticRows(20), map[string]float64{"PTS": 20}, nil)
	assert.Equal(t, "trained", est.Mode())

	est = Select(syntheticRows(3), map[string]float64{"PTS": 20}, nil)
	assert.Equal(t, "heuristic", est.Mode())
}
