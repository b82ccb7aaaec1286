// Package predict produces per-statistic point estimates for a player's next
// game. Two estimators sit behind one interface: a least-squares fit over the
// player's own game log, and a multiplicative heuristic over season averages
// for when no log is obtainable.
package predict

import "github.com/sirupsen/logrus"

// Stats is the fixed set of projected statistics.
var Stats = []string{"PTS", "REB", "AST"}

// MinTrainingRows is the smallest game log worth fitting a model on.
const MinTrainingRows = 10

// Features describes the upcoming game from the player's perspective.
type Features struct {
	DaysRest    float64
	Home        bool
	PrevMinutes float64
	SeasonAvg   float64
	OppRating   float64
	Pace        float64 // 0 when unknown
}

// Estimator produces a base point estimate for one statistic.
type Estimator interface {
	Estimate(stat string, f Features) float64
	Mode() string
}

// Select picks the estimator the available data supports: trained when the
// game log is deep enough and the fit succeeds, heuristic otherwise.
func Select(rows []TrainingRow, averages map[string]float64, log *logrus.Logger) Estimator {
	if len(rows) >= MinTrainingRows {
		est, err := NewTrainedEstimator(rows)
		if err == nil {
			return est
		}
		if log != nil {
			log.WithFields(logrus.Fields{
				"component": "predict",
				"rows":      len(rows),
				"error":     err.Error(),
			}).Warn("Model fit failed, using heuristic estimator")
		}
	}
	return &HeuristicEstimator{Averages: averages}
}
