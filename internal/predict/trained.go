package predict

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ridgeLambda keeps the normal equations invertible when a feature is
// constant across the whole game log (opponent rating often is).
const ridgeLambda = 1e-2

// TrainingRow is one historical game with its feature snapshot.
type TrainingRow struct {
	Features Features
	Targets  map[string]float64

	// SeasonAvgs optionally carries per-statistic expanding averages that
	// override Features.SeasonAvg when fitting that statistic's model.
	SeasonAvgs map[string]float64
}

func (r TrainingRow) featuresFor(stat string) Features {
	f := r.Features
	if avg, ok := r.SeasonAvgs[stat]; ok {
		f.SeasonAvg = avg
	}
	return f
}

// TrainedEstimator holds one fitted linear model per statistic. Models are
// refit on every analysis request and never persist beyond the session cache.
type TrainedEstimator struct {
	coeffs map[string][]float64
}

// NewTrainedEstimator fits ridge-regularized least squares per statistic.
func NewTrainedEstimator(rows []TrainingRow) (*TrainedEstimator, error) {
	if len(rows) < MinTrainingRows {
		return nil, fmt.Errorf("need at least %d rows, have %d", MinTrainingRows, len(rows))
	}

	n := len(rows)
	p := len(featureVector(Features{}))

	est := &TrainedEstimator{coeffs: make(map[string][]float64, len(Stats))}
	for _, stat := range Stats {
		X := mat.NewDense(n, p, nil)
		y := make([]float64, n)
		for i, row := range rows {
			X.SetRow(i, featureVector(row.featuresFor(stat)))
			y[i] = row.Targets[stat]
		}
		beta, err := fitRidge(X, y, ridgeLambda)
		if err != nil {
			return nil, fmt.Errorf("fitting %s: %w", stat, err)
		}
		est.coeffs[stat] = beta
	}
	return est, nil
}

// Estimate evaluates the fitted model. Estimates never go negative.
func (e *TrainedEstimator) Estimate(stat string, f Features) float64 {
	beta, ok := e.coeffs[stat]
	if !ok {
		return 0
	}
	x := featureVector(f)
	var sum float64
	for i, b := range beta {
		sum += b * x[i]
	}
	if sum < 0 {
		return 0
	}
	return sum
}

// Mode identifies the estimator for callers and responses.
func (e *TrainedEstimator) Mode() string {
	return "trained"
}

func featureVector(f Features) []float64 {
	home := 0.0
	if f.Home {
		home = 1.0
	}
	return []float64{1, f.DaysRest, home, f.PrevMinutes, f.SeasonAvg, f.OppRating}
}

// fitRidge solves (XᵀX + λI)β = Xᵀy.
func fitRidge(X *mat.Dense, y []float64, lambda float64) ([]float64, error) {
	_, p := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	for i := 0; i < p; i++ {
		xtx.Set(i, i, xtx.At(i, i)+lambda)
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), mat.NewVecDense(len(y), y))

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return nil, err
	}

	out := make([]float64, p)
	for i := 0; i < p; i++ {
		out[i] = beta.AtVec(i)
	}
	return out, nil
}
