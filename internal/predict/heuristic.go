package predict

// HeuristicEstimator is safe mode: scale the season average by the opponent's
// rating relative to league average, then layer pace and home-court terms.
type HeuristicEstimator struct {
	Averages map[string]float64
}

// Estimate computes the safe-mode projection for one statistic.
func (h *HeuristicEstimator) Estimate(stat string, f Features) float64 {
	avg := h.Averages[stat]
	if avg <= 0 {
		return 0
	}

	rating := f.OppRating
	if rating <= 0 {
		rating = LeagueAvgDefRating
	}
	est := avg * (rating / LeagueAvgDefRating)

	if f.Pace > 0 {
		est *= f.Pace / LeagueAvgPace
	}
	if f.Home {
		est *= HomeCourtBonus
	}
	return est
}

// Mode identifies the estimator for callers and responses.
func (h *HeuristicEstimator) Mode() string {
	return "heuristic"
}
