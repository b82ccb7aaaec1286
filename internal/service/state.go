package service

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/fetch/nbastats"
	"github.com/fortuna/augur/internal/predict"
	"github.com/fortuna/augur/internal/schedule"
	"github.com/fortuna/augur/internal/scout"
)

// PlayerState is the transient per-request snapshot of a player. It is
// recomputed for every analysis and discarded with the session cache.
type PlayerState struct {
	PlayerID     int                `json:"player_id"`
	Name         string             `json:"name"`
	TeamID       int                `json:"team_id"`
	Positions    []string           `json:"positions"`
	Averages     map[string]float64 `json:"averages"`
	LastGameDate time.Time          `json:"last_game_date"`
	LastMinutes  float64            `json:"last_minutes"`
	SafeMode     bool               `json:"safe_mode"`

	// training rows are rebuilt per request, never cached
	training []predict.TrainingRow
}

// buildPlayerState assembles state from the player's game log, falling back
// to career per-game averages (safe mode) when no log is obtainable.
func (s *AnalysisService) buildPlayerState(ctx context.Context, entry *nbastats.PlayerIndexEntry) (*PlayerState, error) {
	var rows []nbastats.GameLogRow
	for _, season := range []string{s.cfg.PreviousSeason, s.cfg.CurrentSeason} {
		log, err := s.stats.PlayerGameLog(ctx, entry.ID, season)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"component": "service",
				"player":    entry.FullName,
				"season":    season,
				"error":     err.Error(),
			}).Debug("Game log fetch failed")
			continue
		}
		rows = append(rows, log...)
	}

	if len(rows) > 0 {
		return s.stateFromGameLog(entry, rows), nil
	}
	return s.stateFromCareer(ctx, entry)
}

// stateFromGameLog derives averages and per-game training rows. Feature
// construction mirrors the estimator: rest clamped to [0,7], previous-game
// minutes shifted with the default fill, expanding season average shifted by
// one game, opponent rating held at the league constant.
func (s *AnalysisService) stateFromGameLog(entry *nbastats.PlayerIndexEntry, rows []nbastats.GameLogRow) *PlayerState {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	totals := make(map[string]float64, len(predict.Stats))
	for _, row := range rows {
		for _, stat := range predict.Stats {
			totals[stat] += row.Stats[stat]
		}
	}
	averages := make(map[string]float64, len(predict.Stats))
	for _, stat := range predict.Stats {
		avg := totals[stat] / float64(len(rows))
		if avg < 0 {
			avg = 0
		}
		averages[stat] = avg
	}

	training := make([]predict.TrainingRow, 0, len(rows))
	running := make(map[string]float64, len(predict.Stats))
	for i, row := range rows {
		rest := schedule.DefaultRestDays
		if i > 0 {
			rest = schedule.RestDays(row.Date, rows[i-1].Date)
		}

		prevMinutes := predict.DefaultMinutes
		if i > 0 && rows[i-1].Minutes > 0 {
			prevMinutes = rows[i-1].Minutes
		}

		targets := make(map[string]float64, len(predict.Stats))
		seasonAvgs := make(map[string]float64, len(predict.Stats))
		for _, stat := range predict.Stats {
			// Expanding mean of games before this one; the overall
			// average seeds the first game
			seasonAvgs[stat] = averages[stat]
			if i > 0 {
				seasonAvgs[stat] = running[stat] / float64(i)
			}
			targets[stat] = row.Stats[stat]
		}

		training = append(training, predict.TrainingRow{
			Features: predict.Features{
				DaysRest:    float64(rest),
				Home:        row.Home,
				PrevMinutes: prevMinutes,
				SeasonAvg:   seasonAvgs["PTS"],
				OppRating:   predict.LeagueAvgDefRating,
			},
			Targets:    targets,
			SeasonAvgs: seasonAvgs,
		})

		for _, stat := range predict.Stats {
			running[stat] += row.Stats[stat]
		}
	}

	last := rows[len(rows)-1]
	lastMinutes := last.Minutes
	if lastMinutes <= 0 {
		lastMinutes = predict.DefaultMinutes
	}

	return &PlayerState{
		PlayerID:     entry.ID,
		Name:         entry.FullName,
		TeamID:       entry.TeamID,
		Positions:    scout.InferPositions(averages["AST"], averages["REB"]),
		Averages:     averages,
		LastGameDate: last.Date,
		LastMinutes:  lastMinutes,
		training:     training,
	}
}

// stateFromCareer is safe mode: career per-game averages only.
func (s *AnalysisService) stateFromCareer(ctx context.Context, entry *nbastats.PlayerIndexEntry) (*PlayerState, error) {
	seasons, err := s.stats.CareerSeasons(ctx, entry.ID)
	if err != nil || len(seasons) == 0 {
		return nil, ErrDataUnavailable
	}

	current := seasons[len(seasons)-1]
	games := current.GamesPlayed
	if games <= 0 {
		games = 1
	}

	averages := make(map[string]float64, len(predict.Stats))
	for _, stat := range predict.Stats {
		avg := current.Totals[stat] / float64(games)
		if avg < 0 {
			avg = 0
		}
		averages[stat] = avg
	}

	teamID := entry.TeamID
	if teamID == 0 {
		teamID = current.TeamID
	}

	return &PlayerState{
		PlayerID:     entry.ID,
		Name:         entry.FullName,
		TeamID:       teamID,
		Positions:    []string{"F"},
		Averages:     averages,
		LastGameDate: s.now(),
		LastMinutes:  predict.DefaultMinutes,
		SafeMode:     true,
	}, nil
}
