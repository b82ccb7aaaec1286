package service

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/nbadata"
	"github.com/fortuna/augur/internal/predict"
	"github.com/fortuna/augur/internal/scout"
)

const (
	injuryReportKey = "league:injuries"
	paceTableKey    = "league:pace"
	defenseTableKey = "league:defense"
)

// opponentDefRating resolves a team's defensive rating. The stats dashboard
// is authoritative; the season ratings table is the backup; the league
// average is the floor.
func (s *AnalysisService) opponentDefRating(ctx context.Context, teamID int) float64 {
	var rating float64
	key := "team:defrtg:" + strconv.Itoa(teamID)
	err := s.cached(ctx, key, s.cfg.LeagueTableTTL, &rating, func() (interface{}, error) {
		return s.stats.TeamDefensiveRating(ctx, teamID, s.cfg.CurrentSeason)
	})
	if err == nil && rating > 0 {
		return rating
	}

	if table := s.defenseTable(ctx); table != nil {
		if team, ok := nbadata.ByID(teamID); ok {
			for name, value := range table {
				if resolved, ok := nbadata.Resolve(name); ok && resolved.ID == team.ID && value > 0 {
					return value
				}
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"component": "service",
		"team_id":   teamID,
	}).Debug("Defensive rating unavailable, using league average")
	return predict.LeagueAvgDefRating
}

func (s *AnalysisService) defenseTable(ctx context.Context) map[string]float64 {
	if s.defense == nil {
		return nil
	}
	var table map[string]float64
	err := s.cached(ctx, defenseTableKey, s.cfg.LeagueTableTTL, &table, func() (interface{}, error) {
		return s.defense.TeamDefense(ctx, seasonEndYear(s.cfg.CurrentSeason, s.now()))
	})
	if err != nil {
		return nil
	}
	return table
}

// opponentPace resolves a team's possessions per game, 0 when unknown.
func (s *AnalysisService) opponentPace(ctx context.Context, teamID int) float64 {
	if s.pace == nil {
		return 0
	}
	var table map[string]float64
	err := s.cached(ctx, paceTableKey, s.cfg.LeagueTableTTL, &table, func() (interface{}, error) {
		return s.pace.LeaguePace(ctx)
	})
	if err != nil {
		return 0
	}

	team, ok := nbadata.ByID(teamID)
	if !ok {
		return 0
	}
	for name, value := range table {
		if resolved, ok := nbadata.Resolve(name); ok && resolved.ID == team.ID {
			return value
		}
	}
	return 0
}

// injuryReport fetches the league-wide report. A failed fetch means an empty
// report, never an error; analyses proceed assuming everyone is active.
func (s *AnalysisService) injuryReport(ctx context.Context) scout.Report {
	if s.injuries == nil {
		return scout.Report{}
	}
	var report map[string]string
	err := s.cached(ctx, injuryReportKey, s.cfg.LeagueTableTTL, &report, func() (interface{}, error) {
		return s.injuries.InjuryReport(ctx)
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"component": "service",
			"error":     err.Error(),
		}).Warn("Injury report unavailable, assuming all players active")
		return scout.Report{}
	}
	return scout.Report(report)
}

// InjuryReport exposes the cached league report to the API layer.
func (s *AnalysisService) InjuryReport(ctx context.Context) (map[string]string, error) {
	if s.injuries == nil {
		return nil, ErrDataUnavailable
	}
	var report map[string]string
	err := s.cached(ctx, injuryReportKey, s.cfg.LeagueTableTTL, &report, func() (interface{}, error) {
		return s.injuries.InjuryReport(ctx)
	})
	if err != nil {
		return nil, ErrDataUnavailable
	}
	return report, nil
}

// WarmLeagueTables refreshes the slow-moving league-wide tables. The cron
// warmer calls this off-peak so the first morning request is not a cold one.
func (s *AnalysisService) WarmLeagueTables(ctx context.Context) {
	start := s.now()

	if _, err := s.playerIndex(ctx); err != nil {
		s.log.WithField("error", err.Error()).Warn("Cache warm: player index failed")
	}
	s.injuryReport(ctx)
	if s.pace != nil {
		s.opponentPace(ctx, nbadata.Teams[0].ID)
	}
	if s.defense != nil {
		s.defenseTable(ctx)
	}

	s.log.WithFields(logrus.Fields{
		"component": "service",
		"duration":  time.Since(start).String(),
	}).Info("League table warm complete")
}

// seasonEndYear maps a season label like "2024-25" to its ratings-table end
// year (2025). Unparseable labels fall back to the calendar heuristic.
func seasonEndYear(season string, now time.Time) int {
	if len(season) >= 4 {
		if start, err := strconv.Atoi(season[:4]); err == nil {
			return start + 1
		}
	}
	if now.Month() >= time.September {
		return now.Year() + 1
	}
	return now.Year()
}
