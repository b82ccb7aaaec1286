// Package service orchestrates an analysis request: resolve the player, build
// their state from public stat sources, resolve the next game, scout the
// matchup, and produce per-statistic projections. Every upstream failure
// degrades to a documented fallback; the only user-facing errors are the
// three terminal ones below.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/cache"
	"github.com/fortuna/augur/internal/fetch/nbastats"
	"github.com/fortuna/augur/internal/schedule"
)

// Terminal user-facing failures. Everything else degrades silently.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNoUpcomingGame  = errors.New("no upcoming game found")
	ErrDataUnavailable = errors.New("external data unavailable")
)

// StatsSource is the stats API surface the service consumes.
type StatsSource interface {
	PlayerIndex(ctx context.Context, season string) ([]nbastats.PlayerIndexEntry, error)
	PlayerGameLog(ctx context.Context, playerID int, season string) ([]nbastats.GameLogRow, error)
	CareerSeasons(ctx context.Context, playerID int) ([]nbastats.CareerSeason, error)
	GamesOn(ctx context.Context, date time.Time) ([]nbastats.ScoreboardGame, error)
	TeamDefensiveRating(ctx context.Context, teamID int, season string) (float64, error)
	TeamRoster(ctx context.Context, teamID int, season, measureType string) ([]nbastats.RosterRow, error)
}

// InjurySource provides the league-wide injury report.
type InjurySource interface {
	InjuryReport(ctx context.Context) (map[string]string, error)
}

// PaceSource provides possessions per game by team name.
type PaceSource interface {
	LeaguePace(ctx context.Context) (map[string]float64, error)
}

// DefenseSource is the backup provider of per-team defensive ratings.
type DefenseSource interface {
	TeamDefense(ctx context.Context, endYear int) (map[string]float64, error)
}

// Publisher emits completed analyses. Satisfied by publisher.RedisPublisher.
type Publisher interface {
	PublishAnalysis(ctx context.Context, analysis interface{}) error
}

// Config holds the service's tunables.
type Config struct {
	CurrentSeason  string
	PreviousSeason string
	AnalysisTTL    time.Duration
	LeagueTableTTL time.Duration
	PlayerIndexTTL time.Duration
}

// AnalysisService is the core orchestrator behind the API surface.
type AnalysisService struct {
	stats    StatsSource
	injuries InjurySource
	pace     PaceSource
	defense  DefenseSource
	resolver *schedule.Resolver
	cache    cache.Cache
	pub      Publisher
	log      *logrus.Logger
	cfg      Config
	now      func() time.Time
}

// NewAnalysisService wires the orchestrator. pace, defense, fallback schedule
// and pub may be nil; their concerns then degrade to fallback constants.
func NewAnalysisService(
	stats StatsSource,
	injuries InjurySource,
	pace PaceSource,
	defense DefenseSource,
	fallbackSchedule schedule.Source,
	store cache.Cache,
	pub Publisher,
	log *logrus.Logger,
	cfg Config,
) *AnalysisService {
	if log == nil {
		log = logrus.New()
	}
	if cfg.AnalysisTTL <= 0 {
		cfg.AnalysisTTL = 10 * time.Minute
	}
	if cfg.LeagueTableTTL <= 0 {
		cfg.LeagueTableTTL = time.Hour
	}
	if cfg.PlayerIndexTTL <= 0 {
		cfg.PlayerIndexTTL = time.Hour
	}

	svc := &AnalysisService{
		stats:    stats,
		injuries: injuries,
		pace:     pace,
		defense:  defense,
		cache:    store,
		pub:      pub,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
	svc.resolver = schedule.NewResolver(&scoreboardSource{stats: stats}, fallbackSchedule, log)
	return svc
}

// scoreboardSource adapts the stats API scoreboard to the schedule feed.
type scoreboardSource struct {
	stats StatsSource
}

func (s *scoreboardSource) GamesOn(ctx context.Context, date time.Time) ([]schedule.Entry, error) {
	games, err := s.stats.GamesOn(ctx, date)
	if err != nil {
		return nil, err
	}
	entries := make([]schedule.Entry, 0, len(games))
	for _, g := range games {
		entries = append(entries, schedule.Entry{
			Date:          g.Date,
			HomeTeamID:    g.HomeTeamID,
			VisitorTeamID: g.VisitorTeamID,
		})
	}
	return entries, nil
}

// NextGame exposes schedule resolution to the API layer.
func (s *AnalysisService) NextGame(ctx context.Context, teamID int) (*schedule.Game, error) {
	return s.resolver.NextGame(ctx, teamID)
}

// cached wraps a fetch in the TTL cache. A cache outage never blocks the
// fetch path.
func (s *AnalysisService) cached(ctx context.Context, key string, ttl time.Duration, out interface{}, fill func() (interface{}, error)) error {
	if s.cache != nil {
		if err := cache.GetJSON(ctx, s.cache, key, out); err == nil {
			return nil
		}
	}

	value, err := fill()
	if err != nil {
		return err
	}

	data, err := remarshal(value, out)
	if err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data, ttl); err != nil {
			s.log.WithFields(logrus.Fields{
				"component": "service",
				"key":       key,
				"error":     err.Error(),
			}).Debug("Cache write failed")
		}
	}
	return nil
}

// remarshal copies value into out through its JSON form and returns the
// serialized payload for the cache.
func remarshal(value interface{}, out interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), json.Unmarshal(data, out)
}
