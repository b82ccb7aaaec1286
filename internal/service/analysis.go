package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/fetch/nbastats"
	"github.com/fortuna/augur/internal/nbadata"
	"github.com/fortuna/augur/internal/predict"
	"github.com/fortuna/augur/internal/schedule"
	"github.com/fortuna/augur/internal/scout"
)

// Request is one analysis invocation. Lines maps statistic to the book's
// line; missing statistics default to the player's rounded season average.
type Request struct {
	Player    string             `json:"player"`
	Lines     map[string]float64 `json:"lines,omitempty"`
	Overrides Overrides          `json:"overrides,omitempty"`
}

// Overrides force a contextual modifier on or off regardless of what
// scouting found. Nil means "use the scouted value".
type Overrides struct {
	TeammateOut     *bool `json:"teammate_out,omitempty"`
	DefenderPenalty *bool `json:"defender_penalty,omitempty"`
}

// GameContext describes the upcoming game from the player's side.
type GameContext struct {
	Date        time.Time `json:"date"`
	Opponent    string    `json:"opponent"`
	OpponentID  int       `json:"opponent_id"`
	Home        bool      `json:"home"`
	DefRating   float64   `json:"def_rating"`
	DefenseBand string    `json:"defense_band"`
	Pace        float64   `json:"pace,omitempty"`
	RestDays    int       `json:"rest_days"`
	BackToBack  bool      `json:"back_to_back"`
}

// DefenderInfo is the scouted matchup threat in response form.
type DefenderInfo struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Class  string  `json:"class"`
	Out    bool    `json:"out"`
	Status string  `json:"status"`
}

// Projection is one statistic's final call against its line.
type Projection struct {
	Stat      string  `json:"stat"`
	Projected float64 `json:"projected"`
	Line      float64 `json:"line"`
	Edge      float64 `json:"edge"`
	Direction string  `json:"direction"`
	Stars     int     `json:"stars"`
	Tier      string  `json:"tier"`
}

// Analysis is the full response for one player.
type Analysis struct {
	Player        string               `json:"player"`
	Team          string               `json:"team"`
	Positions     []string             `json:"positions"`
	Mode          string               `json:"mode"`
	SafeMode      bool                 `json:"safe_mode,omitempty"`
	Game          GameContext          `json:"game"`
	TeammateAlert *scout.TeammateAlert `json:"teammate_alert,omitempty"`
	Defender      *DefenderInfo        `json:"defender,omitempty"`
	BaseEstimates map[string]float64   `json:"base_estimates"`
	Projections   []Projection         `json:"projections"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// baseAnalysis is the cacheable portion of an analysis: everything upstream
// of the request's lines and overrides.
type baseAnalysis struct {
	Player        string               `json:"player"`
	Team          string               `json:"team"`
	Positions     []string             `json:"positions"`
	Mode          string               `json:"mode"`
	SafeMode      bool                 `json:"safe_mode"`
	Averages      map[string]float64   `json:"averages"`
	Game          GameContext          `json:"game"`
	TeammateAlert *scout.TeammateAlert `json:"teammate_alert,omitempty"`
	Defender      *DefenderInfo        `json:"defender,omitempty"`
	BaseEstimates map[string]float64   `json:"base_estimates"`
}

// Analyze runs the full pipeline for one request. The expensive upstream half
// is cached per player; lines and overrides apply on top of the cached base.
func (s *AnalysisService) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	entry, err := s.ResolvePlayer(ctx, req.Player)
	if err != nil {
		return nil, err
	}

	var base baseAnalysis
	key := "analysis:" + strings.ToLower(entry.FullName)
	err = s.cached(ctx, key, s.cfg.AnalysisTTL, &base, func() (interface{}, error) {
		return s.buildAnalysis(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	analysis := s.finalize(&base, req)

	if s.pub != nil {
		if err := s.pub.PublishAnalysis(ctx, analysis); err != nil {
			s.log.WithFields(logrus.Fields{
				"component": "service",
				"player":    analysis.Player,
				"error":     err.Error(),
			}).Debug("Analysis publish failed")
		}
	}
	return analysis, nil
}

func (s *AnalysisService) buildAnalysis(ctx context.Context, entry *nbastats.PlayerIndexEntry) (*baseAnalysis, error) {
	state, err := s.buildPlayerState(ctx, entry)
	if err != nil {
		return nil, err
	}

	game, err := s.resolver.NextGame(ctx, state.TeamID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNoUpcomingGame
	}

	defRating := s.opponentDefRating(ctx, game.OpponentID)
	pace := s.opponentPace(ctx, game.OpponentID)
	report := s.injuryReport(ctx)

	opponentName := ""
	if team, ok := nbadata.ByID(game.OpponentID); ok {
		opponentName = team.DisplayName()
	}

	gameCtx := GameContext{
		Date:        game.Date,
		Opponent:    opponentName,
		OpponentID:  game.OpponentID,
		Home:        game.Home,
		DefRating:   defRating,
		DefenseBand: defenseBand(defRating),
		Pace:        pace,
		RestDays:    schedule.RestDays(game.Date, state.LastGameDate),
		BackToBack:  s.resolver.IsBackToBack(ctx, state.TeamID, game.Date),
	}

	alert := s.scoutTeammates(ctx, state, report)
	defender := s.scoutDefender(ctx, game.OpponentID, state.Positions, report)

	estimator := predict.Select(state.training, state.Averages, s.log)
	features := predict.Features{
		DaysRest:    float64(gameCtx.RestDays),
		Home:        gameCtx.Home,
		PrevMinutes: state.LastMinutes,
		OppRating:   defRating,
		Pace:        pace,
	}
	estimates := make(map[string]float64, len(predict.Stats))
	for _, stat := range predict.Stats {
		f := features
		f.SeasonAvg = state.Averages[stat]
		estimates[stat] = estimator.Estimate(stat, f)
	}

	teamName := ""
	if team, ok := nbadata.ByID(state.TeamID); ok {
		teamName = team.DisplayName()
	}

	return &baseAnalysis{
		Player:        state.Name,
		Team:          teamName,
		Positions:     state.Positions,
		Mode:          estimator.Mode(),
		SafeMode:      state.SafeMode,
		Averages:      state.Averages,
		Game:          gameCtx,
		TeammateAlert: alert,
		Defender:      defender,
		BaseEstimates: estimates,
	}, nil
}

func (s *AnalysisService) scoutTeammates(ctx context.Context, state *PlayerState, report scout.Report) *scout.TeammateAlert {
	roster, err := s.stats.TeamRoster(ctx, state.TeamID, s.cfg.CurrentSeason, "Base")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"component": "service",
			"team_id":   state.TeamID,
			"error":     err.Error(),
		}).Debug("Own roster unavailable, skipping teammate scouting")
		return nil
	}
	return scout.TeammateOut(roster, state.Name, report)
}

func (s *AnalysisService) scoutDefender(ctx context.Context, opponentID int, positions []string, report scout.Report) *DefenderInfo {
	advanced, err := s.stats.TeamRoster(ctx, opponentID, s.cfg.CurrentSeason, "Advanced")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"component": "service",
			"team_id":   opponentID,
			"error":     err.Error(),
		}).Debug("Opponent roster unavailable, skipping defender scouting")
		return nil
	}
	base, err := s.stats.TeamRoster(ctx, opponentID, s.cfg.CurrentSeason, "Base")
	if err != nil {
		base = nil
	}

	matchup := scout.ScoutDefender(advanced, base, positions, report)
	if matchup == nil {
		return nil
	}
	return &DefenderInfo{
		Name:   matchup.Name,
		Rating: matchup.Rating,
		Class:  matchup.Class.String(),
		Out:    matchup.Out,
		Status: matchup.Status,
	}
}

// finalize applies the request's lines and overrides to a cached base.
func (s *AnalysisService) finalize(base *baseAnalysis, req Request) *Analysis {
	mods := predict.Modifiers{
		TeammateOut: base.TeammateAlert != nil,
		Matchup:     matchupClass(base.Defender),
		BackToBack:  base.Game.BackToBack,
	}
	if req.Overrides.TeammateOut != nil {
		mods.TeammateOut = *req.Overrides.TeammateOut
	}
	if req.Overrides.DefenderPenalty != nil && !*req.Overrides.DefenderPenalty {
		mods.Matchup = predict.MatchupNone
	}
	factor := mods.Factor()

	projections := make([]Projection, 0, len(predict.Stats))
	for _, stat := range predict.Stats {
		line, ok := req.Lines[stat]
		if !ok || line <= 0 {
			line = math.Round(base.Averages[stat])
		}
		if line <= 0 {
			continue
		}

		projected := base.BaseEstimates[stat] * factor
		edge, tier := predict.Rate(projected, line)
		direction := "OVER"
		if edge < 0 {
			direction = "UNDER"
		}
		projections = append(projections, Projection{
			Stat:      stat,
			Projected: projected,
			Line:      line,
			Edge:      edge,
			Direction: direction,
			Stars:     tier.Stars(),
			Tier:      tier.String(),
		})
	}

	return &Analysis{
		Player:        base.Player,
		Team:          base.Team,
		Positions:     base.Positions,
		Mode:          base.Mode,
		SafeMode:      base.SafeMode,
		Game:          base.Game,
		TeammateAlert: base.TeammateAlert,
		Defender:      base.Defender,
		BaseEstimates: base.BaseEstimates,
		Projections:   projections,
		GeneratedAt:   s.now(),
	}
}

func matchupClass(d *DefenderInfo) predict.MatchupClass {
	if d == nil || d.Out {
		return predict.MatchupNone
	}
	switch d.Class {
	case "primary":
		return predict.MatchupPrimary
	case "switch":
		return predict.MatchupSwitch
	default:
		return predict.MatchupNone
	}
}

func defenseBand(rating float64) string {
	switch {
	case rating < predict.StrongDefenseRating:
		return "strong"
	case rating > predict.WeakDefenseRating:
		return "weak"
	default:
		return "average"
	}
}
