package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/cache"
	"github.com/fortuna/augur/internal/fetch/nbastats"
	"github.com/fortuna/augur/internal/predict"
)

const (
	warriorsID = 1610612744
	celticsID  = 1610612738
)

type fakeStats struct {
	index       []nbastats.PlayerIndexEntry
	gameLogs    map[int][]nbastats.GameLogRow
	gameLogErr  error
	careers     map[int][]nbastats.CareerSeason
	games       []nbastats.ScoreboardGame
	defRating   float64
	defErr      error
	rosters     map[string][]nbastats.RosterRow // key teamID-measureType
	indexCalls  int
	logCalls    int
	boardCalls  int
	rosterCalls int
}

func (f *fakeStats) PlayerIndex(ctx context.Context, season string) ([]nbastats.PlayerIndexEntry, error) {
	f.indexCalls++
	return f.index, nil
}

func (f *fakeStats) PlayerGameLog(ctx context.Context, playerID int, season string) ([]nbastats.GameLogRow, error) {
	f.logCalls++
	if f.gameLogErr != nil {
		return nil, f.gameLogErr
	}
	if season != "2024-25" {
		return nil, errors.New("season not loaded")
	}
	return f.gameLogs[playerID], nil
}

func (f *fakeStats) CareerSeasons(ctx context.Context, playerID int) ([]nbastats.CareerSeason, error) {
	if seasons, ok := f.careers[playerID]; ok {
		return seasons, nil
	}
	return nil, errors.New("no career data")
}

func (f *fakeStats) GamesOn(ctx context.Context, date time.Time) ([]nbastats.ScoreboardGame, error) {
	f.boardCalls++
	var out []nbastats.ScoreboardGame
	for _, g := range f.games {
		if sameDay(g.Date, date) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStats) TeamDefensiveRating(ctx context.Context, teamID int, season string) (float64, error) {
	if f.defErr != nil {
		return 0, f.defErr
	}
	return f.defRating, nil
}

func (f *fakeStats) TeamRoster(ctx context.Context, teamID int, season, measureType string) ([]nbastats.RosterRow, error) {
	f.rosterCalls++
	key := measureType + ":" + teamAbbr(teamID)
	if roster, ok := f.rosters[key]; ok {
		return roster, nil
	}
	return nil, errors.New("no roster")
}

func teamAbbr(n int) string {
	switch n {
	case warriorsID:
		return "GSW"
	case celticsID:
		return "BOS"
	default:
		return "?"
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

type fakeInjuries struct {
	report map[string]string
	err    error
}

func (f *fakeInjuries) InjuryReport(ctx context.Context) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakePace struct{ table map[string]float64 }

func (f *fakePace) LeaguePace(ctx context.Context) (map[string]float64, error) {
	return f.table, nil
}

type capturingPublisher struct{ published []interface{} }

func (p *capturingPublisher) PublishAnalysis(ctx context.Context, analysis interface{}) error {
	p.published = append(p.published, analysis)
	return nil
}

// gameLog builds n games ending two days before now, every other game at home.
func gameLog(n int, pts, reb, ast float64) []nbastats.GameLogRow {
	rows := make([]nbastats.GameLogRow, 0, n)
	end := time.Now().AddDate(0, 0, -2)
	for i := 0; i < n; i++ {
		rows = append(rows, nbastats.GameLogRow{
			Date:    end.AddDate(0, 0, -2*(n-1-i)),
			Home:    i%2 == 0,
			Minutes: 34,
			Stats:   map[string]float64{"PTS": pts, "REB": reb, "AST": ast},
		})
	}
	return rows
}

func newFixture() (*fakeStats, *AnalysisService, *capturingPublisher) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	stats := &fakeStats{
		index: []nbastats.PlayerIndexEntry{
			{ID: 201939, FullName: "Stephen Curry", TeamID: warriorsID},
			{ID: 1628369, FullName: "Jayson Tatum", TeamID: celticsID},
		},
		gameLogs: map[int][]nbastats.GameLogRow{
			201939: gameLog(20, 27.0, 5.0, 6.2),
		},
		games: []nbastats.ScoreboardGame{
			{Date: tomorrow, HomeTeamID: warriorsID, VisitorTeamID: celticsID},
		},
		defRating: 112.0,
		rosters: map[string][]nbastats.RosterRow{
			"Base:GSW": {
				{Name: "Stephen Curry", Points: 27.0},
				{Name: "Jimmy Butler", Points: 19.5},
				{Name: "Draymond Green", Points: 9.0},
			},
			"Advanced:BOS": {
				{Name: "Jrue Holiday", Minutes: 31.0, DefRating: 105.0},
				{Name: "Payton Pritchard", Minutes: 27.0, DefRating: 114.0},
			},
			"Base:BOS": {
				{Name: "Jrue Holiday", Assists: 5.5, Rebounds: 4.0},
			},
		},
	}

	pub := &capturingPublisher{}
	svc := NewAnalysisService(
		stats,
		&fakeInjuries{report: map[string]string{}},
		&fakePace{table: map[string]float64{"Boston Celtics": 101.5}},
		nil,
		nil,
		cache.NewMemoryCache(),
		pub,
		nil,
		Config{CurrentSeason: "2024-25", PreviousSeason: "2023-24"},
	)
	return stats, svc, pub
}

func TestAnalyzeTrainedMode(t *testing.T) {
	_, svc, pub := newFixture()

	analysis, err := svc.Analyze(context.Background(), Request{
		Player: "stephen curry",
		Lines:  map[string]float64{"PTS": 26.5, "REB": 4.5, "AST": 5.5},
	})
	require.NoError(t, err)

	assert.Equal(t, "Stephen Curry", analysis.Player)
	assert.Equal(t, "Golden State Warriors", analysis.Team)
	assert.Equal(t, "trained", analysis.Mode)
	assert.False(t, analysis.SafeMode)

	assert.Equal(t, "Boston Celtics", analysis.Game.Opponent)
	assert.True(t, analysis.Game.Home)
	assert.Equal(t, 112.0, analysis.Game.DefRating)
	assert.Equal(t, "average", analysis.Game.DefenseBand)
	assert.Equal(t, 101.5, analysis.Game.Pace)
	assert.Equal(t, 2, analysis.Game.RestDays, "last game two days ago, game tomorrow")
	assert.False(t, analysis.Game.BackToBack)

	require.Len(t, analysis.Projections, 3)
	for _, p := range analysis.Projections {
		if p.Edge >= 0 {
			assert.Equal(t, "OVER", p.Direction)
		} else {
			assert.Equal(t, "UNDER", p.Direction)
		}
		assert.InDelta(t, p.Projected-p.Line, p.Edge, 1e-9)
	}

	require.Len(t, pub.published, 1)
}

func TestAnalyzeDefenderScouting(t *testing.T) {
	_, svc, _ := newFixture()

	analysis, err := svc.Analyze(context.Background(), Request{Player: "Stephen Curry"})
	require.NoError(t, err)

	require.NotNil(t, analysis.Defender)
	assert.Equal(t, "Jrue Holiday", analysis.Defender.Name)
	// Holiday's box profile infers guard, matching Curry's inferred position
	assert.Equal(t, "primary", analysis.Defender.Class)
}

func TestAnalyzeHeuristicModeOnShortLog(t *testing.T) {
	stats, svc, _ := newFixture()
	stats.gameLogs[201939] = gameLog(4, 20.0, 4.0, 3.0)

	analysis, err := svc.Analyze(context.Background(), Request{Player: "Stephen Curry"})
	require.NoError(t, err)
	assert.Equal(t, "heuristic", analysis.Mode)
	assert.False(t, analysis.SafeMode)
}

func TestAnalyzeSafeModeFromCareerTotals(t *testing.T) {
	stats, svc, _ := newFixture()
	stats.gameLogErr = errors.New("upstream down")
	stats.careers = map[int][]nbastats.CareerSeason{
		201939: {
			{TeamID: warriorsID, GamesPlayed: 70, Totals: map[string]float64{"PTS": 1750, "REB": 350, "AST": 420}},
		},
	}

	analysis, err := svc.Analyze(context.Background(), Request{Player: "Stephen Curry"})
	require.NoError(t, err)
	assert.True(t, analysis.SafeMode)
	assert.Equal(t, "heuristic", analysis.Mode)
	assert.InDelta(t, 25.0, analysis.BaseEstimates["PTS"]/(112.0/predict.LeagueAvgDefRating)/(101.5/predict.LeagueAvgPace)/predict.HomeCourtBonus, 1e-9)
}

func TestAnalyzeDataUnavailable(t *testing.T) {
	stats, svc, _ := newFixture()
	stats.gameLogErr = errors.New("upstream down")

	_, err := svc.Analyze(context.Background(), Request{Player: "Stephen Curry"})
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestAnalyzePlayerNotFound(t *testing.T) {
	_, svc, _ := newFixture()

	_, err := svc.Analyze(context.Background(), Request{Player: "Steph"})
	assert.ErrorIs(t, err, ErrPlayerNotFound, "identity requires the exact full name")

	_, err = svc.Analyze(context.Background(), Request{Player: ""})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestAnalyzeNoUpcomingGame(t *testing.T) {
	stats, svc, _ := newFixture()
	stats.games = nil

	_, err := svc.Analyze(context.Background(), Request{Player: "Stephen Curry"})
	assert.ErrorIs(t, err, ErrNoUpcomingGame)
}

func TestAnalyzeDefaultLinesAreRoundedAverages(t *testing.T) {
	_, svc, _ := newFixture()

	analysis, err := svc.Analyze(context.Background(), Request{Player: "Stephen Curry"})
	require.NoError(t, err)

	byStat := make(map[string]Projection)
	for _, p := range analysis.Projections {
		byStat[p.Stat] = p
	}
	assert.Equal(t, 27.0, byStat["PTS"].Line)
	assert.Equal(t, 5.0, byStat["REB"].Line)
	assert.Equal(t, math.Round(6.2), byStat["AST"].Line)
}

func TestAnalyzeOverrides(t *testing.T) {
	_, svc, _ := newFixture()
	ctx := context.Background()

	scouted, err := svc.Analyze(ctx, Request{Player: "Stephen Curry"})
	require.NoError(t, err)
	require.NotNil(t, scouted.Defender)

	off := false
	on := true
	overridden, err := svc.Analyze(ctx, Request{
		Player:    "Stephen Curry",
		Overrides: Overrides{DefenderPenalty: &off, TeammateOut: &on},
	})
	require.NoError(t, err)

	// Same cached base, different modifier set: the ratio of projections is
	// exactly the ratio of the modifier factors
	want := predict.TeammateOutBoost / predict.PrimaryMatchupPenalty
	for i, p := range overridden.Projections {
		assert.InDelta(t, want, p.Projected/scouted.Projections[i].Projected, 1e-9)
	}
}

func TestAnalyzeTeammateOutBoost(t *testing.T) {
	_, svc, _ := newFixture()
	svc.injuries = &fakeInjuries{report: map[string]string{"jimmy butler": "out (ankle)"}}

	analysis, err := svc.Analyze(context.Background(), Request{Player: "Stephen Curry"})
	require.NoError(t, err)

	require.NotNil(t, analysis.TeammateAlert)
	assert.Equal(t, "Jimmy Butler", analysis.TeammateAlert.Name)
}

func TestAnalyzeReusesCachedBase(t *testing.T) {
	stats, svc, _ := newFixture()
	ctx := context.Background()

	_, err := svc.Analyze(ctx, Request{Player: "Stephen Curry"})
	require.NoError(t, err)
	logCalls := stats.logCalls

	_, err = svc.Analyze(ctx, Request{Player: "Stephen Curry", Lines: map[string]float64{"PTS": 30}})
	require.NoError(t, err)
	assert.Equal(t, logCalls, stats.logCalls, "second request must come from the cached base")
}

func TestSearchPlayers(t *testing.T) {
	_, svc, _ := newFixture()

	matches, err := svc.SearchPlayers(context.Background(), "curry", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Stephen Curry", matches[0].FullName)

	matches, err = svc.SearchPlayers(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
