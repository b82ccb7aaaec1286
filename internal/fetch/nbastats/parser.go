package nbastats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Stat column labels. Looking columns up by label survives upstream column
// reordering, which the stats API does between seasons.
const (
	colPersonID      = "PERSON_ID"
	colDisplayName   = "DISPLAY_FIRST_LAST"
	colTeamID        = "TEAM_ID"
	colGameDate      = "GAME_DATE"
	colMatchup       = "MATCHUP"
	colMinutes       = "MIN"
	colPoints        = "PTS"
	colRebounds      = "REB"
	colAssists       = "AST"
	colGamesPlayed   = "GP"
	colHomeTeamID    = "HOME_TEAM_ID"
	colVisitorTeamID = "VISITOR_TEAM_ID"
	colGameDateEST   = "GAME_DATE_EST"
	colPlayerName    = "PLAYER_NAME"
	colDefRating     = "DEF_RATING"
)

// gameDateLayouts covers the formats the stats API has shipped for log dates.
var gameDateLayouts = []string{"Jan 02, 2006", "2006-01-02T15:04:05", "2006-01-02"}

// table wraps a ResultSet with label-based column access.
type table struct {
	index map[string]int
	rows  [][]interface{}
}

func newTable(rs ResultSet) *table {
	index := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		index[strings.ToUpper(h)] = i
	}
	return &table{index: index, rows: rs.RowSet}
}

// findResultSet locates a named table, falling back to the first one. The API
// renames tables occasionally but always leads with the primary payload.
func findResultSet(resp *Response, name string) (ResultSet, error) {
	if len(resp.ResultSets) == 0 {
		return ResultSet{}, fmt.Errorf("response has no result sets")
	}
	for _, rs := range resp.ResultSets {
		if strings.EqualFold(rs.Name, name) {
			return rs, nil
		}
	}
	return resp.ResultSets[0], nil
}

func (t *table) cell(row []interface{}, col string) (interface{}, bool) {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return nil, false
	}
	return row[i], true
}

func (t *table) str(row []interface{}, col string) string {
	v, ok := t.cell(row, col)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func (t *table) float(row []interface{}, col string) float64 {
	v, ok := t.cell(row, col)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func (t *table) int(row []interface{}, col string) int {
	return int(t.float(row, col))
}

// parseMinutes accepts "34", "34.5" or the clock form "34:12".
func parseMinutes(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if i := strings.Index(raw, ":"); i >= 0 {
		raw = raw[:i]
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseGameDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	// Log dates arrive uppercased ("APR 09, 2025")
	normalized := raw
	if len(raw) > 1 {
		normalized = strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
	}
	for _, layout := range gameDateLayouts {
		if ts, err := time.Parse(layout, normalized); err == nil {
			return ts, nil
		}
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized game date %q", raw)
}

// parsePlayerIndex extracts the league player index.
func parsePlayerIndex(resp *Response) ([]PlayerIndexEntry, error) {
	rs, err := findResultSet(resp, "CommonAllPlayers")
	if err != nil {
		return nil, err
	}
	t := newTable(rs)

	entries := make([]PlayerIndexEntry, 0, len(t.rows))
	for _, row := range t.rows {
		name := t.str(row, colDisplayName)
		id := t.int(row, colPersonID)
		if name == "" || id == 0 {
			continue
		}
		entries = append(entries, PlayerIndexEntry{
			ID:       id,
			FullName: name,
			TeamID:   t.int(row, colTeamID),
		})
	}
	return entries, nil
}

// parseGameLog extracts a player's game log rows.
func parseGameLog(resp *Response) ([]GameLogRow, error) {
	rs, err := findResultSet(resp, "PlayerGameLog")
	if err != nil {
		return nil, err
	}
	t := newTable(rs)

	var rows []GameLogRow
	for _, row := range t.rows {
		date, err := parseGameDate(t.str(row, colGameDate))
		if err != nil {
			// Skip rows we cannot date; the log is still usable
			continue
		}
		rows = append(rows, GameLogRow{
			Date: date,
			// "LAL vs. BOS" is a home game, "LAL @ BOS" is away
			Home:    strings.Contains(t.str(row, colMatchup), "vs."),
			Minutes: parseMinutes(t.str(row, colMinutes)),
			Stats: map[string]float64{
				"PTS": t.float(row, colPoints),
				"REB": t.float(row, colRebounds),
				"AST": t.float(row, colAssists),
			},
		})
	}
	return rows, nil
}

// parseCareerSeasons extracts season total lines from career stats.
func parseCareerSeasons(resp *Response) ([]CareerSeason, error) {
	rs, err := findResultSet(resp, "SeasonTotalsRegularSeason")
	if err != nil {
		return nil, err
	}
	t := newTable(rs)

	var seasons []CareerSeason
	for _, row := range t.rows {
		seasons = append(seasons, CareerSeason{
			TeamID:      t.int(row, colTeamID),
			GamesPlayed: t.int(row, colGamesPlayed),
			Totals: map[string]float64{
				"PTS": t.float(row, colPoints),
				"REB": t.float(row, colRebounds),
				"AST": t.float(row, colAssists),
			},
		})
	}
	return seasons, nil
}

// parseScoreboard extracts scheduled games from a scoreboard response.
func parseScoreboard(resp *Response) ([]ScoreboardGame, error) {
	rs, err := findResultSet(resp, "GameHeader")
	if err != nil {
		return nil, err
	}
	t := newTable(rs)

	var games []ScoreboardGame
	for _, row := range t.rows {
		game := ScoreboardGame{
			HomeTeamID:    t.int(row, colHomeTeamID),
			VisitorTeamID: t.int(row, colVisitorTeamID),
		}
		if game.HomeTeamID == 0 || game.VisitorTeamID == 0 {
			continue
		}
		if raw := t.str(row, colGameDateEST); raw != "" {
			if ts, err := parseGameDate(raw); err == nil {
				game.Date = ts
			}
		}
		games = append(games, game)
	}
	return games, nil
}

// parseTeamDefRating extracts DEF_RATING from an advanced team dashboard.
func parseTeamDefRating(resp *Response) (float64, error) {
	rs, err := findResultSet(resp, "OverallTeamDashboard")
	if err != nil {
		return 0, err
	}
	t := newTable(rs)
	if len(t.rows) == 0 {
		return 0, fmt.Errorf("team dashboard is empty")
	}
	rating := t.float(t.rows[0], colDefRating)
	if rating == 0 {
		return 0, fmt.Errorf("team dashboard has no %s column", colDefRating)
	}
	return rating, nil
}

// parseRoster extracts per-player lines from a league player dashboard.
func parseRoster(resp *Response) ([]RosterRow, error) {
	rs, err := findResultSet(resp, "LeagueDashPlayerStats")
	if err != nil {
		return nil, err
	}
	t := newTable(rs)

	var rows []RosterRow
	for _, row := range t.rows {
		name := t.str(row, colPlayerName)
		if name == "" {
			continue
		}
		rows = append(rows, RosterRow{
			Name:      name,
			Minutes:   t.float(row, colMinutes),
			Points:    t.float(row, colPoints),
			Rebounds:  t.float(row, colRebounds),
			Assists:   t.float(row, colAssists),
			DefRating: t.float(row, colDefRating),
		})
	}
	return rows, nil
}
