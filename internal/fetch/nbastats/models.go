package nbastats

import "time"

// Response is the stats API envelope. Every endpoint returns one or more
// named tables as parallel header/row arrays.
type Response struct {
	Resource   string      `json:"resource"`
	ResultSets []ResultSet `json:"resultSets"`
}

// ResultSet is one tabular payload inside a Response.
type ResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// PlayerIndexEntry is one row of the league player index.
type PlayerIndexEntry struct {
	ID       int
	FullName string
	TeamID   int
}

// GameLogRow is one game from a player's log.
type GameLogRow struct {
	Date    time.Time
	Home    bool
	Minutes float64
	Stats   map[string]float64 // keyed PTS, REB, AST
}

// CareerSeason is one season line from career totals.
type CareerSeason struct {
	TeamID      int
	GamesPlayed int
	Totals      map[string]float64
}

// ScoreboardGame is one scheduled game from the scoreboard.
type ScoreboardGame struct {
	Date          time.Time
	HomeTeamID    int
	VisitorTeamID int
}

// RosterRow is one player line from a team dashboard. The Base measure fills
// the box-score columns, the Advanced measure fills DefRating.
type RosterRow struct {
	Name      string
	Minutes   float64
	Points    float64
	Rebounds  float64
	Assists   float64
	DefRating float64
}
