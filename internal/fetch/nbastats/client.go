package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fortuna/augur/internal/fetch"
)

const (
	// BaseURL is the stats API root.
	BaseURL = "https://stats.nba.com/stats"

	upstream = "nbastats"
)

// Client fetches stats API endpoints. The upstream fingerprints clients, so
// every request carries league-site Referer/Origin headers.
type Client struct {
	baseURL string
	fetcher *fetch.Client
}

// NewClient creates a stats API client.
func NewClient(baseURL string, fetcher *fetch.Client) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{baseURL: baseURL, fetcher: fetcher}
}

func statsHeaders() map[string]string {
	return map[string]string{
		"Accept":  "application/json",
		"Referer": "https://www.nba.com/",
		"Origin":  "https://www.nba.com/",
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	var resp Response
	if err := c.fetcher.GetJSON(ctx, upstream, u, statsHeaders(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlayerIndex fetches the league player index for a season.
func (c *Client) PlayerIndex(ctx context.Context, season string) ([]PlayerIndexEntry, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", season)
	params.Set("IsOnlyCurrentSeason", "1")

	resp, err := c.get(ctx, "commonallplayers", params)
	if err != nil {
		return nil, err
	}
	return parsePlayerIndex(resp)
}

// PlayerGameLog fetches one season of a player's game log, oldest game last.
func (c *Client) PlayerGameLog(ctx context.Context, playerID int, season string) ([]GameLogRow, error) {
	params := url.Values{}
	params.Set("PlayerID", fmt.Sprintf("%d", playerID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")

	resp, err := c.get(ctx, "playergamelog", params)
	if err != nil {
		return nil, err
	}
	return parseGameLog(resp)
}

// CareerSeasons fetches season total lines for a player, most recent last.
func (c *Client) CareerSeasons(ctx context.Context, playerID int) ([]CareerSeason, error) {
	params := url.Values{}
	params.Set("PlayerID", fmt.Sprintf("%d", playerID))
	params.Set("PerMode", "Totals")

	resp, err := c.get(ctx, "playercareerstats", params)
	if err != nil {
		return nil, err
	}
	return parseCareerSeasons(resp)
}

// GamesOn fetches the scoreboard for a calendar date.
func (c *Client) GamesOn(ctx context.Context, date time.Time) ([]ScoreboardGame, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("DayOffset", "0")
	params.Set("GameDate", date.Format("01/02/2006"))

	resp, err := c.get(ctx, "scoreboardv2", params)
	if err != nil {
		return nil, err
	}
	games, err := parseScoreboard(resp)
	if err != nil {
		return nil, err
	}
	// The scoreboard omits dates for same-day rows
	for i := range games {
		if games[i].Date.IsZero() {
			games[i].Date = date
		}
	}
	return games, nil
}

// TeamDefensiveRating fetches one team's defensive rating from the advanced
// dashboard.
func (c *Client) TeamDefensiveRating(ctx context.Context, teamID int, season string) (float64, error) {
	params := url.Values{}
	params.Set("TeamID", fmt.Sprintf("%d", teamID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("MeasureType", "Advanced")
	params.Set("PerMode", "PerGame")

	resp, err := c.get(ctx, "teamdashboardbygeneralsplits", params)
	if err != nil {
		return 0, err
	}
	return parseTeamDefRating(resp)
}

// TeamRoster fetches per-player season lines for one team. The Advanced
// measure carries DEF_RATING; Base carries scoring.
func (c *Client) TeamRoster(ctx context.Context, teamID int, season, measureType string) ([]RosterRow, error) {
	params := url.Values{}
	params.Set("TeamID", fmt.Sprintf("%d", teamID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("MeasureType", measureType)
	params.Set("PerMode", "PerGame")
	params.Set("LeagueID", "00")

	resp, err := c.get(ctx, "leaguedashplayerstats", params)
	if err != nil {
		return nil, err
	}
	return parseRoster(resp)
}
