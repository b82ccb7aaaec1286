// Package teamrankings scrapes the team-rankings pace table.
package teamrankings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/augur/internal/fetch"
)

const (
	// DefaultBase is the rankings site root.
	DefaultBase = "https://www.teamrankings.com"

	upstream = "teamrankings"
)

// Client scrapes team-rankings stat tables.
type Client struct {
	base    string
	fetcher *fetch.Client
}

// NewClient creates a team-rankings client.
func NewClient(base string, fetcher *fetch.Client) *Client {
	if base == "" {
		base = DefaultBase
	}
	return &Client{base: strings.TrimRight(base, "/"), fetcher: fetcher}
}

// LeaguePace fetches possessions per game for every team, keyed by the site's
// team name.
func (c *Client) LeaguePace(ctx context.Context) (map[string]float64, error) {
	url := c.base + "/nba/stat/possessions-per-game"
	doc, err := c.fetcher.GetDocument(ctx, upstream, url, nil)
	if err != nil {
		return nil, err
	}
	return parsePace(doc)
}

// parsePace reads the first data table: rank, team, current-season value.
func parsePace(doc *goquery.Document) (map[string]float64, error) {
	pace := make(map[string]float64)

	doc.Find("table").First().Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return
		}
		name := strings.TrimSpace(cells.Eq(1).Text())
		raw := strings.TrimSpace(cells.Eq(2).Text())
		if name == "" || raw == "" {
			return
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		pace[name] = value
	})

	if len(pace) == 0 {
		return nil, fmt.Errorf("no pace rows found")
	}
	return pace, nil
}
