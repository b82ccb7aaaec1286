// Package bref scrapes the reference site's season ratings table. It backs up
// the stats API dashboard for defensive ratings.
package bref

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/augur/internal/fetch"
)

const (
	// DefaultBase is the reference site root.
	DefaultBase = "https://www.basketball-reference.com"

	upstream = "bref"
)

// Client scrapes reference-site season tables.
type Client struct {
	base    string
	fetcher *fetch.Client
}

// NewClient creates a reference-site client.
func NewClient(base string, fetcher *fetch.Client) *Client {
	if base == "" {
		base = DefaultBase
	}
	return &Client{base: strings.TrimRight(base, "/"), fetcher: fetcher}
}

// TeamDefense fetches the season ratings page and returns team name →
// defensive rating. endYear is the season's closing year (2025 for 2024-25).
func (c *Client) TeamDefense(ctx context.Context, endYear int) (map[string]float64, error) {
	url := fmt.Sprintf("%s/leagues/NBA_%d_ratings.html", c.base, endYear)
	doc, err := c.fetcher.GetDocument(ctx, upstream, url, nil)
	if err != nil {
		return nil, err
	}
	return parseRatings(doc)
}

// parseRatings reads the ratings table. The site tags every cell with a
// data-stat attribute, so column order never matters.
func parseRatings(doc *goquery.Document) (map[string]float64, error) {
	defense := make(map[string]float64)

	doc.Find("table#ratings tbody tr").Each(func(_ int, tr *goquery.Selection) {
		name := strings.TrimSpace(tr.Find(`[data-stat="team_name"]`).Text())
		raw := strings.TrimSpace(tr.Find(`[data-stat="def_rtg"]`).Text())
		if name == "" || raw == "" {
			return
		}
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		defense[name] = rating
	})

	if len(defense) == 0 {
		return nil, fmt.Errorf("no ratings rows found")
	}
	return defense, nil
}
