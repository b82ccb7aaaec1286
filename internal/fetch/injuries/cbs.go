// Package injuries scrapes a sports-news injury table into a name → status
// map. Keys and values are lowercased; lookups are substring matches done by
// the scout package.
package injuries

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/augur/internal/fetch"
)

const (
	// DefaultURL is the injury report page.
	DefaultURL = "https://www.cbssports.com/nba/injuries/"

	upstream = "injuries"
)

// Client scrapes the injury report.
type Client struct {
	url     string
	fetcher *fetch.Client
}

// NewClient creates an injury report client.
func NewClient(url string, fetcher *fetch.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{url: url, fetcher: fetcher}
}

// InjuryReport fetches and parses the league-wide injury table.
func (c *Client) InjuryReport(ctx context.Context) (map[string]string, error) {
	doc, err := c.fetcher.GetDocument(ctx, upstream, c.url, nil)
	if err != nil {
		return nil, err
	}
	return parseReport(doc)
}

// parseReport walks every table on the page, locating player and status
// columns by header label. One page carries one table per team.
func parseReport(doc *goquery.Document) (map[string]string, error) {
	report := make(map[string]string)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		playerCol, statusCol := -1, -1
		table.Find("thead th").Each(func(i int, th *goquery.Selection) {
			label := strings.ToLower(strings.TrimSpace(th.Text()))
			switch {
			case strings.Contains(label, "player"):
				playerCol = i
			case strings.Contains(label, "status"):
				statusCol = i
			}
		})
		if playerCol < 0 || statusCol < 0 {
			return
		}

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() <= playerCol || cells.Length() <= statusCol {
				return
			}

			name := playerName(cells.Eq(playerCol))
			status := strings.ToLower(strings.TrimSpace(cells.Eq(statusCol).Text()))
			if name == "" || status == "" {
				return
			}
			report[name] = status
		})
	})

	if len(report) == 0 {
		return nil, fmt.Errorf("no injury rows found")
	}
	return report, nil
}

// playerName extracts a lowercased player name from the cell. The page nests
// long and short name variants; the anchor carries the clean long form.
func playerName(cell *goquery.Selection) string {
	text := cell.Find("a").First().Text()
	if text == "" {
		text = cell.Text()
	}
	// Some variants append position after a bullet
	if i := strings.Index(text, "•"); i >= 0 {
		text = text[:i]
	}
	return strings.ToLower(strings.TrimSpace(text))
}
