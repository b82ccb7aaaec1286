package bref

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
<html><body>
<table id="ratings">
  <thead><tr><th data-stat="team_name">Team</th><th data-stat="def_rtg">DRtg</th></tr></thead>
  <tbody>
    <tr><td data-stat="team_name"><a href="/t/BOS">Boston Celtics</a></td><td data-stat="def_rtg">108.9</td></tr>
    <tr><td data-stat="team_name">Washington Wizards</td><td data-stat="def_rtg">120.1</td></tr>
    <tr><td data-stat="team_name">Broken Row</td><td data-stat="def_rtg">n/a</td></tr>
  </tbody>
</table>
</body></html>`

func TestParseRatings(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)

	defense, err := parseRatings(doc)
	require.NoError(t, err)

	assert.Equal(t, 108.9, defense["Boston Celtics"])
	assert.Equal(t, 120.1, defense["Washington Wizards"])
	assert.Len(t, defense, 2, "unparseable rows are skipped")
}

func TestParseRatingsMissingTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	_, err = parseRatings(doc)
	assert.Error(t, err)
}
