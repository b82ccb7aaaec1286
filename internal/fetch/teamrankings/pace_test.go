package teamrankings

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
<html><body>
<table class="datatable">
  <thead><tr><th>Rank</th><th>Team</th><th>2024</th><th>Last 3</th></tr></thead>
  <tbody>
    <tr><td>1</td><td><a href="/x">Memphis</a></td><td>103.4</td><td>104.1</td></tr>
    <tr><td>2</td><td>Washington</td><td>102.8</td><td>101.9</td></tr>
    <tr><td>3</td><td>Broken</td><td>--</td><td>--</td></tr>
  </tbody>
</table>
</body></html>`

func TestParsePace(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)

	pace, err := parsePace(doc)
	require.NoError(t, err)

	assert.Equal(t, 103.4, pace["Memphis"])
	assert.Equal(t, 102.8, pace["Washington"])
	assert.Len(t, pace, 2)
}

func TestParsePaceEmpty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><table></table></body></html>"))
	require.NoError(t, err)

	_, err = parsePace(doc)
	assert.Error(t, err)
}
