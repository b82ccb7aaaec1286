package nbadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByID(t *testing.T) {
	team, ok := ByID(1610612747)
	require.True(t, ok)
	assert.Equal(t, "LAL", team.Abbreviation)
	assert.Equal(t, "Lakers", team.Nickname)

	_, ok = ByID(42)
	assert.False(t, ok)
}

func TestResolveAbbreviation(t *testing.T) {
	team, ok := Resolve("gsw")
	require.True(t, ok)
	assert.Equal(t, "Warriors", team.Nickname)
}

func TestResolveNickname(t *testing.T) {
	cases := map[string]string{
		"Boston Celtics":     "BOS",
		"celtics":            "BOS",
		"Trail Blazers":      "POR",
		"los angeles lakers": "LAL",
		"Knicks":             "NYK",
	}
	for input, want := range cases {
		team, ok := Resolve(input)
		require.True(t, ok, "expected %q to resolve", input)
		assert.Equal(t, want, team.Abbreviation, "input %q", input)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, ok := Resolve("Harlem Globetrotters")
	assert.False(t, ok)

	_, ok = Resolve("")
	assert.False(t, ok)
}

func TestDirectoryComplete(t *testing.T) {
	assert.Len(t, Teams, 30)

	seen := make(map[string]bool)
	for _, team := range Teams {
		assert.False(t, seen[team.Abbreviation], "duplicate %s", team.Abbreviation)
		seen[team.Abbreviation] = true
	}
}
