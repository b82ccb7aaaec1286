package scout

import (
	"sort"
	"strings"

	"github.com/fortuna/augur/internal/fetch/nbastats"
	"github.com/fortuna/augur/internal/predict"
)

// Matchup is the scouted elite-defender threat on the opposing roster.
type Matchup struct {
	Name   string               `json:"name"`
	Rating float64              `json:"rating"`
	Class  predict.MatchupClass `json:"-"`
	Out    bool                 `json:"out"`
	Status string               `json:"status"`
}

// ScoutDefender finds the toughest healthy rotation defender on the opposing
// roster. advanced carries defensive ratings, base carries box-score averages
// used for position inference. Either may be empty; missing data degrades to
// no threat.
func ScoutDefender(advanced, base []nbastats.RosterRow, playerPositions []string, report Report) *Matchup {
	rotation := make([]nbastats.RosterRow, 0, len(advanced))
	for _, row := range advanced {
		if row.Minutes > predict.RotationMinutes && row.DefRating > 0 {
			rotation = append(rotation, row)
		}
	}
	// Lowest defensive rating is the toughest matchup
	sort.SliceStable(rotation, func(i, j int) bool {
		return rotation[i].DefRating < rotation[j].DefRating
	})

	boxByName := make(map[string]nbastats.RosterRow, len(base))
	for _, row := range base {
		boxByName[strings.ToLower(row.Name)] = row
	}

	for _, row := range rotation {
		if row.DefRating >= predict.EliteDefenderRating {
			// Sorted ascending, nobody further down qualifies
			break
		}

		matchup := &Matchup{
			Name:   row.Name,
			Rating: row.DefRating,
			Status: report.Status(row.Name),
			Class:  predict.MatchupPrimary,
		}
		if IsOut(matchup.Status) {
			matchup.Out = true
			matchup.Class = predict.MatchupNone
			return matchup
		}

		// A threat guarding another position only switches onto the player
		if box, ok := boxByName[strings.ToLower(row.Name)]; ok {
			defenderPositions := InferPositions(box.Assists, box.Rebounds)
			if !positionsOverlap(playerPositions, defenderPositions) {
				matchup.Class = predict.MatchupSwitch
			}
		}
		return matchup
	}
	return nil
}
