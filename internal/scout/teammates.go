package scout

import (
	"sort"
	"strings"

	"github.com/fortuna/augur/internal/fetch/nbastats"
)

// TopTeammates is how many top scorers are checked for absence.
const TopTeammates = 3

// TeammateAlert identifies an absent top scorer.
type TeammateAlert struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// TeammateOut checks the player's top scoring teammates against the injury
// report. The first one ruled out produces the usage-boost alert.
func TeammateOut(roster []nbastats.RosterRow, playerName string, report Report) *TeammateAlert {
	sorted := make([]nbastats.RosterRow, len(roster))
	copy(sorted, roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	checked := 0
	for _, row := range sorted {
		if strings.EqualFold(row.Name, playerName) {
			continue
		}
		status := report.Status(row.Name)
		if IsOut(status) {
			return &TeammateAlert{Name: row.Name, Status: status}
		}
		checked++
		if checked >= TopTeammates {
			break
		}
	}
	return nil
}
