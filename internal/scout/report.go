// Package scout computes the contextual flags around a matchup: injury
// statuses, teammate availability, and elite-defender threats. Every check is
// advisory; the caller can override each flag before the final number.
package scout

import "strings"

// ActiveStatus is reported for players absent from the injury report.
const ActiveStatus = "Active"

// Report maps lowercased player names to lowercased injury statuses.
type Report map[string]string

// Status looks up a player's injury status. The lookup is case-insensitive
// substring containment of the name in report keys; first match wins. Players
// not on the report are active.
func (r Report) Status(name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ActiveStatus
	}
	for key, status := range r {
		if strings.Contains(key, needle) {
			return status
		}
	}
	return ActiveStatus
}

// IsOut reports whether a status string rules the player out.
func IsOut(status string) bool {
	lowered := strings.ToLower(status)
	return strings.Contains(lowered, "out") || strings.Contains(lowered, "injured")
}
