package nbadata

import "strings"

// Team is a static league team entry. IDs match the stats API team IDs.
type Team struct {
	ID           int
	Abbreviation string
	City         string
	Nickname     string
}

// Teams is the full league directory. The stats API assigns stable IDs, so
// this never needs refetching.
var Teams = []Team{
	{1610612737, "ATL", "Atlanta", "Hawks"},
	{1610612738, "BOS", "Boston", "Celtics"},
	{1610612751, "BKN", "Brooklyn", "Nets"},
	{1610612766, "CHA", "Charlotte", "Hornets"},
	{1610612741, "CHI", "Chicago", "Bulls"},
	{1610612739, "CLE", "Cleveland", "Cavaliers"},
	{1610612742, "DAL", "Dallas", "Mavericks"},
	{1610612743, "DEN", "Denver", "Nuggets"},
	{1610612765, "DET", "Detroit", "Pistons"},
	{1610612744, "GSW", "Golden State", "Warriors"},
	{1610612745, "HOU", "Houston", "Rockets"},
	{1610612754, "IND", "Indiana", "Pacers"},
	{1610612746, "LAC", "Los Angeles", "Clippers"},
	{1610612747, "LAL", "Los Angeles", "Lakers"},
	{1610612763, "MEM", "Memphis", "Grizzlies"},
	{1610612748, "MIA", "Miami", "Heat"},
	{1610612749, "MIL", "Milwaukee", "Bucks"},
	{1610612750, "MIN", "Minnesota", "Timberwolves"},
	{1610612740, "NOP", "New Orleans", "Pelicans"},
	{1610612752, "NYK", "New York", "Knicks"},
	{1610612760, "OKC", "Oklahoma City", "Thunder"},
	{1610612753, "ORL", "Orlando", "Magic"},
	{1610612755, "PHI", "Philadelphia", "76ers"},
	{1610612756, "PHX", "Phoenix", "Suns"},
	{1610612757, "POR", "Portland", "Trail Blazers"},
	{1610612758, "SAC", "Sacramento", "Kings"},
	{1610612759, "SAS", "San Antonio", "Spurs"},
	{1610612761, "TOR", "Toronto", "Raptors"},
	{1610612762, "UTA", "Utah", "Jazz"},
	{1610612764, "WAS", "Washington", "Wizards"},
}

// ByID looks up a team by its stats API ID.
func ByID(id int) (Team, bool) {
	for _, t := range Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Resolve matches a free-form team identifier against the directory.
// Exact abbreviation matches win; otherwise the nickname must appear as a
// substring of the input (or vice versa). First match wins.
func Resolve(name string) (Team, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Team{}, false
	}

	for _, t := range Teams {
		if needle == strings.ToLower(t.Abbreviation) {
			return t, true
		}
	}

	for _, t := range Teams {
		nick := strings.ToLower(t.Nickname)
		full := strings.ToLower(t.City + " " + t.Nickname)
		if strings.Contains(needle, nick) || strings.Contains(full, needle) {
			return t, true
		}
	}

	return Team{}, false
}

// DisplayName returns "City Nickname".
func (t Team) DisplayName() string {
	return t.City + " " + t.Nickname
}
