package model

// Player is one rostered player on a team, as parsed from a season's roster file
type Player struct {
	Name         string `json:"name"`
	LastYearCost int    `json:"lastYearCost"`
	ThisYearCost int    `json:"thisYearCost"` // keeper price for the coming draft
}

// RosterSnapshot is the full team -> players mapping for one season
// Built fresh from the roster source and never mutated after parsing
type RosterSnapshot struct {
	Teams   []string            `json:"teams"`   // header order, left to right
	Players map[string][]Player `json:"players"` // row order per team
}

// HasTeam reports whether the team appears in the roster header
func (s *RosterSnapshot) HasTeam(team string) bool {
	_, ok := s.Players[team]
	return ok
}

// Roster returns the players for a team, or ErrTeamNotFound
func (s *RosterSnapshot) Roster(team string) ([]Player, error) {
	players, ok := s.Players[team]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return players, nil
}

// FindPlayer returns the named player on a team's roster (exact match)
func (s *RosterSnapshot) FindPlayer(team, name string) (Player, bool) {
	for _, p := range s.Players[team] {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}
