package replay

import (
	"strings"

	"github.com/mcoot/fantasy-keepers/internal/drafttracker"
	"github.com/mcoot/fantasy-keepers/internal/model"
)

// findRosterPlayer resolves a saved keeper name against a team roster.
// Tiers, first hit wins: exact, case-insensitive, then substring in either direction.
// The substring tier can pick the wrong player for short or shared names.
func findRosterPlayer(name string, roster []model.Player) (model.Player, bool) {
	for _, p := range roster {
		if p.Name == name {
			return p, true
		}
	}

	lower := strings.ToLower(name)
	for _, p := range roster {
		if strings.ToLower(p.Name) == lower {
			return p, true
		}
	}

	for _, p := range roster {
		candidate := strings.ToLower(p.Name)
		if strings.Contains(candidate, lower) || strings.Contains(lower, candidate) {
			return p, true
		}
	}

	return model.Player{}, false
}

// splitName splits a display name on its first space
func splitName(name string) (first, last string) {
	first, last, _ = strings.Cut(name, " ")
	return first, last
}

func findOwner(team string, owners []drafttracker.Owner) (drafttracker.Owner, bool) {
	for _, o := range owners {
		if strings.EqualFold(o.OwnerName, team) || strings.EqualFold(o.TeamName, team) {
			return o, true
		}
	}
	return drafttracker.Owner{}, false
}

func findRemotePlayer(displayName string, players []drafttracker.Player) (drafttracker.Player, bool) {
	first, last := splitName(displayName)
	for _, p := range players {
		if strings.EqualFold(p.FirstName, first) && strings.EqualFold(p.LastName, last) {
			return p, true
		}
	}
	return drafttracker.Player{}, false
}
