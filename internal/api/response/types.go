package response

import (
	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/services/keepers"
	"github.com/mcoot/fantasy-keepers/internal/services/selection"
)

// Teams is the full roster snapshot
type Teams struct {
	Teams   []string                  `json:"teams"`
	Players map[string][]model.Player `json:"players"`
}

// TeamsFromSnapshot converts a roster snapshot
func TeamsFromSnapshot(s *model.RosterSnapshot) Teams {
	return Teams{
		Teams:   s.Teams,
		Players: s.Players,
	}
}

// TeamRoster is one team's players
type TeamRoster struct {
	Team    string         `json:"team"`
	Players []model.Player `json:"players"`
}

// Submit is the reply to a successful save
type Submit struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Team    string             `json:"team"`
	Keepers []string           `json:"keepers"`
	Summary *selection.Summary `json:"summary,omitempty"`
}

// SubmitFromConfirmation converts a keepers.Confirmation
func SubmitFromConfirmation(c *keepers.Confirmation) Submit {
	return Submit{
		Success: true,
		Message: "Keepers saved successfully",
		Team:    c.Team,
		Keepers: c.Keepers,
		Summary: c.Summary,
	}
}

// Decrypt is the reply to a successful decrypt
type Decrypt struct {
	Team    string   `json:"team"`
	Keepers []string `json:"keepers"`
}

// Health is the health check body
type Health struct {
	Status string `json:"status"`
	Season int    `json:"season"`
}
