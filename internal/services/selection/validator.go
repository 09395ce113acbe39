package selection

import (
	"strings"

	"github.com/mcoot/fantasy-keepers/internal/model"
)

// Request is an untrusted keeper submission
type Request struct {
	Team     string
	Players  []string
	Password string
}

// Decision is an accepted selection with its budget summary
type Decision struct {
	Selection model.KeeperSelection
	Summary   Summary
}

// Validator enforces the keeper rules at the trust boundary
type Validator struct{}

// NewValidator creates a Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a request against the roster snapshot
// Rejections are *model.ValidationError; exceeding the salary cap is not a rejection
func (v *Validator) Validate(req Request, snapshot *model.RosterSnapshot) (*Decision, error) {
	if strings.TrimSpace(req.Team) == "" || req.Password == "" {
		return nil, model.NewValidationError("Team and password are required")
	}
	if req.Players == nil {
		return nil, model.NewValidationError("Invalid player selection")
	}
	if len(req.Players) > MaxKeepers {
		return nil, model.NewValidationError("Maximum %d keepers allowed", MaxKeepers)
	}
	if !snapshot.HasTeam(req.Team) {
		return nil, model.NewValidationError("Unknown team %q", req.Team)
	}

	set := NewSet()
	for _, name := range req.Players {
		if strings.Contains(name, model.KeeperSeparator) {
			return nil, model.NewValidationError("%s cannot be kept: names containing %q are not supported", name, model.KeeperSeparator)
		}
		if set.Contains(name) {
			return nil, model.NewValidationError("%s is selected more than once", name)
		}
		player, ok := snapshot.FindPlayer(req.Team, name)
		if !ok {
			return nil, model.NewValidationError("%s is not on the %s roster", name, req.Team)
		}
		if err := set.Add(model.Keeper{Name: player.Name, Cost: player.ThisYearCost}); err != nil {
			return nil, model.NewValidationError("%s", err.Error())
		}
	}

	return &Decision{
		Selection: model.KeeperSelection{Team: req.Team, Players: set.Keepers()},
		Summary:   set.Summary(),
	}, nil
}
