package selection

import "github.com/mcoot/fantasy-keepers/internal/model"

// Keeper limits. The salary cap is advisory: over-budget selections are
// accepted and flagged, never blocked.
const (
	MaxKeepers          = 3
	SalaryCap           = 200
	NearBudgetThreshold = 150
)

// Band classifies a selection's total cost for display
type Band string

const (
	BandUnder Band = "under-budget"
	BandNear  Band = "near-budget"
	BandOver  Band = "over-budget"
)

// BandFor returns the band for a total keeper cost
func BandFor(total int) Band {
	switch {
	case total > SalaryCap:
		return BandOver
	case total > NearBudgetThreshold:
		return BandNear
	default:
		return BandUnder
	}
}

// Summary is the live budget feedback for a selection
type Summary struct {
	Count           int  `json:"count"`
	TotalCost       int  `json:"totalCost"`
	RemainingBudget int  `json:"remainingBudget"`
	Band            Band `json:"band"`
}

// OverBudget reports whether the selection exceeds the salary cap
func (s Summary) OverBudget() bool {
	return s.Band == BandOver
}

// Summarize computes the budget summary for a list of keepers
func Summarize(keepers []model.Keeper) Summary {
	total := 0
	for _, k := range keepers {
		total += k.Cost
	}
	return Summary{
		Count:           len(keepers),
		TotalCost:       total,
		RemainingBudget: SalaryCap - total,
		Band:            BandFor(total),
	}
}
