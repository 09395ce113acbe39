package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/services/replay"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// DecryptResult is what a run of the CLI reports
type DecryptResult struct {
	Team    string        `json:"team"`
	Keepers []string      `json:"keepers"`
	Replay  *ReplayResult `json:"replay,omitempty"`
}

// ReplayResult is the printable form of a replay
type ReplayResult struct {
	Owner       string       `json:"owner,omitempty"`
	OwnerID     int64        `json:"ownerId,omitempty"`
	Items       []ReplayItem `json:"items"`
	Succeeded   int          `json:"succeeded"`
	Failed      int          `json:"failed"`
	NextVersion int          `json:"nextVersion"`
}

// ReplayItem is one keeper's replay outcome
type ReplayItem struct {
	Keeper  string `json:"keeper"`
	Player  string `json:"player,omitempty"`
	Price   int    `json:"price,omitempty"`
	Version int    `json:"version,omitempty"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// ReplayResultFrom converts a replay.Result
func ReplayResultFrom(r *replay.Result) *ReplayResult {
	out := &ReplayResult{
		Items:       make([]ReplayItem, len(r.Items)),
		Succeeded:   r.Succeeded,
		Failed:      r.Failed,
		NextVersion: r.NextVersion,
	}
	if r.Owner != nil {
		out.Owner = r.Owner.OwnerName
		out.OwnerID = r.Owner.ID
	}
	for i, item := range r.Items {
		view := ReplayItem{
			Keeper:  item.Keeper,
			Player:  item.Player,
			Price:   item.Price,
			Version: item.Version,
			Status:  "SUCCESS",
		}
		if !item.Succeeded() {
			view.Status = "FAILED"
			view.Error = failureReason(item.Err)
		}
		out.Items[i] = view
	}
	return out
}

func failureReason(err error) string {
	var apiErr *model.ExternalAPIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrRosterPlayerNotFound):
		return "Could not find roster info"
	case errors.Is(err, model.ErrRemotePlayerNotFound):
		return "Could not find matching API player"
	case errors.Is(err, model.ErrOwnerNotFound):
		return "Team not found in API owners data"
	case errors.As(err, &apiErr):
		return "API error: " + apiErr.Error()
	default:
		return err.Error()
	}
}

// Print outputs data in the configured format
func (o *Output) Print(result DecryptResult) {
	if o.format == "json" {
		o.printJSON(result)
		return
	}
	o.printText(result)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(r DecryptResult) {
	fmt.Fprintf(o.w, "\nTeam: %s\n", r.Team)
	fmt.Fprintln(o.w, "Keepers:")
	if len(r.Keepers) == 0 {
		fmt.Fprintln(o.w, "  No keepers selected")
	}
	for _, k := range r.Keepers {
		fmt.Fprintf(o.w, "  - %s\n", k)
	}

	if r.Replay != nil {
		o.printReplay(r.Team, r.Replay)
	}
	fmt.Fprintln(o.w)
}

func (o *Output) printReplay(team string, r *ReplayResult) {
	fmt.Fprintln(o.w, "\nSubmitting keepers to draft tracker API...")
	if r.Owner == "" {
		fmt.Fprintf(o.w, "Team %q not found in API owners data\n", team)
	} else {
		fmt.Fprintf(o.w, "Found owner: %s (ID: %d)\n", r.Owner, r.OwnerID)
	}
	fmt.Fprintln(o.w)

	for _, item := range r.Items {
		name := item.Player
		if name == "" {
			name = item.Keeper
		}
		if item.Status == "SUCCESS" {
			fmt.Fprintf(o.w, "SUCCESS: %s - Submitted $%d (version %d)\n", name, item.Price, item.Version)
		} else {
			fmt.Fprintf(o.w, "FAILED: %s - %s\n", name, item.Error)
		}
	}

	fmt.Fprintf(o.w, "\nSummary: %d successful, %d failed\n", r.Succeeded, r.Failed)
}
