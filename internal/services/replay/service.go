// Package replay pushes a team's decrypted keepers into the draft tracker
package replay

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/fantasy-keepers/internal/drafttracker"
	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/services/roster"
)

// Tracker is the part of the draft tracker the replay uses
type Tracker interface {
	Owners(ctx context.Context) ([]drafttracker.Owner, error)
	Players(ctx context.Context) ([]drafttracker.Player, error)
	Draft(ctx context.Context, draft drafttracker.DraftRequest) error
}

var _ Tracker = (*drafttracker.Client)(nil)

// ItemResult is the outcome for one keeper
type ItemResult struct {
	Keeper    string `json:"keeper"`
	Player    string `json:"player,omitempty"` // resolved roster name
	Price     int    `json:"price,omitempty"`
	Version   int    `json:"version,omitempty"`
	Attempted bool   `json:"attempted"`
	Err       error  `json:"-"`
}

// Succeeded reports whether the keeper was accepted by the tracker
func (r ItemResult) Succeeded() bool {
	return r.Attempted && r.Err == nil
}

// Result is the tally for a whole replay
type Result struct {
	Team      string              `json:"team"`
	Owner     *drafttracker.Owner `json:"owner,omitempty"`
	Items     []ItemResult        `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	// NextVersion is the version the next submission should carry
	NextVersion int `json:"nextVersion"`
}

// Service replays keepers one at a time with increasing expected versions
type Service struct {
	tracker Tracker
	roster  *roster.Service
	logger  *slog.Logger
}

// NewService creates a new replay Service
func NewService(tracker Tracker, rosterService *roster.Service, logger *slog.Logger) *Service {
	return &Service{
		tracker: tracker,
		roster:  rosterService,
		logger:  logger,
	}
}

// Run submits keepers in order starting at startVersion.
// Lookup failures return an error; per-keeper failures are recorded and the run continues.
func (s *Service) Run(ctx context.Context, team string, keepers []string, startVersion int) (*Result, error) {
	var (
		owners  []drafttracker.Owner
		players []drafttracker.Player
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owners, err = s.tracker.Owners(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.tracker.Players(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to fetch draft tracker data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetch draft tracker data: %w", err)
	}

	snapshot, err := s.roster.Current(ctx)
	if err != nil {
		return nil, err
	}
	// A team missing from the roster leaves every keeper unresolved
	teamRoster := snapshot.Players[team]

	result := &Result{
		Team:        team,
		Items:       make([]ItemResult, 0, len(keepers)),
		NextVersion: startVersion,
	}

	owner, ok := findOwner(team, owners)
	if !ok {
		s.logger.Warn("team not found in draft tracker owners", slog.String("team", team))
		for _, keeper := range keepers {
			result.record(ItemResult{Keeper: keeper, Err: model.ErrOwnerNotFound})
		}
		return result, nil
	}
	result.Owner = &owner

	// Sequential on purpose: each submission carries the next expected version
	for _, keeper := range keepers {
		item := ItemResult{Keeper: keeper}

		player, ok := findRosterPlayer(keeper, teamRoster)
		if !ok {
			item.Err = model.ErrRosterPlayerNotFound
			s.logFailure(team, item)
			result.record(item)
			continue
		}
		item.Player = player.Name
		item.Price = player.ThisYearCost

		remote, ok := findRemotePlayer(player.Name, players)
		if !ok {
			item.Err = model.ErrRemotePlayerNotFound
			s.logFailure(team, item)
			result.record(item)
			continue
		}

		item.Attempted = true
		item.Version = result.NextVersion
		item.Err = s.tracker.Draft(ctx, drafttracker.DraftRequest{
			OwnerID:         owner.ID,
			PlayerID:        remote.ID,
			Price:           player.ThisYearCost,
			ExpectedVersion: result.NextVersion,
		})
		result.NextVersion++

		if item.Err != nil {
			s.logFailure(team, item)
		}
		result.record(item)
	}

	s.logger.Info("replay finished",
		slog.String("team", team),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed),
		slog.Int("next_version", result.NextVersion),
	)

	return result, nil
}

func (r *Result) record(item ItemResult) {
	r.Items = append(r.Items, item)
	if item.Succeeded() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

func (s *Service) logFailure(team string, item ItemResult) {
	s.logger.Warn("keeper replay failed",
		slog.String("team", team),
		slog.String("keeper", item.Keeper),
		slog.Int("version", item.Version),
		slog.String("error", item.Err.Error()),
	)
}
