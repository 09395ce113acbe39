package keepers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/fantasy-keepers/internal/dependencies/clock"
	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/services/cipher"
	"github.com/mcoot/fantasy-keepers/internal/services/roster"
	"github.com/mcoot/fantasy-keepers/internal/services/selection"
	"github.com/mcoot/fantasy-keepers/internal/storage"
)

// SubmitRequest is a team's keeper submission
type SubmitRequest struct {
	Team     string
	Players  []string
	Password string
}

// Confirmation describes a saved or decrypted keeper list
type Confirmation struct {
	Team    string
	Keepers []string
	Summary *selection.Summary // set on submit only
}

// Controller coordinates roster lookup, validation, encryption and storage
type Controller struct {
	storage   storage.Storage
	roster    *roster.Service
	validator *selection.Validator
	cipher    *cipher.Cipher
	clock     clock.Clock
	logger    *slog.Logger
}

// NewController creates a new keepers Controller
func NewController(
	storage storage.Storage,
	rosterService *roster.Service,
	validator *selection.Validator,
	cipher *cipher.Cipher,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		roster:    rosterService,
		validator: validator,
		cipher:    cipher,
		clock:     clock,
		logger:    logger,
	}
}

// Roster returns the current season's snapshot
func (c *Controller) Roster(ctx context.Context) (*model.RosterSnapshot, error) {
	return c.roster.Current(ctx)
}

// TeamRoster returns one team's players for the current season
func (c *Controller) TeamRoster(ctx context.Context, team string) ([]model.Player, error) {
	snapshot, err := c.roster.Current(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Roster(team)
}

// Submit validates and persists a team's keepers, overwriting any earlier save
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) (*Confirmation, error) {
	snapshot, err := c.roster.Current(ctx)
	if err != nil {
		return nil, err
	}

	decision, err := c.validator.Validate(selection.Request{
		Team:     req.Team,
		Players:  req.Players,
		Password: req.Password,
	}, snapshot)
	if err != nil {
		return nil, err
	}

	names := decision.Selection.Names()
	blob, err := c.cipher.Encrypt(model.SerializeKeepers(names), req.Password)
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveKeeperRecord(ctx, req.Team, blob); err != nil {
		c.logger.Error("failed to save keepers",
			slog.String("team", req.Team),
			slog.String("error", err.Error()),
		)
		return nil, &model.PersistenceError{Op: "save keeper record", Err: err}
	}

	entry := model.PasswordLogEntry{
		Timestamp: c.clock.Now(),
		Team:      req.Team,
		Password:  req.Password,
	}
	if err := c.storage.AppendPasswordLog(ctx, entry); err != nil {
		c.logger.Error("failed to append password log",
			slog.String("team", req.Team),
			slog.String("error", err.Error()),
		)
		return nil, &model.PersistenceError{Op: "append password log", Err: err}
	}

	c.logger.Info("keepers saved",
		slog.String("team", req.Team),
		slog.Int("count", decision.Summary.Count),
		slog.Int("total_cost", decision.Summary.TotalCost),
		slog.String("band", string(decision.Summary.Band)),
	)

	summary := decision.Summary
	return &Confirmation{
		Team:    req.Team,
		Keepers: names,
		Summary: &summary,
	}, nil
}

// Decrypt reads and decrypts a team's saved keepers
// A missing record and a wrong password both return model.ErrNoSavedKeepers
func (c *Controller) Decrypt(ctx context.Context, team, password string) (*Confirmation, error) {
	if team == "" || password == "" {
		return nil, model.NewValidationError("Team and password are required")
	}

	blob, err := c.storage.GetKeeperRecord(ctx, team)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) || errors.Is(err, model.ErrInvalidTeamName) {
			c.logger.Info("decrypt failed", slog.String("team", team), slog.String("reason", "no record"))
			return nil, model.ErrNoSavedKeepers
		}
		return nil, &model.PersistenceError{Op: "read keeper record", Err: err}
	}

	plaintext, err := c.cipher.Decrypt(blob, password)
	if err != nil {
		if errors.Is(err, model.ErrDecryption) {
			c.logger.Info("decrypt failed", slog.String("team", team), slog.String("reason", "decryption"))
			return nil, model.ErrNoSavedKeepers
		}
		return nil, err
	}

	return &Confirmation{
		Team:    team,
		Keepers: model.ParseKeepers(plaintext),
	}, nil
}

// ControllerInterface is what the transports depend on
type ControllerInterface interface {
	Roster(ctx context.Context) (*model.RosterSnapshot, error)
	TeamRoster(ctx context.Context, team string) ([]model.Player, error)
	Submit(ctx context.Context, req SubmitRequest) (*Confirmation, error)
	Decrypt(ctx context.Context, team, password string) (*Confirmation, error)
}

var _ ControllerInterface = (*Controller)(nil)
