package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/fantasy-keepers/internal/model"
)

// ErrSeasonNotFound is returned when no roster exists for a season
var ErrSeasonNotFound = errors.New("roster not found for season")

// Source supplies the raw roster text for a season
type Source interface {
	Open(ctx context.Context, season int) (io.ReadCloser, error)
}

// DirSource reads ff<season>rosters.csv files from a directory
type DirSource struct {
	Dir string
}

// FileName returns the roster file name for a season
func FileName(season int) string {
	return fmt.Sprintf("ff%drosters.csv", season)
}

// Open opens the season's roster file
func (d DirSource) Open(ctx context.Context, season int) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(d.Dir, FileName(season)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %d", ErrSeasonNotFound, season)
		}
		return nil, err
	}
	return f, nil
}

// Service loads roster snapshots for the configured season
type Service struct {
	source Source
	season int
	logger *slog.Logger
}

// New creates a new roster Service
func New(source Source, season int, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		season: season,
		logger: logger,
	}
}

// Season returns the season this service serves by default
func (s *Service) Season() int {
	return s.season
}

// Current loads the snapshot for the configured season
func (s *Service) Current(ctx context.Context) (*model.RosterSnapshot, error) {
	return s.Load(ctx, s.season)
}

// Load reads and parses the roster for a season
// Snapshots are rebuilt on every call so edits to the source show up immediately
func (s *Service) Load(ctx context.Context, season int) (*model.RosterSnapshot, error) {
	rc, err := s.source.Open(ctx, season)
	if err != nil {
		s.logger.Error("failed to open roster",
			slog.Int("season", season),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	defer rc.Close()

	snapshot, err := Parse(rc)
	if err != nil {
		s.logger.Error("failed to parse roster",
			slog.Int("season", season),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return snapshot, nil
}

// StaticSource serves roster text from memory, keyed by season (useful for testing)
type StaticSource map[int]string

// Open returns the season's roster text
func (s StaticSource) Open(ctx context.Context, season int) (io.ReadCloser, error) {
	text, ok := s[season]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSeasonNotFound, season)
	}
	return io.NopCloser(strings.NewReader(text)), nil
}
