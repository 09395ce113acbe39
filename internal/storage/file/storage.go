package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/storage"
)

const recordExt = ".enc"

// Config holds the on-disk locations
type Config struct {
	// EncryptedDir holds one <team>.enc file per team
	EncryptedDir string
	// LogFile is the append-only password log
	LogFile string
}

// DefaultConfig returns the default data layout
func DefaultConfig() Config {
	return Config{
		EncryptedDir: "./data/encrypted",
		LogFile:      "./data/keepers.log",
	}
}

// Storage keeps each team's record in its own file
type Storage struct {
	cfg Config
}

// New creates a file storage; directories are created lazily on first write
func New(cfg Config) *Storage {
	return &Storage{cfg: cfg}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) recordPath(team string) (string, error) {
	if team == "" || team == "." || team == ".." ||
		strings.ContainsAny(team, `/\`) || strings.ContainsRune(team, 0) {
		return "", model.ErrInvalidTeamName
	}
	return filepath.Join(s.cfg.EncryptedDir, team+recordExt), nil
}

// Keeper record operations

func (s *Storage) SaveKeeperRecord(ctx context.Context, team string, blob string) error {
	path, err := s.recordPath(team)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.cfg.EncryptedDir, 0o755); err != nil {
		return fmt.Errorf("create encrypted dir: %w", err)
	}
	return os.WriteFile(path, []byte(blob), 0o600)
}

func (s *Storage) GetKeeperRecord(ctx context.Context, team string) (string, error) {
	path, err := s.recordPath(team)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", model.ErrRecordNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Password log operations

func (s *Storage) AppendPasswordLog(ctx context.Context, entry model.PasswordLogEntry) error {
	if dir := filepath.Dir(s.cfg.LogFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry.Line() + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
