package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/fantasy-keepers/internal/config"
	"github.com/mcoot/fantasy-keepers/internal/dependencies/clock"
	"github.com/mcoot/fantasy-keepers/internal/dependencies/random"
	"github.com/mcoot/fantasy-keepers/internal/drafttracker"
	"github.com/mcoot/fantasy-keepers/internal/services/cipher"
	"github.com/mcoot/fantasy-keepers/internal/services/keepers"
	"github.com/mcoot/fantasy-keepers/internal/services/replay"
	"github.com/mcoot/fantasy-keepers/internal/services/roster"
	"github.com/mcoot/fantasy-keepers/internal/services/selection"
	"github.com/mcoot/fantasy-keepers/internal/storage"
	"github.com/mcoot/fantasy-keepers/internal/storage/file"
	"github.com/mcoot/fantasy-keepers/internal/storage/memory"
	redisstorage "github.com/mcoot/fantasy-keepers/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = config.StorageTypeFile
	StorageTypeMemory = config.StorageTypeMemory
	StorageTypeRedis  = config.StorageTypeRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock        clock.Clock
	Random       random.Random
	DraftTracker replay.Tracker

	// Services
	RosterService     *roster.Service
	Cipher            *cipher.Cipher
	Validator         *selection.Validator
	KeepersController *keepers.Controller
	ReplayService     *replay.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// FileConfig holds on-disk locations for the file backend
	// If zero value, defaults to file.DefaultConfig()
	FileConfig file.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RosterSource provides roster CSVs (optional)
	// If nil, rosters are read from RosterDir
	RosterSource roster.Source
	RosterDir    string
	// Season is the roster season served by default
	Season int
	// DraftTracker holds the replay endpoints
	// If zero value, defaults to drafttracker.DefaultConfig()
	DraftTracker drafttracker.Config
}

// FromSettings translates loaded settings into a factory Config
func FromSettings(settings *config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:      logger,
		StorageType: settings.StorageType,
		FileConfig: file.Config{
			EncryptedDir: settings.EncryptedDir,
			LogFile:      settings.LogFile,
		},
		RosterDir: settings.RosterDir,
		Season:    settings.Season,
		DraftTracker: drafttracker.Config{
			ReadURL:  settings.DraftReadURL,
			WriteURL: settings.DraftWriteURL,
		},
	}
	if settings.StorageType == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = settings.RedisURL
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		fileCfg := cfg.FileConfig
		if fileCfg == (file.Config{}) {
			fileCfg = file.DefaultConfig()
		}
		store = file.New(fileCfg)
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'file', 'memory' or 'redis'", storageType)
	}

	source := cfg.RosterSource
	if source == nil {
		dir := cfg.RosterDir
		if dir == "" {
			dir = "."
		}
		source = roster.DirSource{Dir: dir}
	}

	trackerCfg := cfg.DraftTracker
	if trackerCfg.ReadURL == "" && trackerCfg.WriteURL == "" {
		trackerCfg = drafttracker.DefaultConfig()
	}

	return newWithDependencies(
		store,
		clock.New(),
		random.New(),
		source,
		cfg.Season,
		drafttracker.NewClient(trackerCfg),
		logger,
	), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	source roster.Source,
	season int,
	tracker replay.Tracker,
	logger *slog.Logger,
) *App {
	rosterService := roster.New(source, season, logger)
	keeperCipher := cipher.New(rnd)
	validator := selection.NewValidator()
	keepersController := keepers.NewController(store, rosterService, validator, keeperCipher, clk, logger)
	replayService := replay.NewService(tracker, rosterService, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DraftTracker:      tracker,
		RosterService:     rosterService,
		Cipher:            keeperCipher,
		Validator:         validator,
		KeepersController: keepersController,
		ReplayService:     replayService,
	}
}

// Close releases storage connections
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
