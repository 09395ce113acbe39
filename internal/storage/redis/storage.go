package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Keeper record operations

func (s *Storage) SaveKeeperRecord(ctx context.Context, team string, blob string) error {
	if team == "" {
		return model.ErrInvalidTeamName
	}
	// No TTL: records live until overwritten
	return s.client.Set(ctx, recordKey(team), blob, 0).Err()
}

func (s *Storage) GetKeeperRecord(ctx context.Context, team string) (string, error) {
	blob, err := s.client.Get(ctx, recordKey(team)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrRecordNotFound
		}
		return "", err
	}
	return blob, nil
}

// Password log operations

func (s *Storage) AppendPasswordLog(ctx context.Context, entry model.PasswordLogEntry) error {
	return s.client.RPush(ctx, passwordLogKey(), entry.Line()).Err()
}
