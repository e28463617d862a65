package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arcadehub/arcade/internal/model"
	"github.com/arcadehub/arcade/internal/storage"
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
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	// Pipeline keeps the profile and its index entry together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, profileKey(profile.ID), data, s.cfg.ProfileTTL)
	pipe.SAdd(ctx, profileIndexKey(), string(profile.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProfile(ctx context.Context, id model.PlayerID) (*model.Profile, error) {
	data, err := s.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Storage) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	ids, err := s.client.SMembers(ctx, profileIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	profiles := make([]*model.Profile, 0, len(ids))
	for _, id := range ids {
		profile, err := s.GetProfile(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				// expired profile still indexed; skip it
				continue
			}
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// Completed-session history operations

func (s *Storage) AppendSessionRecord(ctx context.Context, record *model.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, recordKey(record.ID), data, s.cfg.RecordTTL)
	pipe.RPush(ctx, recordIndexKey(), string(record.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSessionRecord(ctx context.Context, id model.SessionID) (*model.SessionRecord, error) {
	data, err := s.client.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var record model.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Storage) ListSessionRecords(ctx context.Context) ([]*model.SessionRecord, error) {
	ids, err := s.client.LRange(ctx, recordIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.SessionRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetSessionRecord(ctx, model.SessionID(id))
		if err != nil {
			if errors.Is(err, model.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
