package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/onboarding/internal/model"
	"github.com/mcoot/onboarding/internal/storage"
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
var _ storage.Store = (*Storage)(nil)

// Insert claims the email index with SETNX, then writes the row and table index.
func (s *Storage) Insert(ctx context.Context, table string, record *model.RegistrationRecord) error {
	if table != storage.TableUsers {
		return storage.NewUnknownTableError(table)
	}

	id := uuid.NewString()
	data, err := json.Marshal(model.StoredUser{ID: id, RegistrationRecord: *record})
	if err != nil {
		return err
	}

	idxKey := emailIndexKey(record.Email)
	claimed, err := s.client.SetNX(ctx, idxKey, id, 0).Result()
	if err != nil {
		return remoteError(err)
	}
	if !claimed {
		return storage.NewDuplicateEmailError(record.Email)
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, rowKey(table, id), data, 0)
	pipe.RPush(ctx, tableIndexKey(table), id)
	if _, err := pipe.Exec(ctx); err != nil {
		// Release the email so the user can retry
		_ = s.client.Del(context.WithoutCancel(ctx), idxKey).Err()
		return remoteError(err)
	}
	return nil
}

// GetUserByEmail returns the stored user with the given email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.StoredUser, error) {
	id, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.getUser(ctx, id)
}

// Users returns every stored user in insertion order
func (s *Storage) Users(ctx context.Context) ([]model.StoredUser, error) {
	ids, err := s.client.LRange(ctx, tableIndexKey(storage.TableUsers), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.StoredUser{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = rowKey(storage.TableUsers, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]model.StoredUser, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue // row expired or deleted
		}
		var u model.StoredUser
		if err := json.Unmarshal([]byte(str), &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Storage) getUser(ctx context.Context, id string) (*model.StoredUser, error) {
	data, err := s.client.Get(ctx, rowKey(storage.TableUsers, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var u model.StoredUser
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func remoteError(err error) error {
	return &storage.RemoteError{
		Message: fmt.Sprintf("redis: %v", err),
		Err:     err,
	}
}
