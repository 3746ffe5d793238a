package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func RedisSetJSON(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// RedisTakeJSON reads and deletes key atomically. ok is false when the key is absent.
func RedisTakeJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SessionStore keeps one live session per user as the hash user:session:<id>.
// A nil store or client disables session tracking: every token is accepted
// until it expires.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func (s *SessionStore) enabled() bool { return s != nil && s.rdb != nil }

// Save replaces the user's session; older tokens stop validating.
func (s *SessionStore) Save(ctx context.Context, userID, sid, role string) error {
	if !s.enabled() {
		return nil
	}
	key := KeyUserSession(userID)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"sid":        sid,
		"role":       role,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Valid reports whether sid is the user's live session.
func (s *SessionStore) Valid(ctx context.Context, userID, sid string) (bool, error) {
	if !s.enabled() {
		return true, nil
	}
	got, err := s.rdb.HGet(ctx, KeyUserSession(userID), "sid").Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return got == sid, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if !s.enabled() {
		return nil
	}
	return s.rdb.Del(ctx, KeyUserSession(userID)).Err()
}

// ResetTokenStore maps single-use password reset tokens to user ids.
type ResetTokenStore struct {
	rdb *redis.Client
}

func NewResetTokenStore(rdb *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{rdb: rdb}
}

type resetEntry struct {
	UserID string `json:"user_id"`
}

func (s *ResetTokenStore) Put(ctx context.Context, token, userID string, ttl time.Duration) error {
	return RedisSetJSON(ctx, s.rdb, KeyPasswordReset(token), resetEntry{UserID: userID}, ttl)
}

// Take consumes token and returns its user id.
func (s *ResetTokenStore) Take(ctx context.Context, token string) (string, bool, error) {
	var e resetEntry
	ok, err := RedisTakeJSON(ctx, s.rdb, KeyPasswordReset(token), &e)
	if err != nil || !ok {
		return "", false, err
	}
	return e.UserID, true, nil
}
