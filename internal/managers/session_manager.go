package managers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"commerce-core/internal/schemas"
)

// SessionTTL is how long a cached session lives: seven days.
const SessionTTL = 7 * 24 * time.Hour

// ErrSessionNotFound is returned when no session entry exists for the user.
var ErrSessionNotFound = errors.New("session not found")

// SessionMgr is the session cache adapter. A cache entry existing for a
// user id is the definition of "logged in": the auth middleware never
// consults the relational store on the hot path.
type SessionMgr interface {
	Put(ctx context.Context, user *schemas.User, ttl time.Duration) error
	Get(ctx context.Context, userId string) (*schemas.User, error)
	Delete(ctx context.Context, userId string) error
}

// SessionManager stores JSON-serialized users in Redis, keyed by user id.
// Writes overwrite unconditionally; the last writer wins.
type SessionManager struct {
	client *redis.Client
}

// NewSessionManager creates a SessionManager around an open Redis client.
func NewSessionManager(client *redis.Client) SessionMgr {
	log.Info("Initializing session manager")
	return &SessionManager{client: client}
}

// Put caches the user under its id with the given TTL.
func (sm *SessionManager) Put(ctx context.Context, user *schemas.User, ttl time.Duration) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return sm.client.Set(ctx, user.ID.String(), payload, ttl).Err()
}

// Get returns the cached user, or ErrSessionNotFound when the entry is
// absent or expired.
func (sm *SessionManager) Get(ctx context.Context, userId string) (*schemas.User, error) {
	payload, err := sm.client.Get(ctx, userId).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	user := &schemas.User{}
	if err := json.Unmarshal([]byte(payload), user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete evicts the session entry. Deleting an absent entry is not an error.
func (sm *SessionManager) Delete(ctx context.Context, userId string) error {
	return sm.client.Del(ctx, userId).Err()
}
