// Package session contains the Redis-backed session fingerprint store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge/internal/application/security"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// ErrSessionNotFound is returned by Touch when the fingerprint has expired
// or never existed.
var ErrSessionNotFound = errors.New("session fingerprint not found")

const defaultKeyPrefix = "session:fingerprint:"

// DefaultTTL is how long an idle fingerprint survives. Every Touch renews
// it, so active sessions never expire mid-use.
const DefaultTTL = 12 * time.Hour

// RedisStore implements security.SessionStore on Redis. Atomicity of the
// first insert comes from SETNX; expiry replaces the in-memory janitor.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisStoreConfig configures a RedisStore.
type RedisStoreConfig struct {
	Client    *redis.Client
	KeyPrefix string
	TTL       time.Duration
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(cfg RedisStoreConfig) *RedisStore {
	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStore{
		client:    cfg.Client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// fingerprintDocument is the JSON shape stored in Redis.
type fingerprintDocument struct {
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessAt time.Time `json:"last_access_at"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"user_agent"`
}

func toDocument(fp security.Fingerprint) fingerprintDocument {
	return fingerprintDocument{
		UserID:       fp.UserID.String(),
		CreatedAt:    fp.CreatedAt,
		LastAccessAt: fp.LastAccessAt,
		IP:           fp.IP,
		UserAgent:    fp.UserAgent,
	}
}

func fromDocument(doc fingerprintDocument) security.Fingerprint {
	return security.Fingerprint{
		UserID:       uuid.UUID(doc.UserID),
		CreatedAt:    doc.CreatedAt,
		LastAccessAt: doc.LastAccessAt,
		IP:           doc.IP,
		UserAgent:    doc.UserAgent,
	}
}

// LoadOrStore implements security.SessionStore. SETNX makes the first
// insert atomic: the loser of a race reads the winner's baseline.
func (s *RedisStore) LoadOrStore(ctx context.Context, sessionID string, fp security.Fingerprint) (security.Fingerprint, bool, error) {
	if sessionID == "" {
		return security.Fingerprint{}, false, errors.New("sessionID is required")
	}

	payload, err := json.Marshal(toDocument(fp))
	if err != nil {
		return security.Fingerprint{}, false, fmt.Errorf("failed to encode fingerprint: %w", err)
	}

	key := s.key(sessionID)
	stored, err := s.client.SetNX(ctx, key, payload, s.ttl).Result()
	if err != nil {
		return security.Fingerprint{}, false, fmt.Errorf("failed to store fingerprint: %w", err)
	}
	if stored {
		return fp, true, nil
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired between SETNX and GET; treat this access as the baseline.
			return s.LoadOrStore(ctx, sessionID, fp)
		}
		return security.Fingerprint{}, false, fmt.Errorf("failed to load fingerprint: %w", err)
	}

	var doc fingerprintDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return security.Fingerprint{}, false, fmt.Errorf("failed to decode fingerprint: %w", err)
	}
	return fromDocument(doc), false, nil
}

// Touch implements security.SessionStore. The write refreshes both the
// last-access time and the key's TTL.
func (s *RedisStore) Touch(ctx context.Context, sessionID string, at time.Time) error {
	if sessionID == "" {
		return errors.New("sessionID is required")
	}

	key := s.key(sessionID)
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to load fingerprint: %w", err)
	}

	var doc fingerprintDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode fingerprint: %w", err)
	}
	doc.LastAccessAt = at

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode fingerprint: %w", err)
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to touch fingerprint: %w", err)
	}
	return nil
}
