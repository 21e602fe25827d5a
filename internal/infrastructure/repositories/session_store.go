package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/you/hrmportal/domain"
)

// SessionStoreImpl implements domain.SessionStore using Redis. Each
// session owns exactly two keys, the serialized user record and the
// bearer token; both are written and removed together.
type SessionStoreImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewSessionStore creates a new session store.
func NewSessionStore(client *redis.Client, ttl time.Duration, log *zap.Logger) domain.SessionStore {
	return &SessionStoreImpl{
		client: client,
		prefix: "hrm:sess:",
		ttl:    ttl,
		log:    log,
	}
}

func (s *SessionStoreImpl) userKey(sid string) string  { return s.prefix + sid + ":user" }
func (s *SessionStoreImpl) tokenKey(sid string) string { return s.prefix + sid + ":token" }

// Restore implements domain.SessionStore. Absent or malformed stored
// state yields an anonymous result, never an error; only transport
// failures propagate. A user without a token (or the reverse) counts
// as malformed, since the two are only ever written together.
func (s *SessionStoreImpl) Restore(ctx context.Context, sessionID string) (*domain.User, string, error) {
	vals, err := s.client.MGet(ctx, s.userKey(sessionID), s.tokenKey(sessionID)).Result()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read session: %w", err)
	}

	rawUser, okUser := vals[0].(string)
	token, okToken := vals[1].(string)
	if !okUser || !okToken || rawUser == "" || token == "" {
		return nil, "", nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.Warn("discarding malformed session record",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, "", nil
	}
	if user.ID == "" || user.Role == "" {
		return nil, "", nil
	}

	return &user, token, nil
}

// Persist implements domain.SessionStore. Both keys are written in one
// pipeline so no reader observes one without the other.
func (s *SessionStoreImpl) Persist(ctx context.Context, sessionID string, user *domain.User, token string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.userKey(sessionID), data, s.ttl)
	pipe.Set(ctx, s.tokenKey(sessionID), token, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Clear implements domain.SessionStore. Removes every key under the
// session's namespace; clearing an empty session is a no-op.
func (s *SessionStoreImpl) Clear(ctx context.Context, sessionID string) error {
	var (
		cursor uint64
		keys   []string
	)
	pattern := s.prefix + sessionID + ":*"
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, 64).Result()
		if err != nil {
			return fmt.Errorf("failed to scan session keys: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
