package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/hrmportal/domain"
)

// FlashNotifierImpl implements domain.Notifier with a Redis list per
// session. Messages survive the redirect that follows the action that
// produced them and are removed when drained.
type FlashNotifierImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewFlashNotifier creates a new flash notifier.
func NewFlashNotifier(client *redis.Client, ttl time.Duration) domain.Notifier {
	return &FlashNotifierImpl{
		client: client,
		prefix: "hrm:sess:",
		ttl:    ttl,
	}
}

func (n *FlashNotifierImpl) key(sid string) string { return n.prefix + sid + ":flash" }

// Push implements domain.Notifier
func (n *FlashNotifierImpl) Push(ctx context.Context, sessionID, level, message string) error {
	data, err := json.Marshal(domain.Flash{Level: level, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal flash: %w", err)
	}

	pipe := n.client.TxPipeline()
	pipe.RPush(ctx, n.key(sessionID), data)
	pipe.Expire(ctx, n.key(sessionID), n.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push flash: %w", err)
	}
	return nil
}

// Drain implements domain.Notifier. Returns queued messages in push
// order and empties the queue.
func (n *FlashNotifierImpl) Drain(ctx context.Context, sessionID string) ([]domain.Flash, error) {
	pipe := n.client.TxPipeline()
	items := pipe.LRange(ctx, n.key(sessionID), 0, -1)
	pipe.Del(ctx, n.key(sessionID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to drain flashes: %w", err)
	}

	raw := items.Val()
	flashes := make([]domain.Flash, 0, len(raw))
	for _, item := range raw {
		var f domain.Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
