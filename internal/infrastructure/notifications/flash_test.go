package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/hrmportal/domain"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	t.Cleanup(func() {
		mr.Close()
	})

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func TestFlashNotifierImpl_PushDrain(t *testing.T) {
	client := setupTestRedis(t)
	notifier := NewFlashNotifier(client, time.Hour)
	ctx := context.Background()

	if err := notifier.Push(ctx, "sess_1", domain.FlashSuccess, "Welcome Asha!"); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}
	if err := notifier.Push(ctx, "sess_1", domain.FlashError, "Something went wrong"); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}

	flashes, err := notifier.Drain(ctx, "sess_1")
	if err != nil {
		t.Fatalf("unexpected drain error: %v", err)
	}
	if len(flashes) != 2 {
		t.Fatalf("expected 2 flashes, got %d", len(flashes))
	}

	// Push order is preserved
	if flashes[0].Level != domain.FlashSuccess || flashes[0].Message != "Welcome Asha!" {
		t.Errorf("unexpected first flash: %+v", flashes[0])
	}
	if flashes[1].Level != domain.FlashError {
		t.Errorf("unexpected second flash: %+v", flashes[1])
	}

	// Drain empties the queue
	flashes, err = notifier.Drain(ctx, "sess_1")
	if err != nil {
		t.Fatalf("unexpected drain error: %v", err)
	}
	if len(flashes) != 0 {
		t.Errorf("expected drained queue to be empty, got %d flashes", len(flashes))
	}
}

func TestFlashNotifierImpl_DrainEmpty(t *testing.T) {
	client := setupTestRedis(t)
	notifier := NewFlashNotifier(client, time.Hour)

	flashes, err := notifier.Drain(context.Background(), "sess_unknown")
	if err != nil {
		t.Fatalf("unexpected drain error: %v", err)
	}
	if len(flashes) != 0 {
		t.Errorf("expected no flashes for fresh session, got %d", len(flashes))
	}
}

func TestFlashNotifierImpl_SessionsIsolated(t *testing.T) {
	client := setupTestRedis(t)
	notifier := NewFlashNotifier(client, time.Hour)
	ctx := context.Background()

	if err := notifier.Push(ctx, "sess_1", domain.FlashInfo, "Logged out"); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}

	flashes, err := notifier.Drain(ctx, "sess_2")
	if err != nil {
		t.Fatalf("unexpected drain error: %v", err)
	}
	if len(flashes) != 0 {
		t.Errorf("expected no flashes for other session, got %d", len(flashes))
	}

	flashes, _ = notifier.Drain(ctx, "sess_1")
	if len(flashes) != 1 {
		t.Errorf("expected 1 flash for owning session, got %d", len(flashes))
	}
}

func TestFlashNotifierImpl_SkipsMalformedEntries(t *testing.T) {
	client := setupTestRedis(t)
	notifier := NewFlashNotifier(client, time.Hour)
	ctx := context.Background()

	client.RPush(ctx, "hrm:sess:sess_1:flash", "{broken")
	if err := notifier.Push(ctx, "sess_1", domain.FlashInfo, "still here"); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}

	flashes, err := notifier.Drain(ctx, "sess_1")
	if err != nil {
		t.Fatalf("unexpected drain error: %v", err)
	}
	if len(flashes) != 1 || flashes[0].Message != "still here" {
		t.Errorf("expected only the valid flash, got %+v", flashes)
	}
}
