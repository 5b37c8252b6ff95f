package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(ctx, "1.2.3.4")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !ok {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}

	ok, retryAfter, err := l.Allow(ctx, "1.2.3.4")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ok {
		t.Fatalf("fourth request should have been limited")
	}

	if retryAfter <= 0 {
		t.Fatalf("expected a positive retry-after, got %v", retryAfter)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	if ok, _, _ := l.Allow(ctx, "a"); !ok {
		t.Fatalf("first request for key a should pass")
	}

	if ok, _, _ := l.Allow(ctx, "b"); !ok {
		t.Fatalf("first request for key b should pass")
	}

	if ok, _, _ := l.Allow(ctx, "a"); ok {
		t.Fatalf("second request for key a should be limited")
	}
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	l := NewMemoryLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	if ok, _, _ := l.Allow(ctx, "a"); !ok {
		t.Fatalf("first request should pass")
	}

	if ok, _, _ := l.Allow(ctx, "a"); ok {
		t.Fatalf("second request inside window should be limited")
	}

	time.Sleep(15 * time.Millisecond)

	if ok, _, _ := l.Allow(ctx, "a"); !ok {
		t.Fatalf("request after window reset should pass")
	}
}
