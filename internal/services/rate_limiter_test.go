package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/logging"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, 100*time.Millisecond, logging.Logger)

	tokens, maxTokens := rl.GetStatus()
	if tokens != 10 {
		t.Errorf("NewRateLimiter() initial tokens = %v, want 10", tokens)
	}
	if maxTokens != 10 {
		t.Errorf("NewRateLimiter() maxTokens = %v, want 10", maxTokens)
	}
}

func TestRateLimiter_Allow_InitialTokens(t *testing.T) {
	rl := NewRateLimiter(3, time.Second, logging.Logger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !rl.Allow(ctx, "test_op") {
			t.Errorf("Allow() request %d = false, want true", i+1)
		}
	}

	if rl.Allow(ctx, "test_op") {
		t.Error("Allow() fourth request = true, want false (no tokens left)")
	}
}

func TestRateLimiter_Allow_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(2, 50*time.Millisecond, logging.Logger)
	ctx := context.Background()

	rl.Allow(ctx, "test_op")
	rl.Allow(ctx, "test_op")
	if rl.Allow(ctx, "test_op") {
		t.Error("Allow() should be false when no tokens available")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.Allow(ctx, "test_op") {
		t.Error("Allow() should be true after token refill")
	}
}

func TestRateLimiter_RefillCapsAtMax(t *testing.T) {
	rl := NewRateLimiter(2, 10*time.Millisecond, logging.Logger)
	ctx := context.Background()

	rl.Allow(ctx, "test_op")
	time.Sleep(50 * time.Millisecond)

	if !rl.Full() {
		t.Error("Full() = false, want true after refilling past max")
	}
	tokens, _ := rl.GetStatus()
	if tokens != 2 {
		t.Errorf("tokens = %d, want 2", tokens)
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(50, time.Hour, logging.Logger)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow(ctx, "concurrent") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("allowed = %d, want 50", allowed)
	}
}

func TestKeyedRateLimiter(t *testing.T) {
	kl := NewKeyedRateLimiter(1, time.Hour, logging.Logger)
	ctx := context.Background()

	if !kl.Allow(ctx, "a") {
		t.Error("first request for a should be allowed")
	}
	if kl.Allow(ctx, "a") {
		t.Error("second request for a should be rejected")
	}
	if !kl.Allow(ctx, "b") {
		t.Error("keys must not share a bucket")
	}
	if kl.Size() != 2 {
		t.Errorf("Size() = %d, want 2", kl.Size())
	}

	kl.Reset("a")
	if !kl.Allow(ctx, "a") {
		t.Error("request after Reset should be allowed")
	}
}

func TestKeyedRateLimiter_CleanupFullBuckets(t *testing.T) {
	kl := NewKeyedRateLimiter(1, 10*time.Millisecond, logging.Logger)
	ctx := context.Background()

	kl.Allow(ctx, "a")
	time.Sleep(30 * time.Millisecond)
	kl.CleanupFullBuckets()

	if kl.Size() != 0 {
		t.Errorf("Size() = %d after cleanup, want 0", kl.Size())
	}
}
