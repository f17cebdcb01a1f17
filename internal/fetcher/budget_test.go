package fetcher

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestRequestBudget(t *testing.T) {
	fixedNow := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	getRemaining := func(t *testing.T, b *RequestBudget) int {
		t.Helper()
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.remaining
	}

	getReset := func(t *testing.T, b *RequestBudget) time.Time {
		t.Helper()
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.reset
	}

	setState := func(t *testing.T, b *RequestBudget, remaining int, reset time.Time) {
		t.Helper()
		b.mu.Lock()
		b.remaining = remaining
		b.reset = reset
		b.mu.Unlock()
	}

	t.Run("Acquire ok", func(t *testing.T) {
		b := NewRequestBudget()
		b.now = func() time.Time { return fixedNow }

		if err := b.Acquire(context.Background(), 1); err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
	})

	t.Run("Acquire decrements remaining", func(t *testing.T) {
		b := NewRequestBudget()
		b.now = func() time.Time { return fixedNow }
		setState(t, b, 3, fixedNow.Add(time.Hour))

		if err := b.Acquire(context.Background(), 2); err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
		if rem := getRemaining(t, b); rem != 1 {
			t.Fatalf("expected 1 remaining, got %d", rem)
		}
	})

	t.Run("Acquire rejects bad n", func(t *testing.T) {
		b := NewRequestBudget()
		if err := b.Acquire(context.Background(), 0); err == nil {
			t.Fatal("expected error for n=0")
		}
	})

	t.Run("UpdateFromResponse sets remaining and reset", func(t *testing.T) {
		b := NewRequestBudget()
		b.now = func() time.Time { return fixedNow }

		resp := &http.Response{Header: make(http.Header)}
		resp.Header.Set("X-RateLimit-Remaining", "10")
		resp.Header.Set("X-RateLimit-Reset", "1700000000")

		b.UpdateFromResponse(resp)

		if rem := getRemaining(t, b); rem != 10 {
			t.Fatalf("Expected 10 remaining, got %d", rem)
		}
		if r := getReset(t, b); !r.Equal(time.Unix(1700000000, 0)) {
			t.Fatalf("Expected reset %v, got %v", time.Unix(1700000000, 0), r)
		}
	})

	t.Run("Retry-After causes cooldown blocking", func(t *testing.T) {
		b := NewRequestBudget()
		b.now = func() time.Time { return fixedNow }
		setState(t, b, 600, fixedNow.Add(-1*time.Hour))

		resp := &http.Response{Header: make(http.Header)}
		resp.Header.Set("Retry-After", "60")
		b.UpdateFromResponse(resp)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := b.Acquire(ctx, 1); err == nil {
			t.Fatalf("Expected context deadline exceeded during cooldown")
		}
	})

	t.Run("exhausted budget blocks until reset", func(t *testing.T) {
		b := NewRequestBudget()
		b.now = func() time.Time { return fixedNow }
		setState(t, b, 0, fixedNow.Add(time.Hour))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := b.Acquire(ctx, 1); err == nil {
			t.Fatal("expected Acquire to block on exhausted budget")
		}
	})

	t.Run("exhausted budget allows one probe after reset", func(t *testing.T) {
		b := NewRequestBudget()
		b.now = func() time.Time { return fixedNow }
		setState(t, b, 0, fixedNow.Add(-time.Minute))

		if err := b.Acquire(context.Background(), 1); err != nil {
			t.Fatalf("expected probe request to pass, got %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if err := b.Acquire(ctx, 1); err == nil {
			t.Fatal("expected second request to block until a response refreshes the budget")
		}
	})

	t.Run("UpdateFromResponse unblocks waiters", func(t *testing.T) {
		b := NewRequestBudget()
		b.now = func() time.Time { return fixedNow }
		setState(t, b, 0, fixedNow.Add(time.Hour))

		done := make(chan error, 1)
		go func() {
			done <- b.Acquire(context.Background(), 1)
		}()

		// Give the waiter a moment to park, then refresh the budget.
		time.Sleep(20 * time.Millisecond)
		resp := &http.Response{Header: make(http.Header)}
		resp.Header.Set("X-RateLimit-Remaining", "5")
		b.UpdateFromResponse(resp)

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("Acquire failed after refresh: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Acquire still blocked after budget refresh")
		}
	})
}
