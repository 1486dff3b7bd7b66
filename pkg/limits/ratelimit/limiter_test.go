package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLimiter_AdmitUpToLimit(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 10, Window: time.Minute})
	now := time.Now()

	for i := 0; i < 10; i++ {
		if !limiter.admit("client-1", now.Add(time.Duration(i)*time.Second)) {
			t.Fatalf("request %d denied, want admitted", i+1)
		}
	}

	// 11th request within the window is denied.
	if limiter.admit("client-1", now.Add(11*time.Second)) {
		t.Error("request 11 admitted, want denied")
	}
}

func TestLimiter_DeniedAttemptsNotRecorded(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 2, Window: time.Minute})
	now := time.Now()

	limiter.admit("client-1", now)
	limiter.admit("client-1", now.Add(time.Second))

	// Hammer denied attempts; they must not extend the window.
	for i := 0; i < 20; i++ {
		if limiter.admit("client-1", now.Add(2*time.Second)) {
			t.Fatal("over-limit request admitted")
		}
	}

	// Once the two recorded timestamps age out, admission resumes.
	if !limiter.admit("client-1", now.Add(time.Minute+2*time.Second)) {
		t.Error("request after window elapsed denied, want admitted")
	}
}

func TestLimiter_WindowElapsesAndReadmits(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 1, Window: time.Minute})
	now := time.Now()

	if !limiter.admit("client-1", now) {
		t.Fatal("first request denied")
	}
	if limiter.admit("client-1", now.Add(30*time.Second)) {
		t.Error("request within window admitted, want denied")
	}
	if !limiter.admit("client-1", now.Add(61*time.Second)) {
		t.Error("request after window denied, want admitted")
	}
}

func TestLimiter_IdentitiesIndependent(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 1, Window: time.Minute})
	now := time.Now()

	if !limiter.admit("client-1", now) {
		t.Fatal("client-1 denied")
	}
	if !limiter.admit("client-2", now) {
		t.Error("client-2 denied, identities must not share windows")
	}
}

func TestLimiter_Defaults(t *testing.T) {
	limiter := NewLimiter(Config{})

	if limiter.config.MaxRequests != DefaultMaxRequests {
		t.Errorf("MaxRequests = %d, want %d", limiter.config.MaxRequests, DefaultMaxRequests)
	}
	if limiter.Window() != DefaultWindow {
		t.Errorf("Window = %v, want %v", limiter.Window(), DefaultWindow)
	}
}

func TestLimiter_ConcurrentAdmissionsRespectLimit(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 10, Window: time.Minute})

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	// 100 concurrent attempts for the same identity; exactly 10 may pass.
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Admit("client-1") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 10 {
		t.Errorf("admitted = %d, want exactly 10", admitted)
	}
}

func TestLimiter_ConcurrentDistinctIdentities(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 1, Window: time.Minute})

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if limiter.Admit(fmt.Sprintf("client-%d", n)) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if admitted != 50 {
		t.Errorf("admitted = %d, want 50 (one per identity)", admitted)
	}
}

func TestLimiter_SweepRemovesStaleIdentities(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 10, Window: time.Minute})
	now := time.Now()

	limiter.admit("stale", now.Add(-3*time.Minute))
	limiter.admit("recent", now.Add(-30*time.Second))

	removed := limiter.sweep(now)
	if removed != 1 {
		t.Errorf("sweep removed %d identities, want 1", removed)
	}
	if limiter.Identities() != 1 {
		t.Errorf("Identities() = %d, want 1", limiter.Identities())
	}
}

func TestLimiter_SweepKeepsEntriesWithinDoubleWindow(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 10, Window: time.Minute})
	now := time.Now()

	// Older than the window but within 2x the window: kept by the sweep.
	limiter.admit("client-1", now.Add(-90*time.Second))

	if removed := limiter.sweep(now); removed != 0 {
		t.Errorf("sweep removed %d identities, want 0", removed)
	}
	if limiter.Identities() != 1 {
		t.Errorf("Identities() = %d, want 1", limiter.Identities())
	}
}

func TestLimiter_SweepIdempotent(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 10, Window: time.Minute})
	now := time.Now()

	limiter.admit("stale", now.Add(-5*time.Minute))
	limiter.admit("recent", now)

	first := limiter.sweep(now)
	second := limiter.sweep(now)

	if first != 1 {
		t.Errorf("first sweep removed %d, want 1", first)
	}
	if second != 0 {
		t.Errorf("second sweep removed %d, want 0", second)
	}
	if limiter.Identities() != 1 {
		t.Errorf("Identities() = %d after double sweep, want 1", limiter.Identities())
	}
}

func TestLimiter_UpdateConfig(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 1, Window: time.Minute})
	now := time.Now()

	limiter.admit("client-1", now)
	if limiter.admit("client-1", now.Add(time.Second)) {
		t.Fatal("second request admitted under limit 1")
	}

	limiter.UpdateConfig(Config{MaxRequests: 5, Window: time.Minute})
	if !limiter.admit("client-1", now.Add(2*time.Second)) {
		t.Error("request denied after raising the limit")
	}
	if limiter.Window() != time.Minute {
		t.Errorf("Window = %v, want %v", limiter.Window(), time.Minute)
	}
}
