package ratelimit

import (
	"testing"
	"time"
)

func TestSweeper_StartStop(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 10, Window: time.Minute})
	sweeper := NewSweeper(limiter, time.Hour)

	if err := sweeper.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if !sweeper.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}

	// Starting twice is rejected.
	if err := sweeper.Start(); err == nil {
		t.Error("second Start() = nil, want error")
	}

	sweeper.Stop()
	if sweeper.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}

	// Stop is safe to call again.
	sweeper.Stop()
}

func TestSweeper_RunSweepInvokesCallback(t *testing.T) {
	limiter := NewLimiter(Config{MaxRequests: 10, Window: time.Minute})
	limiter.admit("stale", time.Now().Add(-5*time.Minute))
	limiter.admit("recent", time.Now())

	sweeper := NewSweeper(limiter, time.Hour)

	var gotRemoved, gotTracked int
	sweeper.OnSweep = func(removed, tracked int) {
		gotRemoved = removed
		gotTracked = tracked
	}

	sweeper.runSweep()

	if gotRemoved != 1 {
		t.Errorf("OnSweep removed = %d, want 1", gotRemoved)
	}
	if gotTracked != 1 {
		t.Errorf("OnSweep tracked = %d, want 1", gotTracked)
	}
}

func TestSweeper_DefaultInterval(t *testing.T) {
	limiter := NewLimiter(Config{})
	sweeper := NewSweeper(limiter, 0)

	if sweeper.interval != DefaultSweepInterval {
		t.Errorf("interval = %v, want %v", sweeper.interval, DefaultSweepInterval)
	}
}
