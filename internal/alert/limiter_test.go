package alert

import (
	"testing"
	"time"
)

func TestLimiterCollapsesWithinWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("query-single/cinemaworld/cw1") {
		t.Fatal("first alert should pass")
	}
	if l.Allow("query-single/cinemaworld/cw1") {
		t.Error("repeat within window should be suppressed")
	}

	now = now.Add(30 * time.Second)
	if l.Allow("query-single/cinemaworld/cw1") {
		t.Error("still inside the window, should stay suppressed")
	}

	now = now.Add(31 * time.Second)
	if !l.Allow("query-single/cinemaworld/cw1") {
		t.Error("window elapsed, alert should pass again")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("b") {
		t.Error("distinct keys must not suppress each other")
	}
}

func TestLimiterDropsExpiredEntries(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(time.Minute)
	l.now = func() time.Time { return now }

	for _, k := range []string{"a", "b", "c"} {
		l.Allow(k)
	}
	now = now.Add(2 * time.Minute)
	l.Allow("d")

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.seen) != 1 {
		t.Errorf("seen has %d entries, want expired ones pruned to 1", len(l.seen))
	}
}
