package alert

import (
	"sync"
	"time"
)

// DefaultWindow is how long repeated failures for the same key stay
// collapsed into one alert.
const DefaultWindow = 5 * time.Minute

// Limiter suppresses repeat alerts for the same failure key within a
// window, so a sustained upstream outage raises one email per item instead
// of one per retry.
type Limiter struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewLimiter(window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		window: window,
		now:    time.Now,
		seen:   map[string]time.Time{},
	}
}

// Allow reports whether an alert for key should be sent now, and records it
// if so.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.seen[key]; ok && now.Sub(last) < l.window {
		return false
	}

	// Drop expired entries so the map doesn't grow with every distinct
	// failing item forever.
	for k, t := range l.seen {
		if now.Sub(t) >= l.window {
			delete(l.seen, k)
		}
	}

	l.seen[key] = now
	return true
}
