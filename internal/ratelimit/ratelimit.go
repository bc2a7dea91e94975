// Package ratelimit implements a process-local, per-client fixed-window
// request counter. It is best-effort abuse mitigation: state lives in memory
// and is lost on restart, and a client straddling a window boundary can get
// up to twice the per-window quota through.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Unknown is the shared bucket for requests that carry no forwarded-address
// header. When the deployment supplies no X-Forwarded-For, every anonymous
// client shares this one quota.
const Unknown = "unknown"

type entry struct {
	count       int
	windowStart time.Time
}

// Limiter tracks request counts per client identifier over a fixed window.
// Safe for concurrent use by multiple request handlers.
type Limiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	clients map[string]*entry

	now      func() time.Time // injectable for tests
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Limiter allowing max requests per client per window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		clients: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Allow records a request for clientID and reports whether it is within
// quota. The request that trips the limit is still counted, so every further
// in-window request stays denied until the window elapses and resets.
func (l *Limiter) Allow(clientID string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.clients[clientID]
	if !ok || now.Sub(e.windowStart) > l.window {
		l.clients[clientID] = &entry{count: 1, windowStart: now}
		return true
	}

	e.count++
	return e.count <= l.max
}

// StartSweep launches a background loop that removes stale entries every
// interval. Entries are stale once their window started more than twice the
// window length ago, bounding the map to roughly the set of recent clients.
// Stop cancels the loop.
func (l *Limiter) StartSweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer close(l.done)
		defer ticker.Stop()
		for {
			select {
			case <-l.stop:
				return
			case <-ticker.C:
				l.sweep(l.now())
			}
		}
	}()
}

// Stop cancels the sweep loop and waits for it to exit. Safe to call more
// than once; must not be called if StartSweep was never called.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
		<-l.done
	})
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, e := range l.clients {
		if now.Sub(e.windowStart) > 2*l.window {
			delete(l.clients, id)
		}
	}
}

// ClientID derives the limiter key for a request: the first entry of the
// comma-separated X-Forwarded-For header, or Unknown when the header is
// absent or empty.
func ClientID(r *http.Request) string {
	fwd := r.Header.Get("X-Forwarded-For")
	if fwd == "" {
		return Unknown
	}
	first, _, _ := strings.Cut(fwd, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return Unknown
	}
	return first
}
