package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// newTestLimiter returns a limiter with a controllable clock.
func newTestLimiter(max int, window time.Duration) (*Limiter, *time.Time) {
	l := New(max, window)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllow_WithinQuota(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)
	for i := 1; i <= 5; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
}

func TestAllow_SixthRequestDenied(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)
	for i := 0; i < 5; i++ {
		l.Allow("1.2.3.4")
	}
	if l.Allow("1.2.3.4") {
		t.Error("6th in-window request should be denied")
	}
	// Denied requests stay counted: further requests remain denied too.
	if l.Allow("1.2.3.4") {
		t.Error("7th in-window request should be denied")
	}
}

func TestAllow_WindowElapsedResets(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)
	for i := 0; i < 6; i++ {
		l.Allow("1.2.3.4")
	}

	*now = now.Add(61 * time.Second)
	if !l.Allow("1.2.3.4") {
		t.Error("request after window elapsed should start a fresh window")
	}
}

func TestAllow_ClientsIndependent(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)
	for i := 0; i < 6; i++ {
		l.Allow("1.2.3.4")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("a different client must not be affected by another client's quota")
	}
}

func TestAllow_Concurrent(t *testing.T) {
	l := New(100, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Allow("1.2.3.4")
		}()
	}
	wg.Wait()

	l.mu.Lock()
	count := l.clients["1.2.3.4"].count
	l.mu.Unlock()
	if count != 50 {
		t.Errorf("expected 50 counted requests, got %d (lost increments)", count)
	}
}

func TestSweep_RemovesStaleEntries(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)
	l.Allow("stale-client")

	*now = now.Add(3 * time.Minute) // well past 2x window
	l.Allow("fresh-client")
	l.sweep(*now)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.clients["stale-client"]; ok {
		t.Error("expected stale entry to be swept")
	}
	if _, ok := l.clients["fresh-client"]; !ok {
		t.Error("expected fresh entry to survive the sweep")
	}
}

func TestStartSweep_StopTerminates(t *testing.T) {
	l := New(5, time.Minute)
	l.StartSweep(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	l.Stop()
	l.Stop() // second Stop must be safe
}

func TestClientID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", Unknown},
		{"single address", "203.0.113.7", "203.0.113.7"},
		{"proxy chain takes first", "203.0.113.7, 10.0.0.1, 10.0.0.2", "203.0.113.7"},
		{"whitespace trimmed", "  203.0.113.7 , 10.0.0.1", "203.0.113.7"},
		{"empty first entry", " , 10.0.0.1", Unknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := ClientID(req); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
