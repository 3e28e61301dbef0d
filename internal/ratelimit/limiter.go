package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultShards = 32

// Decision is the outcome of a single Take.
type Decision struct {
	Allowed    bool
	Remaining  int
	ResetAfter time.Duration
}

type windowKey struct {
	clientID string
	rule     string
}

type window struct {
	start  time.Time
	length time.Duration
	count  int
}

func (w *window) elapsed(now time.Time) bool {
	return now.Sub(w.start) >= w.length
}

type shard struct {
	mu      sync.Mutex
	windows map[windowKey]*window
}

// Limiter counts requests per (client, rule) in fixed windows.
// Counters live in memory only and are lost on restart.
type Limiter struct {
	shards []*shard
	now    func() time.Time
}

type Option func(*Limiter)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

func WithShards(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.shards = newShards(n)
		}
	}
}

func NewLimiter(opts ...Option) *Limiter {
	l := &Limiter{
		shards: newShards(defaultShards),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{windows: make(map[windowKey]*window)}
	}
	return shards
}

func (l *Limiter) shardFor(k windowKey) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(k.rule))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.clientID))
	return l.shards[h.Sum32()%uint32(len(l.shards))]
}

// Admit reports whether the request of clientID may pass under rule.
func (l *Limiter) Admit(clientID string, rule Rule) bool {
	return l.Take(clientID, rule).Allowed
}

// Take counts one request of clientID against rule.
// A missing or elapsed window is replaced by a fresh one holding this request;
// otherwise the count is incremented, up to MaxRequests+1, and the request allowed
// while it stays within MaxRequests.
func (l *Limiter) Take(clientID string, rule Rule) Decision {
	if rule.MaxRequests <= 0 {
		return Decision{Allowed: false, ResetAfter: rule.Window}
	}

	now := l.now()
	k := windowKey{clientID: clientID, rule: rule.Name}
	s := l.shardFor(k)

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[k]
	if !ok || w.elapsed(now) {
		w = &window{start: now, length: rule.Window, count: 1}
		s.windows[k] = w
		return Decision{
			Allowed:    true,
			Remaining:  rule.MaxRequests - 1,
			ResetAfter: rule.Window,
		}
	}

	// rejected requests stop counting once the window is over the limit
	if w.count <= rule.MaxRequests {
		w.count++
	}
	remaining := rule.MaxRequests - w.count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:    w.count <= rule.MaxRequests,
		Remaining:  remaining,
		ResetAfter: w.start.Add(w.length).Sub(now),
	}
}

// Sweep drops elapsed windows and returns how many were removed.
func (l *Limiter) Sweep() int {
	now := l.now()
	removed := 0
	for _, s := range l.shards {
		s.mu.Lock()
		for k, w := range s.windows {
			if w.elapsed(now) {
				delete(s.windows, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Len returns the number of tracked windows.
func (l *Limiter) Len() int {
	n := 0
	for _, s := range l.shards {
		s.mu.Lock()
		n += len(s.windows)
		s.mu.Unlock()
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("rate limiter sweeper stopped")
			return
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				log.Tracef("rate limiter: swept %d windows", removed)
			}
		}
	}
}
