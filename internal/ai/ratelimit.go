package ai

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	burstWindow    = 10 * time.Minute
	burstCallLimit = 25
	dailyCallLimit = 50
)

// ErrRateLimited is the sentinel matched by both limit errors, so callers can
// treat them uniformly with errors.Is while still reporting which cap tripped.
var ErrRateLimited = errors.New("ai request limit reached")

var (
	ErrBurstLimitExceeded = fmt.Errorf("%w: maximum %d calls within 10 minutes. Please wait and try again", ErrRateLimited, burstCallLimit)
	ErrDailyLimitExceeded = fmt.Errorf("%w: maximum %d calls per day. Please try again tomorrow", ErrRateLimited, dailyCallLimit)
)

// RateLimiter admits or rejects AI calls against two independent caps: at most
// 25 admitted calls in any trailing 10-minute window and at most 50 per UTC
// calendar day. State is process-local and lost on restart.
type RateLimiter struct {
	mu               sync.Mutex
	dayKey           string
	dayCount         int
	recentTimestamps []time.Time
}

// NewRateLimiter returns a limiter with empty state.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{}
}

// Admit checks both caps and, when the call is admitted, records it. Check and
// record happen under one lock so concurrent callers cannot overshoot the caps.
// The burst cap is evaluated first; the first failing cap determines the error.
func (l *RateLimiter) Admit(now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.recentTimestamps[:0]
	for _, ts := range l.recentTimestamps {
		if now.Sub(ts) < burstWindow {
			kept = append(kept, ts)
		}
	}
	l.recentTimestamps = kept

	if len(l.recentTimestamps) >= burstCallLimit {
		return ErrBurstLimitExceeded
	}

	currentDayKey := now.UTC().Format("2006-01-02")
	if l.dayKey != currentDayKey {
		l.dayKey = currentDayKey
		l.dayCount = 0
	}

	if l.dayCount >= dailyCallLimit {
		return ErrDailyLimitExceeded
	}

	l.recentTimestamps = append(l.recentTimestamps, now)
	l.dayCount++
	return nil
}

// Reset clears all limiter state.
func (l *RateLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dayKey = ""
	l.dayCount = 0
	l.recentTimestamps = nil
}
