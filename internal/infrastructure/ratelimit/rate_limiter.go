package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a refilling bucket guarding one client/action pair.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// refillLocked credits tokens for the time elapsed since the last refill.
// Callers must hold the mutex.
func (tb *TokenBucket) refillLocked(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}
}

// Allow consumes a token if one is available. When the bucket is empty it
// reports the wait until the next token.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	tb.refillLocked(now)

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	nextRefill := tb.lastRefill.Add(tb.refillTime)
	return false, nextRefill.Sub(now)
}

// Limiter tracks buckets per key. Keys are "client:action" pairs, so the login
// limiter throttles each caller independently of register.
type Limiter struct {
	buckets    map[string]*TokenBucket
	maxTokens  int
	refillRate int
	refillTime time.Duration
	mutex      sync.RWMutex
}

// sweepInterval is how often idle buckets are dropped from the map.
const sweepInterval = time.Hour

func NewLimiter(maxTokens, refillRate int, refillTime time.Duration) *Limiter {
	return newLimiter(maxTokens, refillRate, refillTime, sweepInterval)
}

func newLimiter(maxTokens, refillRate int, refillTime, sweepEvery time.Duration) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*TokenBucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
	}
	go l.sweep(sweepEvery)
	return l
}

// sweep runs Cleanup for the lifetime of the limiter.
func (l *Limiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		l.Cleanup()
	}
}

func (l *Limiter) Allow(client, action string) (bool, time.Duration) {
	key := client + ":" + action

	l.mutex.RLock()
	bucket, exists := l.buckets[key]
	l.mutex.RUnlock()

	if !exists {
		l.mutex.Lock()
		bucket, exists = l.buckets[key]
		if !exists {
			bucket = NewTokenBucket(l.maxTokens, l.refillRate, l.refillTime)
			l.buckets[key] = bucket
		}
		l.mutex.Unlock()
	}

	return bucket.Allow()
}

// Cleanup drops buckets that are full again, keeping the map from growing
// without bound. The sweep goroutine runs it on every tick.
func (l *Limiter) Cleanup() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	for key, bucket := range l.buckets {
		if bucket.GetTokens() == bucket.maxTokens {
			delete(l.buckets, key)
		}
	}
}

// GetTokens returns the current token count after crediting elapsed refills.
func (tb *TokenBucket) GetTokens() int {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	tb.refillLocked(time.Now())
	return tb.tokens
}
