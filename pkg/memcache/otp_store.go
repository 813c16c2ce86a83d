// Package mem holds short-lived single-use codes such as password reset OTPs.
package mem

import (
	"context"
	"sync"
	"time"
)

type OTPStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Consume returns the value for key if not expired and removes it
	// (single-use). Returns "" if missing/expired.
	Consume(ctx context.Context, key string) (string, error)

	// Peek reads without consuming.
	Peek(ctx context.Context, key string) (string, bool, error)

	// Fail records a wrong guess against the code under key and returns how
	// many guesses are left. At zero the code is removed. Set starts a new
	// count.
	Fail(ctx context.Context, key string, limit int) (int, error)
}

type entry struct {
	value     string
	expiresAt time.Time
	failures  int
}

// MemoryOTPStore keeps codes in process memory; it is lost on restart and
// not shared between replicas.
type MemoryOTPStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryOTPStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.data[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryOTPStore) Consume(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return "", nil
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return "", nil
	}
	return e.value, nil
}

func (s *MemoryOTPStore) Peek(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryOTPStore) Fail(_ context.Context, key string, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.data, key)
		return 0, nil
	}
	e.failures++
	if e.failures >= limit {
		delete(s.data, key)
		return 0, nil
	}
	s.data[key] = e
	return limit - e.failures, nil
}

// sweep drops expired entries; callers hold the write lock.
func (s *MemoryOTPStore) sweep() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
