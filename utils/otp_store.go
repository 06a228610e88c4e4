package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// OTPStore keeps one-time codes in memory with per-entry expiry. Codes do not
// survive a restart; that is an accepted limitation. Expired entries are
// swept on each write.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]*otpEntry
	ttl     time.Duration
}

// MaxOTPAttempts bounds verification tries before a code is invalidated.
const MaxOTPAttempts = 5

func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{
		entries: make(map[string]*otpEntry),
		ttl:     ttl,
	}
}

func (s *OTPStore) sweepLocked(now time.Time) {
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Issue generates a fresh 6-digit code for the key, replacing any existing
// one.
func (s *OTPStore) Issue(key string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.sweepLocked(now)
	s.entries[key] = &otpEntry{code: code, expiresAt: now.Add(s.ttl)}
	return code, nil
}

// Verify consumes the code for the key. It succeeds at most once; wrong codes
// count against MaxOTPAttempts.
func (s *OTPStore) Verify(key, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return false
	}

	if e.code != code {
		e.attempts++
		if e.attempts >= MaxOTPAttempts {
			delete(s.entries, key)
		}
		return false
	}

	delete(s.entries, key)
	return true
}

// Len reports live entries, sweeping expired ones first.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(time.Now())
	return len(s.entries)
}
