/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: kvredis/internal/store/store.go
*/

// Package store implements the in-memory keyed byte-string store with
// lazy per-key expiry that backs every data command.
package store

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"
)

// Value is a stored entry: opaque bytes plus an optional absolute expiry.
// ExpiresAt is nil when the key has no expiry.
type Value struct {
	Data      []byte
	ExpiresAt *time.Time
}

func (v *Value) expired(now time.Time) bool {
	return v.ExpiresAt != nil && v.ExpiresAt.Before(now)
}

// Store is a concurrency-safe mapping from byte-string keys to Value.
// Every exported method is atomic with respect to every other method:
// a single RWMutex critical section wraps each call, and no method ever
// performs I/O or acquires a second lock.
//
// Keys are compared byte-wise. Since Go map keys must be comparable, keys
// are stored under their string conversion (a byte-for-byte copy of the
// slice, not a text decode) — this preserves byte-wise, not Unicode,
// comparison.
type Store struct {
	mu   sync.RWMutex
	data map[string]Value
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]Value)}
}

// now is overridden in tests to exercise expiry deterministically.
var now = time.Now

// evictIfExpired removes key from the map if its value has expired.
// Caller must hold the write lock.
func (s *Store) evictIfExpired(key string) (Value, bool) {
	v, ok := s.data[key]
	if !ok {
		return Value{}, false
	}
	if v.expired(now()) {
		delete(s.data, key)
		return Value{}, false
	}
	return v, true
}

// Get returns the bytes stored at key, or ok=false if the key is absent or
// expired (an expired key is evicted as a side effect).
func (s *Store) Get(key []byte) (data []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.evictIfExpired(string(key))
	if !ok {
		return nil, false
	}
	return v.Data, true
}

// Set writes data at key, preserving any existing, still-live expiry.
// This is the plain SET semantics — callers that need to
// clear expiry (MSET, GETSET) should use SetClearingExpiry instead.
func (s *Store) Set(key, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(key)
	existing, ok := s.evictIfExpired(k)
	v := Value{Data: append([]byte(nil), data...)}
	if ok {
		v.ExpiresAt = existing.ExpiresAt
	}
	s.data[k] = v
}

// SetClearingExpiry writes data at key and clears any expiry (MSET, GETSET
// semantics).
func (s *Store) SetClearingExpiry(key, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setClearingExpiry(key, data)
}

// setClearingExpiry is the lock-free body of SetClearingExpiry. Caller
// must hold the write lock.
func (s *Store) setClearingExpiry(key, data []byte) {
	s.data[string(key)] = Value{Data: append([]byte(nil), data...)}
}

// Delete removes each of keys that currently exists (and is not expired),
// returning the count actually removed. Duplicates in keys are each
// evaluated independently, but a key can only be removed once.
func (s *Store) Delete(keys ...[]byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, key := range keys {
		k := string(key)
		if _, ok := s.evictIfExpired(k); ok {
			delete(s.data, k)
			count++
		}
	}
	return count
}

// Exists counts how many of keys are currently present and live.
// Duplicates count separately, no de-dup.
func (s *Store) Exists(keys ...[]byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, key := range keys {
		if _, ok := s.evictIfExpired(string(key)); ok {
			count++
		}
	}
	return count
}

// Expire sets key's expiry to seconds from now. Returns 0 if key does not
// exist. If seconds <= 0 the key is deleted and Expire returns 1. Otherwise
// the expiry is set and Expire returns 1.
func (s *Store) Expire(key []byte, seconds int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(key)
	v, ok := s.evictIfExpired(k)
	if !ok {
		return 0
	}
	if seconds <= 0 {
		delete(s.data, k)
		return 1
	}
	exp := now().Add(time.Duration(seconds) * time.Second)
	v.ExpiresAt = &exp
	s.data[k] = v
	return 1
}

// TTL returns -2 if key is absent or expired (evicting it), -1 if present
// with no expiry, or the whole seconds remaining otherwise (floor,
// saturating at zero).
func (s *Store) TTL(key []byte) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.evictIfExpired(string(key))
	if !ok {
		return -2
	}
	if v.ExpiresAt == nil {
		return -1
	}
	remaining := v.ExpiresAt.Sub(now())
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}

// IncrBy treats the value at key as a decimal signed 64-bit integer (an
// absent or expired key is treated as "0", clearing any stale expiry),
// adds delta using saturating arithmetic, writes the decimal result back
// with no expiry change, and returns it. If the stored bytes are not valid
// UTF-8 decimal text, err is non-nil and the store is left unmodified.
func (s *Store) IncrBy(key []byte, delta int64) (newValue int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(key)
	v, ok := s.evictIfExpired(k)

	// v is the zero Value (ExpiresAt nil) when the key was absent or
	// expired, so the "treat as 0, no stale expiry" case falls out here
	// without extra handling.
	current := int64(0)
	if ok {
		current, err = parseStoredInt(v.Data)
		if err != nil {
			return 0, err
		}
	}

	sum := saturatingAdd(current, delta)
	v.Data = []byte(strconv.FormatInt(sum, 10))
	s.data[k] = v
	return sum, nil
}

func parseStoredInt(data []byte) (int64, error) {
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value is not an integer or out of range")
	}
	return n, nil
}

func saturatingAdd(a, b int64) int64 {
	sum := a + b
	// Overflow occurs iff both operands share a sign and the result's sign
	// differs from theirs.
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		if b > 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return sum
}

// KeysAll returns every live key, evicting expired keys as a side effect.
// Iteration order is unspecified.
func (s *Store) KeysAll() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := now()
	keys := make([][]byte, 0, len(s.data))
	for k, v := range s.data {
		if v.expired(t) {
			delete(s.data, k)
			continue
		}
		keys = append(keys, []byte(k))
	}
	return keys
}

// MSet writes every pair in one atomic step, clearing any prior expiry on
// each key.
func (s *Store) MSet(pairs [][2][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pair := range pairs {
		s.setClearingExpiry(pair[0], pair[1])
	}
}

// MGet returns one result per key in keys, in order, alongside a parallel
// slice of presence flags — present[i] is false where key i is missing or
// expired, in which case values[i] is nil.
func (s *Store) MGet(keys [][]byte) (values [][]byte, present []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values = make([][]byte, len(keys))
	present = make([]bool, len(keys))
	for i, key := range keys {
		if v, ok := s.evictIfExpired(string(key)); ok {
			values[i] = v.Data
			present[i] = true
		}
	}
	return values, present
}

// Strlen returns the byte length of the value at key, or 0 if absent or
// expired (evicting it).
func (s *Store) Strlen(key []byte) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.evictIfExpired(string(key))
	if !ok {
		return 0
	}
	return int64(len(v.Data))
}

// GetSet atomically replaces the value at key (clearing expiry) and
// returns the previous bytes, or ok=false if there was none (absent or
// expired).
func (s *Store) GetSet(key, data []byte) (previous []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, existed := s.evictIfExpired(string(key))
	s.setClearingExpiry(key, data)
	return old.Data, existed
}

// Append atomically appends data onto the value at key — treating an
// absent or expired key as empty — and returns the new total length. The
// expiry (if any, and if the key was not expired) is left untouched.
func (s *Store) Append(key, data []byte) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(key)
	v, ok := s.evictIfExpired(k)
	if !ok {
		v = Value{}
	}
	v.Data = append(bytes.Clone(v.Data), data...)
	s.data[k] = v
	return int64(len(v.Data))
}
