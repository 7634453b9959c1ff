package storage

import (
	"errors"
	"sync"
	"time"
)

const (
	// DefaultCapacity is the number of conversions kept when no capacity is configured.
	DefaultCapacity = 100
	maxCapacity     = 10_000
)

var (
	// ErrInvalidCapacity indicates the requested history capacity is outside 1..10000.
	ErrInvalidCapacity = errors.New("history capacity must be between 1 and 10000")
	// ErrInvalidConversion indicates a conversion record is missing its number or numeral.
	ErrInvalidConversion = errors.New("conversion must have a positive number and a numeral")
)

// Conversion is one successful integer to numeral conversion.
type Conversion struct {
	Number      int
	Numeral     string
	ConvertedAt time.Time
}

// History provides access to recently performed conversions.
type History interface {
	Record(c Conversion) error
	Recent(limit int) ([]Conversion, error)
}

// MemoryHistory keeps the most recent conversions in a ring buffer guarded by a RWMutex.
type MemoryHistory struct {
	mu      sync.RWMutex
	entries []Conversion
	next    int
	size    int
}

// NewMemoryHistory creates a history holding at most capacity conversions.
func NewMemoryHistory(capacity int) (*MemoryHistory, error) {
	if err := ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	return &MemoryHistory{
		entries: make([]Conversion, capacity),
	}, nil
}

// ValidateCapacity reports whether capacity is an acceptable history size.
func ValidateCapacity(capacity int) error {
	if capacity <= 0 || capacity > maxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

// Record stores c, evicting the oldest conversion when the history is full.
func (h *MemoryHistory) Record(c Conversion) error {
	if c.Number <= 0 || c.Numeral == "" {
		return ErrInvalidConversion
	}

	h.mu.Lock()
	h.entries[h.next] = c
	h.next = (h.next + 1) % len(h.entries)
	if h.size < len(h.entries) {
		h.size++
	}
	h.mu.Unlock()

	return nil
}

// Recent returns up to limit conversions, newest first. A non-positive limit returns all of them.
func (h *MemoryHistory) Recent(limit int) ([]Conversion, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 || limit > h.size {
		limit = h.size
	}

	out := make([]Conversion, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (h.next - i + len(h.entries)) % len(h.entries)
		out = append(out, h.entries[idx])
	}
	return out, nil
}

// Len returns the number of stored conversions.
func (h *MemoryHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}
