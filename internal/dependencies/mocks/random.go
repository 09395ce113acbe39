package mocks

import (
	"errors"
	"sync"

	"github.com/mcoot/fantasy-keepers/internal/dependencies/random"
)

// ErrRandomExhausted is returned by MockRandom when Fail is set
var ErrRandomExhausted = errors.New("mock random: no entropy")

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	mu sync.Mutex

	// BytesResults is a queue of results to return from Bytes
	BytesResults [][]byte
	bytesIndex   int

	// Fail makes every Bytes call return ErrRandomExhausted
	Fail bool
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Bytes returns the next queued result, or n zero bytes if none remaining
// Queued results are truncated or zero-padded to n
func (r *MockRandom) Bytes(n int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Fail {
		return nil, ErrRandomExhausted
	}

	out := make([]byte, n)
	if r.bytesIndex < len(r.BytesResults) {
		copy(out, r.BytesResults[r.bytesIndex])
		r.bytesIndex++
	}
	return out, nil
}

// QueueBytes adds values to the Bytes result queue
func (r *MockRandom) QueueBytes(values ...[]byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BytesResults = append(r.BytesResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BytesResults = nil
	r.bytesIndex = 0
	r.Fail = false
}
