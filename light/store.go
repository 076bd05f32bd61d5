package light

import (
	"sync"

	"github.com/axonproof/axonproof/core/types"
)

// Checkpoint is the part of a verified block a light client needs to verify
// its successor. The block hash does not cover StateRoot; the successor's
// hash does, as its previous state root.
type Checkpoint struct {
	Number    types.BlockNumber `json:"number"`
	Hash      types.Hash        `json:"hash"`
	StateRoot types.Hash        `json:"state_root"`
}

// NewCheckpoint records block, whose hash was checked to be hash.
func NewCheckpoint(block *types.Block, hash types.Hash) Checkpoint {
	return Checkpoint{
		Number:    block.Header.Number,
		Hash:      hash,
		StateRoot: block.Header.StateRoot,
	}
}

// Store holds verified checkpoints.
type Store interface {
	Put(cp Checkpoint) error
	ByHash(hash types.Hash) (Checkpoint, bool)
	ByNumber(number types.BlockNumber) (Checkpoint, bool)
	Latest() (Checkpoint, bool)
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu       sync.RWMutex
	byHash   map[types.Hash]Checkpoint
	byNumber map[types.BlockNumber]types.Hash
	latest   types.Hash
	hasAny   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byHash:   make(map[types.Hash]Checkpoint),
		byNumber: make(map[types.BlockNumber]types.Hash),
	}
}

// Put stores cp, making it the latest if its number is not lower.
func (s *MemoryStore) Put(cp Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byHash[cp.Hash] = cp
	s.byNumber[cp.Number] = cp.Hash
	if !s.hasAny || cp.Number >= s.byHash[s.latest].Number {
		s.latest = cp.Hash
		s.hasAny = true
	}
	return nil
}

// ByHash returns the checkpoint with the given block hash.
func (s *MemoryStore) ByHash(hash types.Hash) (Checkpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.byHash[hash]
	return cp, ok
}

// ByNumber returns the checkpoint at number.
func (s *MemoryStore) ByNumber(number types.BlockNumber) (Checkpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hash, ok := s.byNumber[number]
	if !ok {
		return Checkpoint{}, false
	}
	return s.byHash[hash], true
}

// Latest returns the checkpoint with the highest number.
func (s *MemoryStore) Latest() (Checkpoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasAny {
		return Checkpoint{}, false
	}
	return s.byHash[s.latest], true
}

// Len returns the number of stored checkpoints.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byHash)
}
