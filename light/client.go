package light

import (
	"errors"
	"fmt"
	"sync"

	"github.com/axonproof/axonproof/core/types"
)

// ErrNotNextBlock is returned by Advance for a block that is not the direct
// child of the current head.
var ErrNotNextBlock = errors.New("light: block does not extend the verified head")

// Client follows a chain from a trusted checkpoint. Each block is verified
// against the state root of the head before it becomes the new head, so the
// client only ever trusts the checkpoint it was started from.
type Client struct {
	mu       sync.Mutex // serializes Advance
	verifier *Verifier
	store    Store
}

// NewClient creates a Client rooted at trusted. A nil store selects a
// MemoryStore.
func NewClient(verifier *Verifier, store Store, trusted Checkpoint) (*Client, error) {
	if verifier == nil {
		return nil, ErrNilInput
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if err := store.Put(trusted); err != nil {
		return nil, err
	}
	return &Client{verifier: verifier, store: store}, nil
}

// Head returns the latest verified checkpoint.
func (c *Client) Head() Checkpoint {
	head, _ := c.store.Latest()
	return head
}

// Checkpoint returns the verified checkpoint at number.
func (c *Client) Checkpoint(number types.BlockNumber) (Checkpoint, bool) {
	return c.store.ByNumber(number)
}

// Advance verifies block as the child of the current head and makes it the
// new head. validators is the set in force at the block's height. A rejected
// block leaves the head unchanged.
func (c *Client) Advance(block *types.Block, proof *types.Proof, validators []types.Validator) error {
	if block == nil || proof == nil {
		return ErrNilInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	head := c.Head()
	if block.Header.Number != head.Number+1 || block.Header.PrevHash != head.Hash {
		return fmt.Errorf("%w: head %d (%s), block %d with parent %s",
			ErrNotNextBlock, head.Number, head.Hash, block.Header.Number, block.Header.PrevHash)
	}
	if err := c.verifier.VerifyBlockProof(block, head.StateRoot, validators, proof); err != nil {
		return err
	}
	return c.store.Put(NewCheckpoint(block, proof.BlockHash))
}
