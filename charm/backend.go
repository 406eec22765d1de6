// ABOUTME: Charm KV persistence backend for the state snapshot
// ABOUTME: The snapshot lives under a single key and syncs across devices

package charm

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/opslog/store"
)

// Backend implements store.Backend on a charm client.
type Backend struct {
	client *Client
	key    []byte
}

var _ store.Backend = (*Backend)(nil)

func NewBackend(c *Client) *Backend {
	return &Backend{client: c, key: []byte(StateKey)}
}

// Load returns the snapshot, or store.ErrNoSnapshot when the key is absent.
func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := b.client.Get(b.key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", StateKey, err)
	}
	if len(data) == 0 {
		return nil, store.ErrNoSnapshot
	}
	return data, nil
}

// Save overwrites the snapshot key.
func (b *Backend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.client.Set(b.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", StateKey, err)
	}
	return nil
}

// Client exposes the underlying client for sync commands.
func (b *Backend) Client() *Client {
	return b.client
}
