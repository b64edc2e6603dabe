package inmemory

import (
	"context"
	"sync"
)

// TxManager serializes booking transactions with a process-wide mutex, the
// single-writer variant of the ledger's atomicity contract. It mirrors the
// txmanager API so usecases accept either implementation.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager creates a new serializing transaction manager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// DoSerializable runs fn while holding the global lock, so a check-then-insert
// sequence observes no concurrent writes.
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
