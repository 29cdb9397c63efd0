// Package memory implementa el Store del ledger simulado en memoria.
// Es el backend por defecto en dev y el que usan los tests.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-pomodoro/internal/adapters/ledger/local"
)

var (
	ErrNotFound = errors.New("not found")
)

type ledgerStore struct {
	mu     sync.RWMutex
	events []local.EventRecord
	txByID map[string]local.TxRecord
}

func NewLedgerStore() local.Store {
	return &ledgerStore{
		events: make([]local.EventRecord, 0),
		txByID: make(map[string]local.TxRecord),
	}
}

func (s *ledgerStore) AppendEvent(ctx context.Context, ev local.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(ev.ID) == "" {
		return errors.New("event id required")
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *ledgerStore) ListEventsByType(ctx context.Context, eventType string) ([]local.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Orden de inserción = orden de ledger.
	out := make([]local.EventRecord, 0)
	for _, ev := range s.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *ledgerStore) ListEventsByDigest(ctx context.Context, digest string) ([]local.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]local.EventRecord, 0)
	for _, ev := range s.events {
		if ev.TxDigest == digest {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *ledgerStore) SaveTransaction(ctx context.Context, tx local.TxRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(tx.Digest) == "" {
		return errors.New("tx digest required")
	}
	if _, exists := s.txByID[tx.Digest]; exists {
		return errors.New("tx already exists")
	}
	s.txByID[tx.Digest] = tx
	return nil
}

func (s *ledgerStore) GetTransaction(ctx context.Context, digest string) (local.TxRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.txByID[digest]
	if !ok {
		return local.TxRecord{}, ErrNotFound
	}
	return tx, nil
}
