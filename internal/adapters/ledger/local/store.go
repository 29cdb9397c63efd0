package local

import (
	"context"
	"encoding/json"
	"time"
)

// EventRecord es un evento ya emitido, tal como lo guarda el store.
type EventRecord struct {
	ID        string
	Type      string
	TxDigest  string
	Timestamp time.Time
	Payload   json.RawMessage
}

// TxRecord es una transacción finalizada.
type TxRecord struct {
	Digest    string
	Status    string // success | failure
	Error     string
	Timestamp time.Time
}

// Store es el backend de persistencia del ledger simulado.
// Hay una implementación in-memory y una Postgres.
type Store interface {
	AppendEvent(ctx context.Context, ev EventRecord) error
	ListEventsByType(ctx context.Context, eventType string) ([]EventRecord, error)
	ListEventsByDigest(ctx context.Context, digest string) ([]EventRecord, error)

	SaveTransaction(ctx context.Context, tx TxRecord) error
	GetTransaction(ctx context.Context, digest string) (TxRecord, error)
}
