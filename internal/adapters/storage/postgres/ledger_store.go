package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-pomodoro/internal/adapters/ledger/local"
)

// LedgerStore persiste el event log del ledger simulado en Postgres,
// para que una devnet local sobreviva reinicios.
//
// Esquema esperado:
//
//	CREATE TABLE ledger_events (
//	    seq        BIGSERIAL PRIMARY KEY,
//	    id         TEXT NOT NULL,
//	    event_type TEXT NOT NULL,
//	    tx_digest  TEXT NOT NULL,
//	    ts         TIMESTAMPTZ NOT NULL,
//	    payload    JSONB NOT NULL
//	);
//	CREATE TABLE ledger_transactions (
//	    digest TEXT PRIMARY KEY,
//	    status TEXT NOT NULL,
//	    error  TEXT NOT NULL DEFAULT '',
//	    ts     TIMESTAMPTZ NOT NULL
//	);
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) AppendEvent(ctx context.Context, ev local.EventRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_events (id, event_type, tx_digest, ts, payload)
		VALUES ($1,$2,$3,$4,$5)
	`,
		ev.ID,
		ev.Type,
		ev.TxDigest,
		ev.Timestamp,
		[]byte(ev.Payload),
	)
	return err
}

func (s *LedgerStore) ListEventsByType(ctx context.Context, eventType string) ([]local.EventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_type, tx_digest, ts, payload
		FROM ledger_events
		WHERE event_type = $1
		ORDER BY seq ASC
	`, eventType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *LedgerStore) ListEventsByDigest(ctx context.Context, digest string) ([]local.EventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_type, tx_digest, ts, payload
		FROM ledger_events
		WHERE tx_digest = $1
		ORDER BY seq ASC
	`, digest)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *LedgerStore) SaveTransaction(ctx context.Context, tx local.TxRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_transactions (digest, status, error, ts)
		VALUES ($1,$2,$3,$4)
	`,
		tx.Digest,
		tx.Status,
		tx.Error,
		tx.Timestamp,
	)
	return err
}

func (s *LedgerStore) GetTransaction(ctx context.Context, digest string) (local.TxRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT digest, status, error, ts
		FROM ledger_transactions
		WHERE digest = $1
	`, digest)

	var tx local.TxRecord
	if err := row.Scan(&tx.Digest, &tx.Status, &tx.Error, &tx.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return local.TxRecord{}, ErrNotFound
		}
		return local.TxRecord{}, err
	}
	return tx, nil
}

func scanEvents(rows *sql.Rows) ([]local.EventRecord, error) {
	out := make([]local.EventRecord, 0)
	for rows.Next() {
		var ev local.EventRecord
		var payload []byte
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.TxDigest, &ev.Timestamp, &payload); err != nil {
			return nil, err
		}
		ev.Payload = payload
		out = append(out, ev)
	}
	return out, rows.Err()
}
