package local

import (
	"context"
	"errors"
	"testing"

	"pet-pomodoro/internal/ports/ledger"
)

// -------------------------
// Test store (in-memory)
// -------------------------

var errStoreNotFound = errors.New("store: not found")

type testStore struct {
	events []EventRecord
	txByID map[string]TxRecord
}

func newTestStore() *testStore {
	return &testStore{txByID: map[string]TxRecord{}}
}

func (s *testStore) AppendEvent(ctx context.Context, ev EventRecord) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *testStore) ListEventsByType(ctx context.Context, eventType string) ([]EventRecord, error) {
	out := make([]EventRecord, 0)
	for _, ev := range s.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *testStore) ListEventsByDigest(ctx context.Context, digest string) ([]EventRecord, error) {
	out := make([]EventRecord, 0)
	for _, ev := range s.events {
		if ev.TxDigest == digest {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *testStore) SaveTransaction(ctx context.Context, tx TxRecord) error {
	s.txByID[tx.Digest] = tx
	return nil
}

func (s *testStore) GetTransaction(ctx context.Context, digest string) (TxRecord, error) {
	tx, ok := s.txByID[digest]
	if !ok {
		return TxRecord{}, errStoreNotFound
	}
	return tx, nil
}

// -------------------------
// Helpers
// -------------------------

func adoptTx(sender, name string) ledger.Transaction {
	return ledger.Transaction{
		Sender:    sender,
		Package:   "0xpkg",
		Module:    "smart_contract",
		Function:  "adopt_pet",
		Arguments: []string{name, "0xstate"},
		GasBudget: 10_000_000,
	}
}

const petCreatedType = "0xpkg::smart_contract::PetCreated"

// -------------------------
// Tests
// -------------------------

func TestLedger_Adopt_EmitsPetCreated(t *testing.T) {
	l := NewLedger(newTestStore())
	ctx := context.Background()

	res, err := l.SignAndSubmit(ctx, adoptTx("0x123", "小花"))
	if err != nil {
		t.Fatalf("SignAndSubmit returned error: %v", err)
	}
	if res.Digest == "" {
		t.Fatalf("expected digest")
	}

	if err := l.WaitForFinality(ctx, res.Digest); err != nil {
		t.Fatalf("WaitForFinality returned error: %v", err)
	}

	detail, err := l.GetTransactionDetail(ctx, res.Digest, ledger.DetailOptions{ShowEvents: true})
	if err != nil {
		t.Fatalf("GetTransactionDetail returned error: %v", err)
	}
	if detail.Status != ledger.TxStatusSuccess {
		t.Fatalf("expected success status, got %s", detail.Status)
	}
	if len(detail.Events) != 1 || detail.Events[0].Type != petCreatedType {
		t.Fatalf("expected one PetCreated event, got %#v", detail.Events)
	}
}

func TestLedger_Adopt_SecondAdoptionSameOwner_NoEvents(t *testing.T) {
	l := NewLedger(newTestStore())
	ctx := context.Background()

	if _, err := l.SignAndSubmit(ctx, adoptTx("0x123", "小花")); err != nil {
		t.Fatalf("first adoption returned error: %v", err)
	}

	res, err := l.SignAndSubmit(ctx, adoptTx("0x123", "Otra"))
	if err != nil {
		t.Fatalf("second adoption returned error: %v", err)
	}

	// Misma semántica que testnet: la transacción termina bien,
	// pero sin evento de creación.
	detail, err := l.GetTransactionDetail(ctx, res.Digest, ledger.DetailOptions{ShowEvents: true})
	if err != nil {
		t.Fatalf("GetTransactionDetail returned error: %v", err)
	}
	if detail.Status != ledger.TxStatusSuccess {
		t.Fatalf("expected success status, got %s", detail.Status)
	}
	if len(detail.Events) != 0 {
		t.Fatalf("expected no events on duplicate adoption, got %#v", detail.Events)
	}
}

func TestLedger_Adopt_ZeroGasBudget_Fails(t *testing.T) {
	l := NewLedger(newTestStore())
	ctx := context.Background()

	tx := adoptTx("0x123", "小花")
	tx.GasBudget = 0

	res, err := l.SignAndSubmit(ctx, tx)
	if err != nil {
		t.Fatalf("SignAndSubmit returned error: %v", err)
	}

	detail, err := l.GetTransactionDetail(ctx, res.Digest, ledger.DetailOptions{ShowEvents: true})
	if err != nil {
		t.Fatalf("GetTransactionDetail returned error: %v", err)
	}
	if detail.Status != ledger.TxStatusFailure {
		t.Fatalf("expected failure status, got %s", detail.Status)
	}
	if detail.Error == "" {
		t.Fatalf("expected ledger error message")
	}
	if len(detail.Events) != 0 {
		t.Fatalf("failed tx must not emit events")
	}
}

func TestLedger_Adopt_UnsupportedCall(t *testing.T) {
	l := NewLedger(newTestStore())

	tx := adoptTx("0x123", "小花")
	tx.Function = "feed_pet"

	if _, err := l.SignAndSubmit(context.Background(), tx); err == nil {
		t.Fatalf("expected error for unsupported call")
	}
}

func TestLedger_WaitForFinality_UnknownDigest(t *testing.T) {
	l := NewLedger(newTestStore())

	err := l.WaitForFinality(context.Background(), "0xnope")
	if !errors.Is(err, ErrUnknownDigest) {
		t.Fatalf("expected ErrUnknownDigest, got %v", err)
	}
}

func TestLedger_QueryEvents_OrderAndFilter(t *testing.T) {
	l := NewLedger(newTestStore())
	ctx := context.Background()

	owners := []string{"0xaaa", "0xbbb", "0xccc"}
	for _, o := range owners {
		if _, err := l.SignAndSubmit(ctx, adoptTx(o, "pet-"+o)); err != nil {
			t.Fatalf("adoption for %s returned error: %v", o, err)
		}
	}

	events, err := l.QueryEvents(ctx, petCreatedType)
	if err != nil {
		t.Fatalf("QueryEvents returned error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	// Otro tipo: nada.
	other, err := l.QueryEvents(ctx, "0xpkg::smart_contract::Other")
	if err != nil {
		t.Fatalf("QueryEvents returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no events for other type, got %d", len(other))
	}
}
