// Package local implementa el puerto ledger contra un contrato simulado,
// con la misma semántica observable que el contrato de testnet:
// una mascota por owner, PetCreated solo en adopciones exitosas, y
// transacciones que finalizan sin eventos cuando la adopción se rechaza.
// Sirve para desarrollo sin red y para los tests de integración.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"pet-pomodoro/internal/domain/contract"
	"pet-pomodoro/internal/ports/ledger"

	"github.com/google/uuid"
)

var (
	ErrUnknownDigest = errors.New("unknown transaction digest")
)

type Ledger struct {
	store Store

	// Serializa la ejecución de transacciones: el state handle del
	// contrato real también es un punto de contención único.
	mu  sync.Mutex
	now func() time.Time
}

func NewLedger(store Store) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
	}
}

// petCreatedPayload es el shape que emite el contrato en PetCreated.
type petCreatedPayload struct {
	Owner string `json:"owner"`
	Pet   string `json:"pet"`
}

func (l *Ledger) QueryEvents(ctx context.Context, eventType string) ([]ledger.Event, error) {
	records, err := l.store.ListEventsByType(ctx, eventType)
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Event, 0, len(records))
	for _, rec := range records {
		out = append(out, toEvent(rec))
	}
	return out, nil
}

// SignAndSubmit ejecuta la transacción de inmediato (finality instantánea).
func (l *Ledger) SignAndSubmit(ctx context.Context, tx ledger.Transaction) (ledger.SubmitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	digest := "0x" + uuid.NewString()
	now := l.now()

	if tx.Module != contract.MoveModule || tx.Function != contract.FnAdoptPet {
		return ledger.SubmitResult{}, fmt.Errorf("unsupported call: %s::%s", tx.Module, tx.Function)
	}
	if len(tx.Arguments) != 2 {
		return ledger.SubmitResult{}, errors.New("adopt_pet expects (name, state_handle)")
	}

	if tx.GasBudget == 0 {
		// Presupuesto insuficiente: la transacción finaliza fallida,
		// sin eventos. Ejercita el camino de rechazo no clasificable.
		if err := l.store.SaveTransaction(ctx, TxRecord{
			Digest:    digest,
			Status:    string(ledger.TxStatusFailure),
			Error:     "insufficient gas budget",
			Timestamp: now,
		}); err != nil {
			return ledger.SubmitResult{}, err
		}
		return ledger.SubmitResult{Digest: digest}, nil
	}

	owned, err := l.ownerHasPet(ctx, tx.Package, tx.Sender)
	if err != nil {
		return ledger.SubmitResult{}, err
	}
	if owned {
		// El contrato real no emite nada en este caso: la transacción
		// termina "success" pero sin PetCreated.
		if err := l.store.SaveTransaction(ctx, TxRecord{
			Digest:    digest,
			Status:    string(ledger.TxStatusSuccess),
			Timestamp: now,
		}); err != nil {
			return ledger.SubmitResult{}, err
		}
		return ledger.SubmitResult{Digest: digest}, nil
	}

	payload, _ := json.Marshal(petCreatedPayload{
		Owner: tx.Sender,
		Pet:   uuid.NewString(), // id del objeto mascota recién creado
	})

	if err := l.store.SaveTransaction(ctx, TxRecord{
		Digest:    digest,
		Status:    string(ledger.TxStatusSuccess),
		Timestamp: now,
	}); err != nil {
		return ledger.SubmitResult{}, err
	}
	if err := l.store.AppendEvent(ctx, EventRecord{
		ID:        uuid.NewString(),
		Type:      contract.PetCreatedEventType(tx.Package),
		TxDigest:  digest,
		Timestamp: now,
		Payload:   payload,
	}); err != nil {
		return ledger.SubmitResult{}, err
	}

	return ledger.SubmitResult{Digest: digest}, nil
}

// WaitForFinality: acá la finality es inmediata; solo validamos el digest.
func (l *Ledger) WaitForFinality(ctx context.Context, digest string) error {
	if _, err := l.store.GetTransaction(ctx, digest); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownDigest, digest)
	}
	return nil
}

func (l *Ledger) GetTransactionDetail(ctx context.Context, digest string, opts ledger.DetailOptions) (ledger.TransactionDetail, error) {
	tx, err := l.store.GetTransaction(ctx, digest)
	if err != nil {
		return ledger.TransactionDetail{}, fmt.Errorf("%w: %s", ErrUnknownDigest, digest)
	}

	detail := ledger.TransactionDetail{
		Digest: tx.Digest,
		Status: ledger.TxStatus(tx.Status),
		Error:  tx.Error,
	}

	if opts.ShowEvents {
		records, err := l.store.ListEventsByDigest(ctx, digest)
		if err != nil {
			return ledger.TransactionDetail{}, err
		}
		detail.Events = make([]ledger.Event, 0, len(records))
		for _, rec := range records {
			detail.Events = append(detail.Events, toEvent(rec))
		}
	}

	return detail, nil
}

func (l *Ledger) ownerHasPet(ctx context.Context, packageID, owner string) (bool, error) {
	records, err := l.store.ListEventsByType(ctx, contract.PetCreatedEventType(packageID))
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		var p petCreatedPayload
		if err := json.Unmarshal(rec.Payload, &p); err != nil {
			continue
		}
		if p.Owner == owner {
			return true, nil
		}
	}
	return false, nil
}

func toEvent(rec EventRecord) ledger.Event {
	return ledger.Event{
		ID:         rec.ID,
		Type:       rec.Type,
		TxDigest:   rec.TxDigest,
		Timestamp:  rec.Timestamp,
		ParsedJSON: rec.Payload,
	}
}
