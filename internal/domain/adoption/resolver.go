package adoption

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-pomodoro/internal/config"
	"pet-pomodoro/internal/domain/contract"
	"pet-pomodoro/internal/platform/logger"
	"pet-pomodoro/internal/ports/ledger"
	"pet-pomodoro/internal/ports/wallet"
)

var (
	// ErrAdoptionInFlight: ya hay un intento en curso en este resolver.
	// Exclusión explícita, no solo un botón deshabilitado en la UI.
	ErrAdoptionInFlight = errors.New("adoption already in flight")
)

// Resolver orquesta el flujo completo de adopción:
// build -> sign+submit -> wait finality -> fetch detail -> classify.
// Un intento visible por llamada; sin retries.
type Resolver struct {
	client ledger.Client
	net    config.Network
	log    logger.Logger

	finalityTimeout time.Duration

	sem chan struct{} // exclusión mutua del flujo
}

// Option configura el resolver.
type Option func(*Resolver)

// WithFinalityTimeout acota la espera de finality.
func WithFinalityTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.finalityTimeout = d
		}
	}
}

const defaultFinalityTimeout = 60 * time.Second

func NewResolver(client ledger.Client, net config.Network, log logger.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		client:          client,
		net:             net,
		log:             log,
		finalityTimeout: defaultFinalityTimeout,
		sem:             make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Adopt ejecuta un intento de adopción para la sesión dada.
// Devuelve siempre un Outcome tipado; el único error posible es
// ErrAdoptionInFlight cuando otro intento sigue en curso.
func (r *Resolver) Adopt(ctx context.Context, session wallet.Session, name string) (Outcome, error) {
	select {
	case r.sem <- struct{}{}:
	default:
		return Outcome{}, ErrAdoptionInFlight
	}
	// El flag se libera en todo camino de salida.
	defer func() { <-r.sem }()

	// Precondiciones: nombre no vacío y sesión de wallet activa.
	// Ninguna llamada al ledger antes de validar.
	name = strings.TrimSpace(name)
	if name == "" {
		return Outcome{Kind: OutcomeValidationError, Reason: "pet name required"}, nil
	}
	if strings.TrimSpace(session.Address) == "" {
		return Outcome{Kind: OutcomeValidationError, Reason: "wallet session required"}, nil
	}

	tx, err := BuildAdoptTransaction(r.net, session.Address, name)
	if err != nil {
		return Outcome{Kind: OutcomeValidationError, Reason: err.Error()}, nil
	}
	r.log.Debug("adopt transaction built", map[string]any{
		"sender":     tx.Sender,
		"package":    tx.Package,
		"module":     tx.Module,
		"function":   tx.Function,
		"arguments":  tx.Arguments,
		"gas_budget": tx.GasBudget,
	})

	res, err := r.client.SignAndSubmit(ctx, tx)
	if err != nil {
		r.log.Error("adopt submit failed", map[string]any{"error": err.Error()})
		return Outcome{Kind: OutcomeSubmissionError, Reason: "sign and submit failed"}, nil
	}

	if strings.TrimSpace(res.Digest) == "" {
		// Submit "exitoso" sin digest no tiene outcome verificable.
		// El flujo original lo trataba como éxito silencioso; acá falla.
		r.log.Error("adopt submit returned no digest", nil)
		return Outcome{Kind: OutcomeUnexpectedError, Reason: "submission returned no digest"}, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, r.finalityTimeout)
	defer cancel()
	if err := r.client.WaitForFinality(waitCtx, res.Digest); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			r.log.Error("adopt finality timeout", map[string]any{"digest": res.Digest})
			return Outcome{Kind: OutcomeFinalityTimeout, Digest: res.Digest, Reason: "finality wait expired"}, nil
		}
		r.log.Error("adopt wait for finality failed", map[string]any{"digest": res.Digest, "error": err.Error()})
		return Outcome{Kind: OutcomeUnexpectedError, Digest: res.Digest, Reason: "wait for finality failed"}, nil
	}

	detail, err := r.client.GetTransactionDetail(ctx, res.Digest, ledger.DetailOptions{
		ShowEvents:  true,
		ShowEffects: true,
		ShowInput:   true,
	})
	if err != nil {
		r.log.Error("adopt fetch detail failed", map[string]any{"digest": res.Digest, "error": err.Error()})
		return Outcome{Kind: OutcomeUnexpectedError, Digest: res.Digest, Reason: "fetch transaction detail failed"}, nil
	}

	return r.classify(name, res.Digest, detail), nil
}

func (r *Resolver) classify(name, digest string, detail ledger.TransactionDetail) Outcome {
	if detail.Status == ledger.TxStatusFailure {
		r.log.Warn("adopt transaction failed on-chain", map[string]any{"digest": digest, "ledger_error": detail.Error})
		return Outcome{Kind: OutcomeUnknownRejection, Digest: digest, Reason: detail.Error}
	}

	want := contract.PetCreatedEventType(r.net.PackageID)
	for _, ev := range detail.Events {
		if ev.Type == want {
			return Outcome{Kind: OutcomeSuccess, PetName: name, Digest: digest}
		}
	}

	// Sin evento de creación tras una transacción exitosa: con el contrato
	// actual, el owner ya tiene mascota.
	return Outcome{Kind: OutcomeRejected, Digest: digest, Reason: "account already owns a pet"}
}
