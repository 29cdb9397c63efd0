package ledger

import "context"

// Client es el puerto de acceso al ledger remoto (lectura y escritura).
// Los adapters deciden el transporte; el dominio solo conoce este contrato.
type Client interface {
	// QueryEvents trae el historial completo de eventos de un tipo,
	// en el orden que define el ledger.
	QueryEvents(ctx context.Context, eventType string) ([]Event, error)

	// SignAndSubmit firma y envía una transacción. Resuelve con el digest
	// o falla (rechazo de wallet, error de red).
	SignAndSubmit(ctx context.Context, tx Transaction) (SubmitResult, error)

	// WaitForFinality bloquea hasta que el ledger confirma la transacción.
	// El caller acota la espera vía ctx.
	WaitForFinality(ctx context.Context, digest string) error

	// GetTransactionDetail trae el detalle de una transacción ya final,
	// incluyendo eventos/efectos según opts.
	GetTransactionDetail(ctx context.Context, digest string, opts DetailOptions) (TransactionDetail, error)
}
