package adoption

// OutcomeKind clasifica el resultado de un intento de adopción.
// Resultado tipado en vez de alert + string: los callers deciden
// qué mensaje mostrar y los tests asertan sobre el kind.
type OutcomeKind string

const (
	OutcomeSuccess         OutcomeKind = "success"
	OutcomeValidationError OutcomeKind = "validation_error"
	OutcomeSubmissionError OutcomeKind = "submission_error"

	// OutcomeRejected: la transacción terminó bien pero sin evento de
	// creación. Con el contrato actual eso significa que el owner ya
	// tiene mascota.
	OutcomeRejected OutcomeKind = "rejected"

	// OutcomeUnknownRejection: el ledger reportó la transacción como
	// fallida (budget insuficiente, contención del state handle, etc.).
	// No lo mezclamos con OutcomeRejected.
	OutcomeUnknownRejection OutcomeKind = "unknown_rejection"

	OutcomeFinalityTimeout OutcomeKind = "finality_timeout"
	OutcomeUnexpectedError OutcomeKind = "unexpected_error"
)

// Outcome es el resultado de un intento de adopción.
type Outcome struct {
	Kind OutcomeKind

	// PetName viene seteado solo en success.
	PetName string

	// Digest viene seteado cuando hubo submit.
	Digest string

	// Reason es un detalle corto, apto para logs y respuesta.
	Reason string
}
