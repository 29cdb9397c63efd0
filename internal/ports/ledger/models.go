package ledger

import (
	"encoding/json"
	"time"
)

// Transaction es el payload de una invocación a un procedimiento on-chain.
// Opaco para el dominio: solo el adapter sabe cómo serializarlo/firmarlo.
type Transaction struct {
	Sender    string
	Package   string
	Module    string
	Function  string
	Arguments []string
	GasBudget uint64
}

// Event es un evento emitido por el ledger.
// ParsedJSON queda crudo a propósito: cada consumidor valida el shape
// que espera en vez de confiar en un cast.
type Event struct {
	ID         string
	Type       string
	TxDigest   string
	Timestamp  time.Time
	ParsedJSON json.RawMessage
}

// SubmitResult es lo que devuelve el ledger al aceptar una transacción.
type SubmitResult struct {
	Digest string
}

// DetailOptions controla qué secciones del detalle pide el caller.
type DetailOptions struct {
	ShowEvents  bool
	ShowEffects bool
	ShowInput   bool
}

// TxStatus es el estado de ejecución reportado por el ledger.
type TxStatus string

const (
	TxStatusSuccess TxStatus = "success"
	TxStatusFailure TxStatus = "failure"
)

// TransactionDetail es el detalle de una transacción ya final.
type TransactionDetail struct {
	Digest string
	Status TxStatus
	Error  string // mensaje del ledger cuando Status == failure
	Events []Event
}
