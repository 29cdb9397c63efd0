package wallet

import "context"

// Verifier verifica una prueba de posesión de wallet y devuelve la sesión.
type Verifier interface {
	Verify(ctx context.Context, proof string) (Session, error)
}
