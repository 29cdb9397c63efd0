package wallet

// Session representa la sesión de wallet activa: la dirección conectada.
// Sin sesión no hay adopción; el middleware decide cómo se obtiene.
type Session struct {
	Address string
}
