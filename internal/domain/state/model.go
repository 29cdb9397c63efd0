package state

// Pet es el objeto on-chain tal como lo crea el contrato.
// El cliente solo lo observa; nunca construye uno con id real.
type Pet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
	HP    int    `json:"hp"`
	Level int    `json:"level"`
}

// User es el registro de ownership con el shape canónico del event log:
// pet viaja como identificador crudo, no como objeto anidado.
type User struct {
	Owner string `json:"owner"`
	Pet   string `json:"pet"`
}

// State es la proyección completa del historial de adopciones,
// reconstruida desde cero en cada consulta.
type State struct {
	Users []User `json:"users"`
}

// FindUser devuelve el primer registro cuyo owner coincide.
// Ante duplicados en el log gana el primero, determinísticamente.
func (s State) FindUser(owner string) (User, bool) {
	for _, u := range s.Users {
		if u.Owner == owner {
			return u, true
		}
	}
	return User{}, false
}
