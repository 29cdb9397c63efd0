// Package contract fija los nombres del smart contract de adopción.
// Centralizado para que resolver y proyector no dupliquen strings.
package contract

const (
	MoveModule      = "smart_contract"
	FnAdoptPet      = "adopt_pet"
	EventPetCreated = "PetCreated"
)

// PetCreatedEventType arma el tag completo del evento de creación
// para un package concreto.
func PetCreatedEventType(packageID string) string {
	return packageID + "::" + MoveModule + "::" + EventPetCreated
}
