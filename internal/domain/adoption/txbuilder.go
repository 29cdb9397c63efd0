package adoption

import (
	"errors"
	"strings"

	"pet-pomodoro/internal/config"
	"pet-pomodoro/internal/domain/contract"
	"pet-pomodoro/internal/ports/ledger"
)

var (
	ErrEmptyName = errors.New("pet name required")
)

// BuildAdoptTransaction construye el payload que invoca
// adopt_pet(name, state_handle) bajo el gas budget de la red.
// Pura respecto al estado local; el resolver loguea el payload construido.
func BuildAdoptTransaction(net config.Network, sender, name string) (ledger.Transaction, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ledger.Transaction{}, ErrEmptyName
	}

	return ledger.Transaction{
		Sender:    sender,
		Package:   net.PackageID,
		Module:    contract.MoveModule,
		Function:  contract.FnAdoptPet,
		Arguments: []string{name, net.StateID},
		GasBudget: net.GasBudget,
	}, nil
}
