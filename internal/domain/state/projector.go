package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pet-pomodoro/internal/config"
	"pet-pomodoro/internal/domain/contract"
	"pet-pomodoro/internal/platform/logger"
	"pet-pomodoro/internal/ports/ledger"
)

// Projector reconstruye el estado de ownership a partir del historial
// de eventos PetCreated del ledger.
type Projector struct {
	client ledger.Client
	net    config.Network
	log    logger.Logger
}

func NewProjector(client ledger.Client, net config.Network, log logger.Logger) *Projector {
	return &Projector{
		client: client,
		net:    net,
		log:    log,
	}
}

// Project trae el historial completo y lo pliega en orden de ledger.
// Sin dedup: duplicados en el log quedan duplicados en la proyección.
// Payloads malformados se validan y se saltean, nunca se castean a ciegas.
func (p *Projector) Project(ctx context.Context) (State, error) {
	events, err := p.client.QueryEvents(ctx, contract.PetCreatedEventType(p.net.PackageID))
	if err != nil {
		return State{}, fmt.Errorf("query adoption events: %w", err)
	}

	st := State{Users: make([]User, 0, len(events))}
	skipped := 0
	for _, ev := range events {
		var u User
		if err := json.Unmarshal(ev.ParsedJSON, &u); err != nil || strings.TrimSpace(u.Owner) == "" {
			skipped++
			continue
		}
		st.Users = append(st.Users, u)
	}
	if skipped > 0 {
		p.log.Warn("skipped adoption events with malformed payload", map[string]any{"skipped": skipped})
	}

	return st, nil
}

// PetOf resuelve si una dirección ya tiene mascota: primer match del
// scan lineal sobre la proyección. Ausencia = todavía no adoptó.
func (p *Projector) PetOf(ctx context.Context, owner string) (User, bool, error) {
	st, err := p.Project(ctx)
	if err != nil {
		return User{}, false, err
	}
	u, ok := st.FindUser(owner)
	return u, ok, nil
}
