package pomodoro

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrInvalidPreset = errors.New("invalid preset")
	ErrNoSession     = errors.New("no pomodoro running")
)

// Presets soportados, en minutos. Los mismos que ofrece la UI.
var presets = map[int]time.Duration{
	5:  5 * time.Minute,
	15: 15 * time.Minute,
	25: 25 * time.Minute,
}

// Status es el estado observable del temporizador de un owner.
type Status struct {
	Running          bool `json:"running"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

// Service mantiene un temporizador pomodoro por owner, en memoria.
// No hay persistencia: un restart descarta las sesiones (a propósito).
// El restante se deriva del deadline en cada consulta, sin ticker.
type Service struct {
	mu      sync.Mutex
	byOwner map[string]time.Time // owner -> deadline
	now     func() time.Time
}

func NewService() *Service {
	return &Service{
		byOwner: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Start arranca (o reinicia) el temporizador del owner con un preset.
func (s *Service) Start(owner string, minutes int) (Status, error) {
	d, ok := presets[minutes]
	if !ok {
		return Status{}, ErrInvalidPreset
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(d)
	s.byOwner[owner] = deadline
	return Status{Running: true, RemainingSeconds: int(d / time.Second)}, nil
}

// Stop descarta el temporizador del owner.
func (s *Service) Stop(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byOwner, owner)
}

// Get devuelve el estado actual. Un temporizador vencido se limpia
// y se reporta como detenido.
func (s *Service) Get(owner string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := s.byOwner[owner]
	if !ok {
		return Status{}, ErrNoSession
	}

	remaining := deadline.Sub(s.now())
	if remaining <= 0 {
		delete(s.byOwner, owner)
		return Status{Running: false, RemainingSeconds: 0}, nil
	}

	return Status{Running: true, RemainingSeconds: int(remaining / time.Second)}, nil
}
