package pomodoro

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-pomodoro/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/pomodoro", func(pr chi.Router) {
		pr.Post("/", startHandler(svc))
		pr.Get("/", getHandler(svc))
		pr.Delete("/", stopHandler(svc))
	})
}

type startRequest struct {
	Minutes int `json:"minutes"`
}

func startHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req startRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		st, err := svc.Start(session.Address, req.Minutes)
		if err != nil {
			http.Error(w, "minutes must be 5, 15 or 25", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, st)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st, err := svc.Get(session.Address)
		if err != nil {
			if errors.Is(err, ErrNoSession) {
				http.Error(w, "no pomodoro running", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, st)
	}
}

func stopHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		svc.Stop(session.Address)
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
