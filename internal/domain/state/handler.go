package state

import (
	"encoding/json"
	"net/http"

	"pet-pomodoro/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, proj *Projector) {
	r.Get("/state", getStateHandler(proj))
	r.Get("/me/pet", getMyPetHandler(proj))
}

func getStateHandler(proj *Projector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := proj.Project(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func getMyPetHandler(proj *Projector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, ok, err := proj.PetOf(r.Context(), session.Address)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "no pet adopted yet", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, u)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
