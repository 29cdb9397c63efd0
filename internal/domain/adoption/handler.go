package adoption

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-pomodoro/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, resolver *Resolver) {
	r.Post("/adoptions", adoptHandler(resolver))
}

type adoptRequest struct {
	Name string `json:"name"`
}

type adoptResponse struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message"`
	PetName string      `json:"pet_name,omitempty"`
	Digest  string      `json:"digest,omitempty"`
}

// adoptHandler mapea cada OutcomeKind a un status y mensaje distintos,
// como los alerts de la UI original pero diferenciables por el caller.
func adoptHandler(resolver *Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.GetSession(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, adoptResponse{
				Kind:    OutcomeValidationError,
				Message: "connect a wallet first",
			})
			return
		}

		var req adoptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		outcome, err := resolver.Adopt(r.Context(), session, req.Name)
		if err != nil {
			if errors.Is(err, ErrAdoptionInFlight) {
				writeJSON(w, http.StatusConflict, adoptResponse{
					Kind:    OutcomeValidationError,
					Message: "an adoption is already in progress",
				})
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, statusFor(outcome.Kind), toAdoptResponse(outcome))
	}
}

func statusFor(kind OutcomeKind) int {
	switch kind {
	case OutcomeSuccess:
		return http.StatusOK
	case OutcomeValidationError:
		return http.StatusBadRequest
	case OutcomeRejected:
		return http.StatusConflict
	case OutcomeSubmissionError, OutcomeUnknownRejection:
		return http.StatusBadGateway
	case OutcomeFinalityTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func toAdoptResponse(o Outcome) adoptResponse {
	resp := adoptResponse{
		Kind:    o.Kind,
		PetName: o.PetName,
		Digest:  o.Digest,
	}

	switch o.Kind {
	case OutcomeSuccess:
		resp.Message = "congratulations, you adopted " + o.PetName
	case OutcomeValidationError:
		resp.Message = o.Reason
	case OutcomeRejected:
		resp.Message = "you already own a pet"
	case OutcomeUnknownRejection:
		resp.Message = "the adoption transaction failed on-chain"
	case OutcomeFinalityTimeout:
		resp.Message = "the ledger did not confirm in time"
	default:
		resp.Message = "adoption failed, please try again later"
	}

	return resp
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
