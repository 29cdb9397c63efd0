package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-pomodoro/internal/ports/wallet"
)

type ctxKey string

const sessionKey ctxKey = "wallet-session"

// WalletContext:
// - Si verifier != nil y viene Bearer proof => intenta Verify() y setea la sesión.
// - Si verifier == nil => modo dev: el header X-Wallet-Address setea la sesión.
// - Sin sesión el request sigue igual; los handlers deciden si exigen wallet.
func WalletContext(verifier wallet.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Dev mode: permitir inyectar la dirección sin verifier
			if verifier == nil {
				if addr := strings.TrimSpace(r.Header.Get("X-Wallet-Address")); addr != "" {
					session := wallet.Session{Address: addr}
					ctx := context.WithValue(r.Context(), sessionKey, session)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			// Verifier mode
			proof := bearerToken(r.Header.Get("Authorization"))
			if proof == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := verifier.Verify(r.Context(), proof)
			if err != nil {
				// No cortamos aquí para no acoplar. El handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (wallet.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return wallet.Session{}, false
	}
	s, ok := v.(wallet.Session)
	return s, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
