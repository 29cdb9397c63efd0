package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-pomodoro/internal/ports/wallet"
)

var (
	ErrProofEmpty = errors.New("proof is empty")
)

// Verifier implementa wallet.Verifier usando el bridge.
// Se instancia desde main/router cuando hay bridge configurado.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, proof string) (wallet.Session, error) {
	if v == nil || v.client == nil {
		return wallet.Session{}, ErrBridgeNotConfigured
	}
	proof = strings.TrimSpace(proof)
	if proof == "" {
		return wallet.Session{}, ErrProofEmpty
	}

	addr, err := v.client.VerifySession(ctx, proof)
	if err != nil {
		return wallet.Session{}, fmt.Errorf("bridge verify failed: %w", err)
	}

	return wallet.Session{Address: addr}, nil
}
