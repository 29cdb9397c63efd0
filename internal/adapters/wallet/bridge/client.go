package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrBridgeNotConfigured = errors.New("wallet bridge not configured")
	ErrBridgeUnauthorized  = errors.New("wallet bridge unauthorized")
	ErrBridgeUpstream      = errors.New("wallet bridge upstream error")
)

// Config del cliente del wallet bridge (el servicio externo que custodia
// llaves: verifica pruebas de sesión y firma transacciones).
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key.
	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != ""
}

// VerifySession valida una prueba de posesión de wallet y devuelve la
// dirección asociada.
// ⚠️ Endpoint/payload: placeholder estable mientras el bridge no publique
// su contrato definitivo.
func (c *Client) VerifySession(ctx context.Context, proof string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrBridgeNotConfigured
	}
	proof = strings.TrimSpace(proof)
	if proof == "" {
		return "", ErrBridgeUnauthorized
	}

	// TODO(bridge): ajustar path cuando exista contrato real.
	const verifyPath = "/v1/sessions/verify"

	reqBody := map[string]string{
		"proof": proof,
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+verifyPath, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBridgeUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBridgeUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// ok
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrBridgeUnauthorized
	default:
		return "", fmt.Errorf("%w: status=%d", ErrBridgeUpstream, resp.StatusCode)
	}

	var out struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: invalid json: %v", ErrBridgeUpstream, err)
	}

	out.Address = strings.TrimSpace(out.Address)
	if out.Address == "" {
		return "", errors.New("bridge response missing address")
	}

	return out.Address, nil
}

// SignAndSubmit manda el payload al bridge para que lo firme con la llave
// del sender y lo envíe al ledger. Devuelve el digest.
// ⚠️ Endpoint/payload: placeholder estable, igual que VerifySession.
func (c *Client) SignAndSubmit(ctx context.Context, payload any) (string, error) {
	if !c.IsConfigured() {
		return "", ErrBridgeNotConfigured
	}

	// TODO(bridge): ajustar path cuando exista contrato real.
	const submitPath = "/v1/transactions/sign-and-submit"

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal payload: %v", ErrBridgeUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submitPath, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBridgeUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBridgeUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// ok
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrBridgeUnauthorized
	default:
		return "", fmt.Errorf("%w: status=%d", ErrBridgeUpstream, resp.StatusCode)
	}

	var out struct {
		Digest string `json:"digest"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: invalid json: %v", ErrBridgeUpstream, err)
	}

	return strings.TrimSpace(out.Digest), nil
}
