// Package sui implementa el puerto ledger contra un fullnode Sui por
// JSON-RPC. La firma no vive acá: se delega al wallet bridge (la custodia
// de llaves queda fuera de este servicio).
package sui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-pomodoro/internal/adapters/wallet/bridge"
	"pet-pomodoro/internal/platform/httpclient"
	"pet-pomodoro/internal/ports/ledger"
)

var (
	ErrSignerNotConfigured = errors.New("sui: wallet bridge not configured")
	ErrRPC                 = errors.New("sui: rpc error")
)

const (
	defaultTimeout      = 15 * time.Second
	defaultPollInterval = 1 * time.Second
)

type Config struct {
	// RPCURL es el endpoint del fullnode (p.ej. testnet).
	RPCURL string

	Timeout      time.Duration
	PollInterval time.Duration
}

type Client struct {
	rpc    *httpclient.Client
	signer *bridge.Client

	pollInterval time.Duration
}

// NewClient arma el cliente JSON-RPC. signer puede ser nil: en ese caso
// SignAndSubmit falla con ErrSignerNotConfigured (lecturas siguen andando).
func NewClient(cfg Config, signer *bridge.Client) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rpc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.RPCURL), timeout)
	if err != nil {
		return nil, fmt.Errorf("sui: %w", err)
	}
	if rpc.BaseURL == "" {
		return nil, errors.New("sui: rpc url required")
	}

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	return &Client{
		rpc:          rpc,
		signer:       signer,
		pollInterval: poll,
	}, nil
}

// --- envelope JSON-RPC 2.0 ---

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcErr struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcErr         `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	req := rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}

	var resp rpcResponse
	if err := c.rpc.DoJSON(ctx, http.MethodPost, "/", nil, req, &resp); err != nil {
		return fmt.Errorf("sui: %s: %w", method, err)
	}
	if resp.Error != nil {
		return fmt.Errorf("%w: %s: code=%d %s", ErrRPC, method, resp.Error.Code, resp.Error.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("sui: %s: decode result: %w", method, err)
	}
	return nil
}

// --- shapes del fullnode ---

type rpcEvent struct {
	ID struct {
		TxDigest string `json:"txDigest"`
		EventSeq string `json:"eventSeq"`
	} `json:"id"`
	Type        string          `json:"type"`
	ParsedJSON  json.RawMessage `json:"parsedJson"`
	TimestampMs string          `json:"timestampMs"`
}

type queryEventsResult struct {
	Data []rpcEvent `json:"data"`
}

type txBlockResult struct {
	Digest  string     `json:"digest"`
	Events  []rpcEvent `json:"events"`
	Effects *struct {
		Status struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"status"`
	} `json:"effects"`
}

// QueryEvents trae el historial de un MoveEventType.
// Una sola página: el historial de este contrato entra en una respuesta.
func (c *Client) QueryEvents(ctx context.Context, eventType string) ([]ledger.Event, error) {
	var res queryEventsResult
	params := []any{
		map[string]any{"MoveEventType": eventType},
	}
	if err := c.call(ctx, "suix_queryEvents", params, &res); err != nil {
		return nil, err
	}

	out := make([]ledger.Event, 0, len(res.Data))
	for _, ev := range res.Data {
		out = append(out, toEvent(ev))
	}
	return out, nil
}

// SignAndSubmit delega firma y envío en el wallet bridge.
func (c *Client) SignAndSubmit(ctx context.Context, tx ledger.Transaction) (ledger.SubmitResult, error) {
	if c.signer == nil {
		return ledger.SubmitResult{}, ErrSignerNotConfigured
	}

	digest, err := c.signer.SignAndSubmit(ctx, map[string]any{
		"sender":     tx.Sender,
		"package":    tx.Package,
		"module":     tx.Module,
		"function":   tx.Function,
		"arguments":  tx.Arguments,
		"gas_budget": tx.GasBudget,
	})
	if err != nil {
		return ledger.SubmitResult{}, err
	}
	return ledger.SubmitResult{Digest: digest}, nil
}

// WaitForFinality sondea el fullnode hasta que la transacción aparece
// como ejecutada. El caller acota la espera vía ctx.
func (c *Client) WaitForFinality(ctx context.Context, digest string) error {
	for {
		var res txBlockResult
		err := c.call(ctx, "sui_getTransactionBlock", []any{digest, map[string]any{}}, &res)
		if err == nil && res.Digest != "" {
			return nil
		}
		if err != nil && !errors.Is(err, ErrRPC) {
			// Error de transporte, no "todavía no indexada".
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) GetTransactionDetail(ctx context.Context, digest string, opts ledger.DetailOptions) (ledger.TransactionDetail, error) {
	var res txBlockResult
	params := []any{
		digest,
		map[string]any{
			"showEvents":  opts.ShowEvents,
			"showEffects": opts.ShowEffects,
			"showInput":   opts.ShowInput,
		},
	}
	if err := c.call(ctx, "sui_getTransactionBlock", params, &res); err != nil {
		return ledger.TransactionDetail{}, err
	}

	detail := ledger.TransactionDetail{
		Digest: res.Digest,
		Status: ledger.TxStatusSuccess,
	}
	if res.Effects != nil {
		detail.Status = ledger.TxStatus(res.Effects.Status.Status)
		detail.Error = res.Effects.Status.Error
	}

	detail.Events = make([]ledger.Event, 0, len(res.Events))
	for _, ev := range res.Events {
		detail.Events = append(detail.Events, toEvent(ev))
	}
	return detail, nil
}

func toEvent(ev rpcEvent) ledger.Event {
	var ts time.Time
	if ms, err := strconv.ParseInt(ev.TimestampMs, 10, 64); err == nil {
		ts = time.UnixMilli(ms).UTC()
	}
	return ledger.Event{
		ID:         ev.ID.TxDigest + ":" + ev.ID.EventSeq,
		Type:       ev.Type,
		TxDigest:   ev.ID.TxDigest,
		Timestamp:  ts,
		ParsedJSON: ev.ParsedJSON,
	}
}
