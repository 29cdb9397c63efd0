package adoption

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-pomodoro/internal/config"
	"pet-pomodoro/internal/platform/logger"
	"pet-pomodoro/internal/ports/ledger"
	"pet-pomodoro/internal/ports/wallet"
)

// -------------------------
// Fake ledger (scriptable)
// -------------------------

type fakeLedger struct {
	submitDigest string
	submitErr    error

	finalityErr   error
	blockFinality bool // WaitForFinality espera al ctx (test de timeout)

	detail    ledger.TransactionDetail
	detailErr error

	// sincronización para el test de exclusión mutua
	started chan struct{}
	release chan struct{}

	queryCalls  int
	submitCalls int
	waitCalls   int
	detailCalls int
}

func (f *fakeLedger) QueryEvents(ctx context.Context, eventType string) ([]ledger.Event, error) {
	f.queryCalls++
	return nil, nil
}

func (f *fakeLedger) SignAndSubmit(ctx context.Context, tx ledger.Transaction) (ledger.SubmitResult, error) {
	f.submitCalls++
	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.release != nil {
		<-f.release
	}
	if f.submitErr != nil {
		return ledger.SubmitResult{}, f.submitErr
	}
	return ledger.SubmitResult{Digest: f.submitDigest}, nil
}

func (f *fakeLedger) WaitForFinality(ctx context.Context, digest string) error {
	f.waitCalls++
	if f.blockFinality {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.finalityErr
}

func (f *fakeLedger) GetTransactionDetail(ctx context.Context, digest string, opts ledger.DetailOptions) (ledger.TransactionDetail, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return ledger.TransactionDetail{}, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeLedger) ledgerCalls() int {
	return f.queryCalls + f.submitCalls + f.waitCalls + f.detailCalls
}

// -------------------------
// Helpers
// -------------------------

func testNet() config.Network {
	return config.Network{
		RPCURL:    "http://localhost:9000",
		PackageID: "0xpkg",
		StateID:   "0xstate",
		GasBudget: 10_000_000,
	}
}

func successDetail(digest string) ledger.TransactionDetail {
	return ledger.TransactionDetail{
		Digest: digest,
		Status: ledger.TxStatusSuccess,
		Events: []ledger.Event{
			{
				Type:       "0xpkg::smart_contract::PetCreated",
				TxDigest:   digest,
				ParsedJSON: []byte(`{"owner":"0x123","pet":"小花"}`),
			},
		},
	}
}

func newTestResolver(f *fakeLedger, opts ...Option) *Resolver {
	return NewResolver(f, testNet(), logger.Nop(), opts...)
}

var testSession = wallet.Session{Address: "0x123"}

// -------------------------
// Tests
// -------------------------

func TestResolver_Adopt_EmptyName_NoLedgerCalls(t *testing.T) {
	f := &fakeLedger{}
	r := newTestResolver(f)

	for _, name := range []string{"", "   ", "\t\n"} {
		out, err := r.Adopt(context.Background(), testSession, name)
		if err != nil {
			t.Fatalf("Adopt(%q) returned error: %v", name, err)
		}
		if out.Kind != OutcomeValidationError {
			t.Fatalf("Adopt(%q): expected validation_error, got %s", name, out.Kind)
		}
	}

	if f.ledgerCalls() != 0 {
		t.Fatalf("expected zero ledger calls, got %d", f.ledgerCalls())
	}
}

func TestResolver_Adopt_NoWalletSession_NoLedgerCalls(t *testing.T) {
	f := &fakeLedger{}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), wallet.Session{}, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeValidationError {
		t.Fatalf("expected validation_error, got %s", out.Kind)
	}
	if f.ledgerCalls() != 0 {
		t.Fatalf("expected zero ledger calls, got %d", f.ledgerCalls())
	}
}

func TestResolver_Adopt_Success(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		detail:       successDetail("0xabc"),
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "小花")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeSuccess {
		t.Fatalf("expected success, got %s (%s)", out.Kind, out.Reason)
	}
	if out.PetName != "小花" {
		t.Fatalf("expected pet name 小花, got %q", out.PetName)
	}
	if out.Digest != "0xabc" {
		t.Fatalf("expected digest 0xabc, got %q", out.Digest)
	}
	if f.waitCalls != 1 || f.detailCalls != 1 {
		t.Fatalf("expected 1 wait + 1 detail, got %d/%d", f.waitCalls, f.detailCalls)
	}
}

func TestResolver_Adopt_TrimsName(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		detail:       successDetail("0xabc"),
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "  Pumpkin  ")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.PetName != "Pumpkin" {
		t.Fatalf("expected trimmed name, got %q", out.PetName)
	}
}

func TestResolver_Adopt_NoEvents_Rejected(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		detail: ledger.TransactionDetail{
			Digest: "0xabc",
			Status: ledger.TxStatusSuccess,
		},
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeRejected {
		t.Fatalf("expected rejected, got %s", out.Kind)
	}
}

func TestResolver_Adopt_NoMatchingEvent_Rejected(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		detail: ledger.TransactionDetail{
			Digest: "0xabc",
			Status: ledger.TxStatusSuccess,
			Events: []ledger.Event{
				{Type: "0xpkg::smart_contract::SomethingElse"},
			},
		},
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeRejected {
		t.Fatalf("expected rejected, got %s", out.Kind)
	}
}

func TestResolver_Adopt_SubmitError_ThenRetryAllowed(t *testing.T) {
	f := &fakeLedger{
		submitErr: errors.New("wallet declined"),
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeSubmissionError {
		t.Fatalf("expected submission_error, got %s", out.Kind)
	}
	if f.waitCalls != 0 || f.detailCalls != 0 {
		t.Fatalf("submission error must end the flow, got wait=%d detail=%d", f.waitCalls, f.detailCalls)
	}

	// El flag quedó liberado: un intento válido posterior procede.
	f.submitErr = nil
	f.submitDigest = "0xabc"
	f.detail = successDetail("0xabc")

	out, err = r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if out.Kind != OutcomeSuccess {
		t.Fatalf("expected success on retry, got %s", out.Kind)
	}
}

func TestResolver_Adopt_MissingDigest_Unexpected(t *testing.T) {
	f := &fakeLedger{submitDigest: ""}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeUnexpectedError {
		t.Fatalf("expected unexpected_error, got %s", out.Kind)
	}
	if f.waitCalls != 0 {
		t.Fatalf("must not wait for finality without digest")
	}
}

func TestResolver_Adopt_FailedStatus_UnknownRejection(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		detail: ledger.TransactionDetail{
			Digest: "0xabc",
			Status: ledger.TxStatusFailure,
			Error:  "insufficient gas budget",
		},
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeUnknownRejection {
		t.Fatalf("expected unknown_rejection, got %s", out.Kind)
	}
	if out.Reason != "insufficient gas budget" {
		t.Fatalf("expected ledger error as reason, got %q", out.Reason)
	}
}

func TestResolver_Adopt_FinalityTimeout(t *testing.T) {
	f := &fakeLedger{
		submitDigest:  "0xabc",
		blockFinality: true,
	}
	r := newTestResolver(f, WithFinalityTimeout(20*time.Millisecond))

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeFinalityTimeout {
		t.Fatalf("expected finality_timeout, got %s", out.Kind)
	}
	if f.detailCalls != 0 {
		t.Fatalf("must not fetch detail after timeout")
	}
}

func TestResolver_Adopt_FinalityError_Unexpected(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		finalityErr:  errors.New("node unreachable"),
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeUnexpectedError {
		t.Fatalf("expected unexpected_error, got %s", out.Kind)
	}
}

func TestResolver_Adopt_DetailError_Unexpected(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		detailErr:    errors.New("malformed response"),
	}
	r := newTestResolver(f)

	out, err := r.Adopt(context.Background(), testSession, "Pumpkin")
	if err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if out.Kind != OutcomeUnexpectedError {
		t.Fatalf("expected unexpected_error, got %s", out.Kind)
	}
}

func TestResolver_Adopt_SecondAttemptInFlight_Rejected(t *testing.T) {
	f := &fakeLedger{
		submitDigest: "0xabc",
		detail:       successDetail("0xabc"),
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	r := newTestResolver(f)

	started := f.started
	done := make(chan Outcome, 1)
	go func() {
		out, _ := r.Adopt(context.Background(), testSession, "Pumpkin")
		done <- out
	}()

	// Espera a que el primer intento esté dentro del submit.
	<-started

	if _, err := r.Adopt(context.Background(), testSession, "Other"); !errors.Is(err, ErrAdoptionInFlight) {
		t.Fatalf("expected ErrAdoptionInFlight, got %v", err)
	}
	if f.submitCalls != 1 {
		t.Fatalf("second attempt must not reach the ledger, got %d submits", f.submitCalls)
	}

	close(f.release)
	out := <-done
	if out.Kind != OutcomeSuccess {
		t.Fatalf("first attempt should still succeed, got %s", out.Kind)
	}

	// Y con el flujo terminado, se puede volver a intentar.
	f.release = nil
	if _, err := r.Adopt(context.Background(), testSession, "Again"); err != nil {
		t.Fatalf("expected flag released after completion: %v", err)
	}
}
