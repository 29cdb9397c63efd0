package router

import (
	"fmt"
	"net/http"

	"pet-pomodoro/internal/adapters/ledger/local"
	"pet-pomodoro/internal/adapters/ledger/sui"
	mem "pet-pomodoro/internal/adapters/storage/memory"
	pg "pet-pomodoro/internal/adapters/storage/postgres"
	"pet-pomodoro/internal/adapters/wallet/bridge"
	"pet-pomodoro/internal/config"
	"pet-pomodoro/internal/domain/adoption"
	"pet-pomodoro/internal/domain/pomodoro"
	"pet-pomodoro/internal/domain/state"
	"pet-pomodoro/internal/middleware"
	"pet-pomodoro/internal/platform/logger"
	"pet-pomodoro/internal/ports/ledger"
	"pet-pomodoro/internal/ports/wallet"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger

	// WalletVerifier puede ser nil (modo dev: X-Wallet-Address).
	WalletVerifier wallet.Verifier

	// Ledger opcional: si viene, se usa tal cual (tests). Si no, se
	// resuelve según Config.LedgerMode.
	Ledger ledger.Client
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	net, err := cfg.Active()
	if err != nil {
		return nil, err
	}

	client := opts.Ledger
	if client == nil {
		client, err = buildLedger(cfg, log)
		if err != nil {
			return nil, err
		}
	}

	verifier := opts.WalletVerifier
	if verifier == nil && cfg.WalletBridgeURL != "" {
		verifier = bridge.NewVerifier(bridge.NewClient(bridge.Config{
			BaseURL: cfg.WalletBridgeURL,
			APIKey:  cfg.WalletBridgeAPIKey,
		}))
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.WalletContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Services por módulo
	resolver := adoption.NewResolver(client, net, log,
		adoption.WithFinalityTimeout(cfg.FinalityTimeout))
	projector := state.NewProjector(client, net, log)
	pomoSvc := pomodoro.NewService()

	// Rutas por módulo
	adoption.RegisterRoutes(r, resolver)
	state.RegisterRoutes(r, projector)
	pomodoro.RegisterRoutes(r, pomoSvc)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r, nil
}

func buildLedger(cfg config.Config, log logger.Logger) (ledger.Client, error) {
	switch cfg.LedgerMode {
	case config.LedgerModeSui:
		net, err := cfg.Active()
		if err != nil {
			return nil, err
		}
		var signer *bridge.Client
		if cfg.WalletBridgeURL != "" {
			signer = bridge.NewClient(bridge.Config{
				BaseURL: cfg.WalletBridgeURL,
				APIKey:  cfg.WalletBridgeAPIKey,
			})
		}
		return sui.NewClient(sui.Config{RPCURL: net.RPCURL}, signer)

	case config.LedgerModeLocal:
		var store local.Store = mem.NewLedgerStore()
		if cfg.DBDSN != "" {
			db, err := pg.Open(cfg.DBDSN)
			if err != nil {
				return nil, fmt.Errorf("open ledger db: %w", err)
			}
			store = pg.NewLedgerStore(db)
		}
		log.Info("using local simulated ledger", map[string]any{
			"persistent": cfg.DBDSN != "",
		})
		return local.NewLedger(store), nil

	default:
		return nil, fmt.Errorf("unknown ledger mode: %q", cfg.LedgerMode)
	}
}
