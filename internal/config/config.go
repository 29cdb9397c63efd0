// Package config concentra la configuración del proceso: se construye una
// vez en el arranque y es de solo lectura después (nada de singletons
// mutables a nivel paquete).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LedgerMode elige el backend del puerto ledger.
type LedgerMode string

const (
	LedgerModeLocal LedgerMode = "local"
	LedgerModeSui   LedgerMode = "sui"
)

// Network agrupa las constantes de una red soportada.
type Network struct {
	RPCURL    string `yaml:"rpc_url"`
	PackageID string `yaml:"package_id"`
	StateID   string `yaml:"state_id"`
	GasBudget uint64 `yaml:"gas_budget"`
}

// Config es la configuración completa del servicio.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`

	// ActiveNetwork selecciona una entrada de Networks en el arranque.
	ActiveNetwork string             `yaml:"active_network"`
	Networks      map[string]Network `yaml:"networks"`

	LedgerMode LedgerMode `yaml:"ledger_mode"`
	DBDSN      string     `yaml:"db_dsn"`

	FinalityTimeout time.Duration `yaml:"finality_timeout"`

	WalletBridgeURL    string `yaml:"wallet_bridge_url"`
	WalletBridgeAPIKey string `yaml:"wallet_bridge_api_key"`
}

const (
	// Constantes de testnet del contrato desplegado.
	testnetRPCURL    = "https://fullnode.testnet.sui.io:443"
	testnetPackageID = "0xd5ae24118c6577399944de61232daeae95509725a42e2434ac0e64d4c760e3bd"
	testnetStateID   = "0xa861fe43f96a1b82265fa3c04d51a548001c331c3d2b5c32b44572ae9ceb79c3"

	defaultGasBudget       = 10_000_000
	defaultFinalityTimeout = 60 * time.Second
)

// Load arma la config con defaults, luego un YAML opcional (CONFIG_PATH)
// y al final overrides por env.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      ":8080",
		ActiveNetwork: "testnet",
		Networks: map[string]Network{
			"testnet": {
				RPCURL:    testnetRPCURL,
				PackageID: testnetPackageID,
				StateID:   testnetStateID,
				GasBudget: defaultGasBudget,
			},
		},
		LedgerMode:      LedgerModeLocal,
		FinalityTimeout: defaultFinalityTimeout,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTPAddr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("NETWORK")); v != "" {
		cfg.ActiveNetwork = v
	}
	if v := strings.TrimSpace(os.Getenv("LEDGER_MODE")); v != "" {
		cfg.LedgerMode = LedgerMode(strings.ToLower(v))
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("FINALITY_TIMEOUT_S")); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("invalid FINALITY_TIMEOUT_S: %q", v)
		}
		cfg.FinalityTimeout = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("WALLET_BRIDGE_URL"); v != "" {
		cfg.WalletBridgeURL = v
	}
	if v := os.Getenv("WALLET_BRIDGE_API_KEY"); v != "" {
		cfg.WalletBridgeAPIKey = v
	}

	switch cfg.LedgerMode {
	case LedgerModeLocal, LedgerModeSui:
	default:
		return Config{}, fmt.Errorf("unknown ledger mode: %q", cfg.LedgerMode)
	}

	if _, err := cfg.Active(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Active devuelve la red seleccionada.
func (c Config) Active() (Network, error) {
	n, ok := c.Networks[c.ActiveNetwork]
	if !ok {
		return Network{}, fmt.Errorf("network %q not configured", c.ActiveNetwork)
	}
	if strings.TrimSpace(n.PackageID) == "" || strings.TrimSpace(n.StateID) == "" {
		return Network{}, errors.New("network config incomplete: package_id/state_id required")
	}
	if n.GasBudget == 0 {
		n.GasBudget = defaultGasBudget
	}
	return n, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
