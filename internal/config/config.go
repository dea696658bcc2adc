// Package config centralizes runtime configuration for the explorer
// service. It loads a JSON configuration file, overlays values from the
// environment, and exposes a process-wide configuration with sensible
// defaults. Tests and development builds will use defaults when the file
// is not present. Production operators should place a JSON file at
// /etc/nxp/config.json or specify a different path via the CONFIG_FILE
// env var.
package config

import (
	"encoding/json"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds configurable options for the explorer service. Every
// option shapes how external-facing links and requests are constructed;
// none of them change ledger or verification semantics.
type Config struct {
	Port             int    `json:"port" env:"PORT"`
	ChainRPCURL      string `json:"chain_rpc_url" env:"CHAIN_RPC_URL"`
	ChainID          int    `json:"chain_id" env:"CHAIN_ID"`
	ProviderAPIKey   string `json:"provider_api_key" env:"PROVIDER_API_KEY"`
	VerifierAppID    string `json:"verifier_app_id" env:"VERIFIER_APP_ID"`
	VerifyAction     string `json:"verify_action" env:"VERIFY_ACTION"`
	PublicBaseURL    string `json:"public_base_url" env:"PUBLIC_BASE_URL"`
	IPFSGateway      string `json:"ipfs_gateway" env:"IPFS_GATEWAY"`
	BlockExplorerURL string `json:"block_explorer_url" env:"BLOCK_EXPLORER_URL"`
	VaultDBFile      string `json:"vault_db_file" env:"VAULT_DB_FILE"`
	LogBufferSize    int    `json:"log_buffer_size" env:"LOG_BUFFER_SIZE"`
}

var cfg *Config

func defaults() *Config {
	return &Config{
		Port:             8080,
		ChainRPCURL:      "https://worldchain-mainnet.g.alchemy.com/v2",
		ChainID:          480,
		ProviderAPIKey:   "",
		VerifierAppID:    "app_staging_unset",
		VerifyAction:     "action_explorer_verify",
		PublicBaseURL:    "http://localhost:8080",
		IPFSGateway:      "https://gateway.pinata.cloud/ipfs/",
		BlockExplorerURL: "https://worldscan.org",
		VaultDBFile:      "vault.db",
		LogBufferSize:    200,
	}
}

// LoadConfig reads a JSON file at path and overlays environment
// variables on top. If the file does not exist or cannot be parsed,
// LoadConfig returns defaults (and no error) so that the application can
// run in development with minimal friction. Environment variables always
// win over file values.
func LoadConfig(path string) (*Config, error) {
	c := defaults()

	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			var fileCfg Config
			if err := json.Unmarshal(b, &fileCfg); err == nil {
				merge(c, &fileCfg)
			}
			// parse error -> keep defaults
		}
		// file missing or unreadable -> keep defaults
	}

	if err := env.Parse(c); err != nil {
		return nil, err
	}

	if c.Port <= 0 || c.Port > 65535 {
		c.Port = defaults().Port
	}
	if c.LogBufferSize <= 0 {
		c.LogBufferSize = defaults().LogBufferSize
	}

	cfg = c
	return cfg, nil
}

// merge copies non-zero fields from src onto dst.
func merge(dst, src *Config) {
	if src.Port != 0 {
		dst.Port = src.Port
	}
	if src.ChainRPCURL != "" {
		dst.ChainRPCURL = src.ChainRPCURL
	}
	if src.ChainID != 0 {
		dst.ChainID = src.ChainID
	}
	if src.ProviderAPIKey != "" {
		dst.ProviderAPIKey = src.ProviderAPIKey
	}
	if src.VerifierAppID != "" {
		dst.VerifierAppID = src.VerifierAppID
	}
	if src.VerifyAction != "" {
		dst.VerifyAction = src.VerifyAction
	}
	if src.PublicBaseURL != "" {
		dst.PublicBaseURL = src.PublicBaseURL
	}
	if src.IPFSGateway != "" {
		dst.IPFSGateway = src.IPFSGateway
	}
	if src.BlockExplorerURL != "" {
		dst.BlockExplorerURL = src.BlockExplorerURL
	}
	if src.VaultDBFile != "" {
		dst.VaultDBFile = src.VaultDBFile
	}
	if src.LogBufferSize != 0 {
		dst.LogBufferSize = src.LogBufferSize
	}
}

// Get returns the loaded configuration. If LoadConfig hasn't been called
// yet, it returns defaults.
func Get() *Config {
	if cfg == nil {
		LoadConfig("")
	}
	return cfg
}
