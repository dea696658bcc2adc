// Package main is the entry point for the NFT explorer service. It
// wires the mint vault, the chain data provider, the World ID session,
// and the web dashboard together.
package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/draxxycodes/NFT/internal/chain"
	"github.com/draxxycodes/NFT/internal/config"
	"github.com/draxxycodes/NFT/internal/logger"
	"github.com/draxxycodes/NFT/internal/vault"
	"github.com/draxxycodes/NFT/internal/web"
	"github.com/draxxycodes/NFT/internal/worldid"
)

func main() {
	log.Println("NFT explorer starting...")

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogBufferSize)

	// Initialize the mint ledger. A broken database degrades to
	// memory-only instead of failing startup.
	store := vault.NewStore(cfg.VaultDBFile, l)
	if store.Persistent() {
		log.Println("Vault store initialized")
	} else {
		log.Println("Vault store running memory-only")
	}

	provider := chain.NewClient(cfg.ChainRPCURL, cfg.ProviderAPIKey, cfg.IPFSGateway)
	if provider.Configured() {
		log.Println("Chain provider client initialized")
	} else {
		log.Println("No provider API key set, serving demo catalog")
	}

	verifier := worldid.NewCloudVerifier(cfg.VerifierAppID)
	session := worldid.NewSession(
		worldid.StaticCapability(cfg.VerifierAppID != ""),
		worldid.NoProver{},
		verifier,
	)

	if err := ensurePortAvailable(cfg.Port); err != nil {
		log.Fatalf("Port %d unavailable: %v", cfg.Port, err)
	}

	server, err := web.NewServer(cfg, store, provider, session, verifier, l)
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}

	serverErrors := server.Start()
	go func() {
		if err := <-serverErrors; err != nil {
			log.Fatalf("Web server exited: %v", err)
		}
	}()
	log.Printf("Dashboard available at http://localhost:%d", cfg.Port)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	if err := store.Close(); err != nil {
		log.Printf("Warning: closing vault store: %v", err)
	}
}

func ensurePortAvailable(port int) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return listener.Close()
}
