// Package api implements the JSON HTTP API: health and nonce helpers,
// the NFT and collection read proxy, World ID verification, and the
// mint vault endpoints. Handlers carry doc annotations consumed by the
// docgen tool.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/draxxycodes/NFT/internal/logger"
	"github.com/draxxycodes/NFT/internal/types"
	"github.com/draxxycodes/NFT/internal/vault"
	"github.com/draxxycodes/NFT/internal/worldid"
)

// ChainProvider defines the interface for the upstream NFT data
// provider.
type ChainProvider interface {
	NFTsByOwner(ctx context.Context, owner string) ([]types.NFT, error)
	NFTMetadata(ctx context.Context, contract, tokenID string) (*types.NFT, error)
	NFTsByCollection(ctx context.Context, contract string) ([]types.NFT, error)
	CollectionInfo(ctx context.Context, contract string) (*types.Collection, error)
	TrendingCollections() []types.Collection
}

// Service handles API requests
type Service struct {
	vault    *vault.Store
	chain    ChainProvider
	session  *worldid.Session
	verifier worldid.Verifier
	action   string
	logger   *logger.Logger
}

// NewService creates a new API service. action is the configured
// incognito action id that verification requests must match.
func NewService(store *vault.Store, chain ChainProvider, session *worldid.Session, verifier worldid.Verifier, action string, logger *logger.Logger) *Service {
	return &Service{
		vault:    store,
		chain:    chain,
		session:  session,
		verifier: verifier,
		action:   action,
		logger:   logger,
	}
}

// writeJSON writes a JSON response
func (s *Service) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response with a stable machine code
// and a human-readable message.
func (s *Service) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, map[string]string{"error": code, "message": message})
}
