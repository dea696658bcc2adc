package api

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/draxxycodes/NFT/internal/logger"
	"github.com/draxxycodes/NFT/internal/types"
	"github.com/draxxycodes/NFT/internal/vault"
	"github.com/draxxycodes/NFT/internal/worldid"
)

// MockChain implements ChainProvider for testing. NFTs holds canned
// responses per owner address; addresses in Fail return an error.
type MockChain struct {
	NFTs     map[string][]types.NFT
	Fail     map[string]bool
	Trending []types.Collection
	Info     *types.Collection
}

func (m *MockChain) NFTsByOwner(ctx context.Context, owner string) ([]types.NFT, error) {
	if m.Fail[owner] {
		return nil, fmt.Errorf("provider returned status 502")
	}
	return m.NFTs[owner], nil
}

func (m *MockChain) NFTMetadata(ctx context.Context, contract, tokenID string) (*types.NFT, error) {
	nft := types.NFT{ID: contract + "_" + tokenID, TokenID: tokenID, ContractAddress: contract, Name: "Mock Token"}
	return &nft, nil
}

func (m *MockChain) NFTsByCollection(ctx context.Context, contract string) ([]types.NFT, error) {
	if m.Fail[contract] {
		return nil, fmt.Errorf("provider returned status 502")
	}
	return m.NFTs[contract], nil
}

func (m *MockChain) CollectionInfo(ctx context.Context, contract string) (*types.Collection, error) {
	if m.Fail[contract] {
		return nil, fmt.Errorf("provider returned status 502")
	}
	if m.Info != nil {
		return m.Info, nil
	}
	return &types.Collection{Name: "Mock Collection", Symbol: "MOCK", ContractAddress: contract}, nil
}

func (m *MockChain) TrendingCollections() []types.Collection {
	return m.Trending
}

// MockVerifier implements worldid.Verifier for testing.
type MockVerifier struct {
	Resp *worldid.VerifyResponse
	Err  error
}

func (m *MockVerifier) VerifyProof(ctx context.Context, payload types.VerificationPayload, action, signal string) (*worldid.VerifyResponse, error) {
	return m.Resp, m.Err
}

// setupTest creates a service over a temporary vault store and mock
// collaborators.
func setupTest(t *testing.T) (*Service, *vault.Store, *MockChain, *MockVerifier) {
	t.Helper()

	l := logger.New(100)
	store := vault.NewStore(filepath.Join(t.TempDir(), "vault.db"), l)
	t.Cleanup(func() { store.Close() })

	chain := &MockChain{
		NFTs: map[string][]types.NFT{},
		Fail: map[string]bool{},
	}
	verifier := &MockVerifier{Resp: &worldid.VerifyResponse{Success: true}}
	session := worldid.NewSession(worldid.StaticCapability(true), worldid.NoProver{}, verifier)

	svc := NewService(store, chain, session, verifier, "action_test", l)
	return svc, store, chain, verifier
}

func okPayload() types.VerificationPayload {
	return types.VerificationPayload{
		NullifierHash:     "0xnullifier",
		MerkleRoot:        "0xroot",
		Proof:             "0xproof",
		VerificationLevel: types.LevelDevice,
	}
}
