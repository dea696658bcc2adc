package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testGateway = "https://gateway.test/ipfs/"

func TestUnconfiguredClientServesDemoCatalog(t *testing.T) {
	c := NewClient("https://provider.invalid/v2", "", testGateway)

	nfts, err := c.NFTsByOwner(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("NFTsByOwner failed: %v", err)
	}
	if len(nfts) == 0 {
		t.Fatal("Expected demo catalog entries")
	}
	for _, nft := range nfts {
		if nft.Owner != "0xabc" {
			t.Errorf("Expected demo NFT owned by requester, got %q", nft.Owner)
		}
	}
}

func TestNFTsByOwnerFormatsProviderResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/testkey/getNFTs") {
			t.Errorf("Unexpected request path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("owner"); got != "0xowner" {
			t.Errorf("Expected owner query param, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ownedNfts": []map[string]any{
				{
					"contract": map[string]any{"address": "0xcontract", "name": "Test Col", "symbol": "TST"},
					"id":       map[string]any{"tokenId": "17"},
					"metadata": map[string]any{
						"name":        "Token Seventeen",
						"description": "a token",
						"image":       "ipfs://QmHash/17.png",
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", testGateway)

	nfts, err := c.NFTsByOwner(context.Background(), "0xowner")
	if err != nil {
		t.Fatalf("NFTsByOwner failed: %v", err)
	}
	if len(nfts) != 1 {
		t.Fatalf("Expected 1 NFT, got %d", len(nfts))
	}

	nft := nfts[0]
	if nft.ID != "0xcontract_17" {
		t.Errorf("Unexpected NFT id %q", nft.ID)
	}
	if nft.Name != "Token Seventeen" {
		t.Errorf("Unexpected NFT name %q", nft.Name)
	}
	if nft.Image != testGateway+"QmHash/17.png" {
		t.Errorf("Expected resolved IPFS image, got %q", nft.Image)
	}
	if nft.Collection == nil || nft.Collection.Symbol != "TST" {
		t.Errorf("Expected collection ref, got %+v", nft.Collection)
	}
}

func TestNFTsByOwnerFallbackNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"ownedNfts": []map[string]any{
				{"contract": map[string]any{"address": "0xc"}, "tokenId": "3"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", testGateway)

	nfts, err := c.NFTsByOwner(context.Background(), "0xowner")
	if err != nil {
		t.Fatalf("NFTsByOwner failed: %v", err)
	}
	if nfts[0].Name != "Unknown #3" {
		t.Errorf("Expected fallback name, got %q", nfts[0].Name)
	}
	if nfts[0].TokenID != "3" {
		t.Errorf("Expected top-level tokenId fallback, got %q", nfts[0].TokenID)
	}
}

func TestProviderErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream on fire", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", testGateway)

	if _, err := c.NFTsByOwner(context.Background(), "0xowner"); err == nil {
		t.Fatal("Expected error for provider failure")
	}
	if _, err := c.CollectionInfo(context.Background(), "0xcontract"); err == nil {
		t.Fatal("Expected error for provider failure")
	}
}

func TestCollectionInfoDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"contractMetadata": map[string]any{"totalSupply": 100},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "testkey", testGateway)

	col, err := c.CollectionInfo(context.Background(), "0xcontract")
	if err != nil {
		t.Fatalf("CollectionInfo failed: %v", err)
	}
	if col.Name != "Unknown Collection" || col.Symbol != "UNKNOWN" {
		t.Errorf("Expected default name and symbol, got %q / %q", col.Name, col.Symbol)
	}
	if col.ContractAddress != "0xcontract" {
		t.Errorf("Expected requested contract address, got %q", col.ContractAddress)
	}
	if col.TotalSupply != 100 {
		t.Errorf("Expected total supply passthrough, got %d", col.TotalSupply)
	}
}

func TestResolveIPFS(t *testing.T) {
	c := NewClient("https://provider.invalid", "", testGateway)

	if got := c.resolveIPFS("ipfs://QmHash/art.png"); got != testGateway+"QmHash/art.png" {
		t.Errorf("Unexpected gateway rewrite %q", got)
	}
	if got := c.resolveIPFS("https://host/art.png"); got != "https://host/art.png" {
		t.Errorf("Expected https URL untouched, got %q", got)
	}
	if got := c.resolveIPFS(""); got != "" {
		t.Errorf("Expected empty passthrough, got %q", got)
	}
}

func TestTrendingCollectionsCurated(t *testing.T) {
	cols := TrendingCollections()
	if len(cols) != 3 {
		t.Fatalf("Expected 3 curated collections, got %d", len(cols))
	}
	for _, col := range cols {
		if col.ContractAddress == "" || col.Name == "" {
			t.Errorf("Curated collection missing fields: %+v", col)
		}
	}
}
