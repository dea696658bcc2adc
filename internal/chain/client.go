// Package chain is the client for the upstream NFT data provider
// (Alchemy-style API on World Chain). It shapes provider JSON into the
// domain NFT and Collection types and resolves ipfs:// references to a
// configured gateway. Every call is a single attempt; there is no retry
// layer.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/draxxycodes/NFT/internal/types"
)

// Client talks to the NFT data provider. A client without an API key
// runs in demo mode and serves the built-in catalog instead of calling
// out.
type Client struct {
	baseURL string
	apiKey  string
	gateway string
	httpc   *http.Client
}

// NewClient creates a provider client. baseURL is the versioned API
// root (without the key segment), gateway the IPFS gateway base.
func NewClient(baseURL, apiKey, gateway string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		gateway: gateway,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether a real provider key is present. Without
// one, read calls serve the demo catalog.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// providerNFT mirrors the provider's token shape.
type providerNFT struct {
	Contract struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"contract"`
	ID struct {
		TokenID string `json:"tokenId"`
	} `json:"id"`
	TokenID  string `json:"tokenId"`
	Owner    string `json:"owner"`
	Metadata struct {
		Name         string               `json:"name"`
		Description  string               `json:"description"`
		Image        string               `json:"image"`
		Attributes   []types.NFTAttribute `json:"attributes"`
		AnimationURL string               `json:"animation_url"`
		ExternalURL  string               `json:"external_url"`
	} `json:"metadata"`
}

type providerContract struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Image       string `json:"image"`
	TotalSupply int    `json:"totalSupply"`
}

// NFTsByOwner fetches the tokens owned by an address.
func (c *Client) NFTsByOwner(ctx context.Context, owner string) ([]types.NFT, error) {
	if !c.Configured() {
		return c.sampleNFTs(owner), nil
	}

	var out struct {
		OwnedNFTs []providerNFT `json:"ownedNfts"`
	}
	q := url.Values{"owner": {owner}, "withMetadata": {"true"}}
	if err := c.get(ctx, "getNFTs", q, &out); err != nil {
		return nil, err
	}

	nfts := make([]types.NFT, 0, len(out.OwnedNFTs))
	for _, raw := range out.OwnedNFTs {
		nfts = append(nfts, c.formatNFT(raw))
	}
	return nfts, nil
}

// NFTMetadata fetches a single token by contract and token id.
func (c *Client) NFTMetadata(ctx context.Context, contract, tokenID string) (*types.NFT, error) {
	if !c.Configured() {
		sample := c.sampleNFTs("")
		nft := sample[0]
		nft.ContractAddress = contract
		nft.TokenID = tokenID
		return &nft, nil
	}

	var raw providerNFT
	q := url.Values{"contractAddress": {contract}, "tokenId": {tokenID}}
	if err := c.get(ctx, "getNFTMetadata", q, &raw); err != nil {
		return nil, err
	}
	nft := c.formatNFT(raw)
	return &nft, nil
}

// NFTsByCollection fetches the tokens of a contract.
func (c *Client) NFTsByCollection(ctx context.Context, contract string) ([]types.NFT, error) {
	if !c.Configured() {
		return c.sampleNFTs(""), nil
	}

	var out struct {
		NFTs []providerNFT `json:"nfts"`
	}
	q := url.Values{"contractAddress": {contract}, "withMetadata": {"true"}}
	if err := c.get(ctx, "getNFTsForCollection", q, &out); err != nil {
		return nil, err
	}

	nfts := make([]types.NFT, 0, len(out.NFTs))
	for _, raw := range out.NFTs {
		nfts = append(nfts, c.formatNFT(raw))
	}
	return nfts, nil
}

// CollectionInfo fetches contract-level metadata for a collection.
func (c *Client) CollectionInfo(ctx context.Context, contract string) (*types.Collection, error) {
	if !c.Configured() {
		trending := TrendingCollections()
		col := trending[0]
		col.ContractAddress = contract
		return &col, nil
	}

	var out struct {
		ContractMetadata providerContract `json:"contractMetadata"`
	}
	q := url.Values{"contractAddress": {contract}}
	if err := c.get(ctx, "getContractMetadata", q, &out); err != nil {
		return nil, err
	}

	meta := out.ContractMetadata
	if meta.Address == "" {
		meta.Address = contract
	}
	col := types.Collection{
		Name:            orDefault(meta.Name, "Unknown Collection"),
		Symbol:          orDefault(meta.Symbol, "UNKNOWN"),
		ContractAddress: meta.Address,
		Description:     meta.Description,
		Image:           c.resolveIPFS(meta.Image),
		TotalSupply:     meta.TotalSupply,
	}
	return &col, nil
}

func (c *Client) get(ctx context.Context, method string, q url.Values, out any) error {
	reqURL := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.apiKey, method, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: provider returned status %d", method, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

func (c *Client) formatNFT(raw providerNFT) types.NFT {
	tokenID := raw.ID.TokenID
	if tokenID == "" {
		tokenID = raw.TokenID
	}
	if tokenID == "" {
		tokenID = "0"
	}

	contract := raw.Contract.Address
	if contract == "" {
		contract = "unknown"
	}

	name := raw.Metadata.Name
	if name == "" {
		name = fmt.Sprintf("%s #%s", orDefault(raw.Contract.Name, "Unknown"), tokenID)
	}

	now := time.Now()
	nft := types.NFT{
		ID:              fmt.Sprintf("%s_%s", contract, tokenID),
		TokenID:         tokenID,
		ContractAddress: raw.Contract.Address,
		Owner:           raw.Owner,
		Name:            name,
		Description:     raw.Metadata.Description,
		Image:           c.resolveIPFS(raw.Metadata.Image),
		Metadata: &types.NFTMetadata{
			Name:         raw.Metadata.Name,
			Description:  raw.Metadata.Description,
			Image:        c.resolveIPFS(raw.Metadata.Image),
			Attributes:   raw.Metadata.Attributes,
			AnimationURL: c.resolveIPFS(raw.Metadata.AnimationURL),
			ExternalURL:  raw.Metadata.ExternalURL,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if raw.Contract.Name != "" || raw.Contract.Symbol != "" {
		nft.Collection = &types.CollectionRef{
			Name:            orDefault(raw.Contract.Name, "Unknown Collection"),
			Symbol:          orDefault(raw.Contract.Symbol, "UNKNOWN"),
			ContractAddress: raw.Contract.Address,
		}
	}

	return nft
}

// resolveIPFS rewrites ipfs:// references to the configured gateway.
func (c *Client) resolveIPFS(u string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "ipfs://") {
		return c.gateway + strings.TrimPrefix(u, "ipfs://")
	}
	return u
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
