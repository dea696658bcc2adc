package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// @Title: Get NFTs By Owner
// @Route: GET /api/nfts?address=0x...
// @Description: Returns the NFTs owned by an address
// @Response: {"success": true, "data": [...], "count": N, "address": "0x..."}
func (s *Service) HandleNFTs(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handleNFTsBatch(w, r)
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		s.writeError(w, http.StatusBadRequest, "missing_address", "address query parameter is required")
		return
	}

	nfts, err := s.chain.NFTsByOwner(r.Context(), address)
	if err != nil {
		s.logger.Errorf("NFT lookup for %s failed: %v", address, err)
		s.writeError(w, http.StatusInternalServerError, "provider_error", "failed to fetch NFTs")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    nfts,
		"count":   len(nfts),
		"address": address,
	})
}

// @Title: Get NFTs For Multiple Owners
// @Route: POST /api/nfts
// @Description: Returns NFTs per address for a batch of owners; one failing address does not fail the batch
// @Response: {"success": true, "data": {"0x...": {...}}, "total": N}
func (s *Service) handleNFTsBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Addresses []string `json:"addresses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if len(req.Addresses) == 0 {
		s.writeError(w, http.StatusBadRequest, "missing_addresses", "addresses array is required")
		return
	}

	results := make(map[string]any, len(req.Addresses))
	total := 0
	for _, address := range req.Addresses {
		nfts, err := s.chain.NFTsByOwner(r.Context(), address)
		if err != nil {
			s.logger.Warningf("Batch NFT lookup for %s failed: %v", address, err)
			results[address] = map[string]any{
				"success": false,
				"error":   fmt.Sprintf("failed to fetch NFTs: %v", err),
			}
			continue
		}
		results[address] = map[string]any{
			"success": true,
			"data":    nfts,
			"count":   len(nfts),
		}
		total += len(nfts)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    results,
		"total":   total,
	})
}

// @Title: Get NFT Metadata
// @Route: GET /api/nfts/metadata?contract=0x...&token_id=1
// @Description: Returns a single token's metadata
// @Response: {"success": true, "data": {...}}
func (s *Service) HandleNFTMetadata(w http.ResponseWriter, r *http.Request) {
	contract := r.URL.Query().Get("contract")
	tokenID := r.URL.Query().Get("token_id")
	if contract == "" || tokenID == "" {
		s.writeError(w, http.StatusBadRequest, "missing_params", "contract and token_id query parameters are required")
		return
	}

	nft, err := s.chain.NFTMetadata(r.Context(), contract, tokenID)
	if err != nil {
		s.logger.Errorf("NFT metadata lookup for %s/%s failed: %v", contract, tokenID, err)
		s.writeError(w, http.StatusInternalServerError, "provider_error", "failed to fetch NFT metadata")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    nft,
	})
}
