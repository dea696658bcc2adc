package api

import (
	"net/http"
)

// maxCollectionPreview caps the token list returned alongside a
// collection's info.
const maxCollectionPreview = 20

// @Title: Get Collections
// @Route: GET /api/collections?contract=0x...
// @Description: With a contract, returns that collection's info and a token preview; without one, returns the trending list
// @Response: {"success": true, "data": {...}}
func (s *Service) HandleCollections(w http.ResponseWriter, r *http.Request) {
	contract := r.URL.Query().Get("contract")
	if contract == "" {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"collections": s.chain.TrendingCollections()},
		})
		return
	}

	col, err := s.chain.CollectionInfo(r.Context(), contract)
	if err != nil {
		s.logger.Errorf("Collection lookup for %s failed: %v", contract, err)
		s.writeError(w, http.StatusInternalServerError, "provider_error", "failed to fetch collection")
		return
	}

	nfts, err := s.chain.NFTsByCollection(r.Context(), contract)
	if err != nil {
		s.logger.Errorf("Collection token lookup for %s failed: %v", contract, err)
		s.writeError(w, http.StatusInternalServerError, "provider_error", "failed to fetch collection NFTs")
		return
	}

	preview := nfts
	if len(preview) > maxCollectionPreview {
		preview = preview[:maxCollectionPreview]
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"collection": col,
			"nfts":       preview,
			"totalNFTs":  len(nfts),
		},
	})
}
