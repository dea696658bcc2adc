package api

import (
	"encoding/json"
	"net/http"

	"github.com/draxxycodes/NFT/internal/vault"
)

// @Title: Mint NFT
// @Route: POST /api/mint
// @Description: Records a simulated mint in the vault, owned by the session's identity key
// @Response: {"success": true, "record": {...}}
func (s *Service) HandleMint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Image       string `json:"image"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "missing_params", "name is required")
		return
	}

	rec := vault.NewRecord(req.Name, req.Image, req.Description, s.session.IdentityKey())
	if err := s.vault.Append(rec); err != nil {
		s.logger.Errorf("Mint append failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "server_error", "failed to record mint")
		return
	}

	s.logger.Infof("Minted %q for %s (tx %s)", rec.Name, rec.OwnerKey, rec.TxHash)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"record":  rec,
	})
}

// @Title: Get Vault
// @Route: GET /api/vault?owner=...&sort=newest
// @Description: Returns the session's mint records; owner overrides the session identity, sort is newest, oldest, or name
// @Response: {"success": true, "records": [...], "count": N}
func (s *Service) HandleVault(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		owner = s.session.IdentityKey()
	}

	records := s.vault.ListByOwner(owner)
	vault.SortRecords(records, r.URL.Query().Get("sort"))

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"records": records,
		"count":   len(records),
		"owner":   owner,
	})
}
