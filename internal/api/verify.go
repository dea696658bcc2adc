package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/draxxycodes/NFT/internal/types"
)

// @Title: Verify World ID Proof
// @Route: POST /api/verify
// @Description: Validates a World ID proof against the verification cloud and marks the session verified on success
// @Response: {"status": 200, "verifyRes": {...}}
func (s *Service) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Payload types.VerificationPayload `json:"payload"`
		Action  string                    `json:"action"`
		Signal  string                    `json:"signal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if req.Action == "" || req.Payload.Proof == "" || req.Payload.NullifierHash == "" || req.Payload.MerkleRoot == "" {
		s.writeError(w, http.StatusBadRequest, "missing_params", "payload and action are required")
		return
	}

	if !strings.HasPrefix(req.Action, "action_") || (s.action != "" && req.Action != s.action) {
		s.writeError(w, http.StatusBadRequest, "invalid_action", "unknown verification action")
		return
	}

	verifyRes, err := s.verifier.VerifyProof(r.Context(), req.Payload, req.Action, req.Signal)
	if err != nil {
		s.logger.Errorf("Proof verification failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "server_error", "verification service unreachable")
		return
	}

	if !verifyRes.Success {
		s.logger.Warningf("Proof rejected: %s", verifyRes.Code)
		s.writeJSON(w, http.StatusBadRequest, map[string]any{
			"status":    http.StatusBadRequest,
			"verifyRes": verifyRes,
		})
		return
	}

	payload := req.Payload
	if payload.ActionID == "" {
		payload.ActionID = req.Action
	}
	if payload.VerificationLevel == "" {
		payload.VerificationLevel = types.LevelOrb
	}
	s.session.Adopt(payload)

	s.logger.Infof("Session verified via World ID (level %s)", payload.VerificationLevel)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    http.StatusOK,
		"verifyRes": verifyRes,
	})
}

// @Title: Get Verification Status
// @Route: GET /api/verify/status
// @Description: Returns the session's verification state and identity key
// @Response: {"state": "verified", "identity_key": "0x...", "verified": true}
func (s *Service) HandleVerifyStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"state":        s.session.State(),
		"identity_key": s.session.IdentityKey(),
		"verified":     s.session.IsVerified(),
	})
}

// @Title: Reset Verification
// @Route: POST /api/verify/reset
// @Description: Clears the session's verification state; always succeeds
// @Response: {"state": "unverified"}
func (s *Service) HandleVerifyReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.session.Reset()
	s.logger.Infof("Verification state reset")
	s.writeJSON(w, http.StatusOK, map[string]any{"state": s.session.State()})
}
