package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/draxxycodes/NFT/internal/types"
	"github.com/draxxycodes/NFT/internal/worldid"
)

func postVerify(t *testing.T, svc *Service, payload types.VerificationPayload, action string) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(map[string]any{
		"payload": payload,
		"action":  action,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/verify", bytes.NewReader(body))
	w := httptest.NewRecorder()
	svc.HandleVerify(w, req)
	return w
}

func TestHandleVerifySuccess(t *testing.T) {
	svc, _, _, _ := setupTest(t)

	w := postVerify(t, svc, okPayload(), "action_test")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Status    int                    `json:"status"`
		VerifyRes worldid.VerifyResponse `json:"verifyRes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Status != 200 || !body.VerifyRes.Success {
		t.Errorf("Unexpected response: %+v", body)
	}

	if !svc.session.IsVerified() {
		t.Error("Expected session verified after successful proof")
	}
	if svc.session.IdentityKey() != "0xnullifier" {
		t.Errorf("Expected nullifier identity, got %q", svc.session.IdentityKey())
	}
}

func TestHandleVerifyMissingPayload(t *testing.T) {
	svc, _, _, _ := setupTest(t)

	w := postVerify(t, svc, types.VerificationPayload{}, "action_test")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["error"] != "missing_params" {
		t.Errorf("Expected missing_params error code, got %q", body["error"])
	}
	if svc.session.IsVerified() {
		t.Error("Session must stay unverified on bad request")
	}
}

func TestHandleVerifyInvalidAction(t *testing.T) {
	svc, _, _, _ := setupTest(t)

	for _, action := range []string{"not-prefixed", "action_other"} {
		w := postVerify(t, svc, okPayload(), action)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Action %q: expected status 400, got %d", action, w.Code)
			continue
		}
		var body map[string]string
		json.NewDecoder(w.Body).Decode(&body)
		if body["error"] != "invalid_action" {
			t.Errorf("Action %q: expected invalid_action, got %q", action, body["error"])
		}
	}
}

func TestHandleVerifyInvalidJSON(t *testing.T) {
	svc, _, _, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/verify", strings.NewReader("{broken"))
	w := httptest.NewRecorder()
	svc.HandleVerify(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["error"] != "invalid_json" {
		t.Errorf("Expected invalid_json error code, got %q", body["error"])
	}
}

func TestHandleVerifyCloudRejection(t *testing.T) {
	svc, _, _, verifier := setupTest(t)
	verifier.Resp = &worldid.VerifyResponse{Success: false, Code: "invalid_proof"}

	w := postVerify(t, svc, okPayload(), "action_test")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var body struct {
		Status    int                    `json:"status"`
		VerifyRes worldid.VerifyResponse `json:"verifyRes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.VerifyRes.Code != "invalid_proof" {
		t.Errorf("Expected rejection passthrough, got %+v", body.VerifyRes)
	}
	if svc.session.IsVerified() {
		t.Error("Session must stay unverified after rejection")
	}
}

func TestHandleVerifyCloudUnreachable(t *testing.T) {
	svc, _, _, verifier := setupTest(t)
	verifier.Resp = nil
	verifier.Err = fmt.Errorf("connection refused")

	w := postVerify(t, svc, okPayload(), "action_test")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["error"] != "server_error" {
		t.Errorf("Expected server_error code, got %q", body["error"])
	}
}

func TestHandleVerifyStatusAndReset(t *testing.T) {
	svc, _, _, _ := setupTest(t)

	w := postVerify(t, svc, okPayload(), "action_test")
	if w.Code != http.StatusOK {
		t.Fatalf("Verification setup failed: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/verify/status", nil)
	rec := httptest.NewRecorder()
	svc.HandleVerifyStatus(rec, req)

	var status struct {
		State       string `json:"state"`
		IdentityKey string `json:"identity_key"`
		Verified    bool   `json:"verified"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode status: %v", err)
	}
	if !status.Verified || status.IdentityKey != "0xnullifier" {
		t.Errorf("Unexpected status: %+v", status)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/verify/reset", nil)
	rec = httptest.NewRecorder()
	svc.HandleVerifyReset(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for reset, got %d", rec.Code)
	}
	if svc.session.IsVerified() {
		t.Error("Expected unverified session after reset")
	}
	if svc.session.IdentityKey() != types.GuestOwner {
		t.Errorf("Expected guest identity after reset, got %q", svc.session.IdentityKey())
	}
}
