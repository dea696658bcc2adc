package worldid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/draxxycodes/NFT/internal/types"
)

const defaultVerifierBaseURL = "https://developer.worldcoin.org"

// VerifyResponse is the verification cloud's answer, passed through to
// API callers as-is for diagnostics.
type VerifyResponse struct {
	Success   bool   `json:"success"`
	Code      string `json:"code,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Attribute string `json:"attribute,omitempty"`
}

// CloudVerifier validates proofs against the World developer API. One
// attempt per call, no retries; rejections and transport errors are for
// the caller to surface.
type CloudVerifier struct {
	baseURL string
	appID   string
	httpc   *http.Client
}

// NewCloudVerifier creates a verifier for the given application id.
func NewCloudVerifier(appID string) *CloudVerifier {
	return &CloudVerifier{
		baseURL: defaultVerifierBaseURL,
		appID:   appID,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyRequest struct {
	NullifierHash     string `json:"nullifier_hash"`
	MerkleRoot        string `json:"merkle_root"`
	Proof             string `json:"proof"`
	VerificationLevel string `json:"verification_level"`
	Action            string `json:"action"`
	Signal            string `json:"signal,omitempty"`
}

// VerifyProof submits the proof payload for server-side validation. A
// transport or decode failure returns an error; a well-formed rejection
// returns Success=false with the cloud's code and detail.
func (v *CloudVerifier) VerifyProof(ctx context.Context, payload types.VerificationPayload, action, signal string) (*VerifyResponse, error) {
	body, err := json.Marshal(verifyRequest{
		NullifierHash:     payload.NullifierHash,
		MerkleRoot:        payload.MerkleRoot,
		Proof:             payload.Proof,
		VerificationLevel: string(payload.VerificationLevel),
		Action:            action,
		Signal:            signal,
	})
	if err != nil {
		return nil, fmt.Errorf("encode verify request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/verify/%s", v.baseURL, v.appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verifier request: %w", err)
	}
	defer resp.Body.Close()

	var out VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode verifier response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		out.Success = true
	}
	return &out, nil
}
