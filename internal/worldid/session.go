// Package worldid tracks whether the current session has proven
// personhood via World ID and derives the identity key used to filter
// vault reads. The verification exchange itself is external; this
// package only drives the state machine and holds the opaque proof
// payload for the life of the session.
package worldid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/draxxycodes/NFT/internal/types"
)

// State is the session verification state.
type State string

const (
	StateUnverified State = "unverified"
	StateVerifying  State = "verifying"
	StateVerified   State = "verified"
)

// defaultVerifyTimeout bounds the external exchange, which has no
// contractual deadline of its own.
const defaultVerifyTimeout = 120 * time.Second

var (
	// ErrUnavailable is returned when the environment has no
	// verification capability (no World App / MiniKit host).
	ErrUnavailable = errors.New("world id verification is not available in this environment")

	// ErrInFlight is returned when a verification is already running;
	// only one exchange may be in flight at a time.
	ErrInFlight = errors.New("a verification is already in progress")

	// ErrCancelled is reported by provers when the user dismisses the
	// external verification prompt.
	ErrCancelled = errors.New("verification was cancelled")

	// ErrInvalidAction is returned for action ids without the expected
	// incognito-action prefix.
	ErrInvalidAction = errors.New("action id must start with \"action_\"")
)

// Capability reports whether the external verification exchange can run
// at all. Injected rather than probed from ambient environment state.
type Capability interface {
	Available() bool
}

// StaticCapability is a fixed-answer Capability.
type StaticCapability bool

func (c StaticCapability) Available() bool { return bool(c) }

// Prover acquires a proof from the external verifier front end.
type Prover interface {
	Prove(ctx context.Context, action, signal string) (types.VerificationPayload, error)
}

// NoProver is the Prover for deployments where proofs arrive through
// the HTTP API (and Adopt) instead of a local prover exchange.
type NoProver struct{}

func (NoProver) Prove(ctx context.Context, action, signal string) (types.VerificationPayload, error) {
	return types.VerificationPayload{}, ErrUnavailable
}

// Verifier validates an acquired proof against the verification cloud.
type Verifier interface {
	VerifyProof(ctx context.Context, payload types.VerificationPayload, action, signal string) (*VerifyResponse, error)
}

// Session is the per-process verification state machine. State lives in
// memory only and does not survive restarts.
type Session struct {
	mu         sync.Mutex
	state      State
	payload    *types.VerificationPayload
	capability Capability
	prover     Prover
	verifier   Verifier
	timeout    time.Duration
}

// NewSession creates an unverified session with the given collaborators.
func NewSession(capability Capability, prover Prover, verifier Verifier) *Session {
	return &Session{
		state:      StateUnverified,
		capability: capability,
		prover:     prover,
		verifier:   verifier,
		timeout:    defaultVerifyTimeout,
	}
}

// State returns the current verification state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsVerified reports whether the session holds a validated proof.
func (s *Session) IsVerified() bool {
	return s.State() == StateVerified
}

// Payload returns a copy of the stored proof payload, or nil when the
// session is not verified.
func (s *Session) Payload() *types.VerificationPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return nil
	}
	p := *s.payload
	return &p
}

// IdentityKey returns the nullifier hash when verified, else the guest
// sentinel. Pure read, no side effects.
func (s *Session) IdentityKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateVerified && s.payload != nil {
		return s.payload.NullifierHash
	}
	return types.GuestOwner
}

// Reset clears any stored payload and returns to Unverified. It always
// succeeds, regardless of prior state.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state = StateUnverified
	s.payload = nil
	s.mu.Unlock()
}

// Adopt stores an externally validated payload and marks the session
// Verified. Callers must have validated the proof server-side first.
func (s *Session) Adopt(payload types.VerificationPayload) {
	s.mu.Lock()
	s.payload = &payload
	s.state = StateVerified
	s.mu.Unlock()
}

// RequestVerification runs the full exchange: proof acquisition through
// the prover, then server-side validation through the verifier. On any
// failure or cancellation the session returns to Unverified with no
// payload stored. A second call while one is in flight fails with
// ErrInFlight.
func (s *Session) RequestVerification(ctx context.Context, action, signal string) error {
	if !strings.HasPrefix(action, "action_") {
		return ErrInvalidAction
	}

	s.mu.Lock()
	if !s.capability.Available() {
		s.mu.Unlock()
		return ErrUnavailable
	}
	if s.state == StateVerifying {
		s.mu.Unlock()
		return ErrInFlight
	}
	s.state = StateVerifying
	s.payload = nil
	s.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	payload, err := s.prover.Prove(ctx, action, signal)
	if err != nil {
		s.Reset()
		return err
	}

	resp, err := s.verifier.VerifyProof(ctx, payload, action, signal)
	if err != nil {
		s.Reset()
		return err
	}
	if !resp.Success {
		s.Reset()
		reason := resp.Code
		if reason == "" {
			reason = resp.Detail
		}
		if reason == "" {
			reason = "rejected"
		}
		return fmt.Errorf("server-side verification failed: %s", reason)
	}

	if payload.ActionID == "" {
		payload.ActionID = action
	}
	if payload.VerificationLevel == "" {
		payload.VerificationLevel = types.LevelOrb
	}

	s.mu.Lock()
	s.payload = &payload
	s.state = StateVerified
	s.mu.Unlock()
	return nil
}
