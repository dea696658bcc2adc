// Package types defines the core domain models for the NFT explorer
// mini-app service. It contains the MintRecord ledger entry, the NFT and
// Collection shapes mirrored from the upstream data provider, and the
// World ID verification payload used across the application.
package types

import (
	"time"
)

// Version is the current version of the explorer service
const Version = "0.3.0"

// BuildTime is set at build time via -ldflags
var BuildTime = "dev"

// GuestOwner is the owner key recorded for mints performed without a
// verified World ID. Reads match it case-insensitively.
const GuestOwner = "guest"

// VerificationLevel is the strength of a World ID proof
type VerificationLevel string

const (
	LevelOrb    VerificationLevel = "orb"
	LevelDevice VerificationLevel = "device"
)

// MintRecord is a single simulated mint event in the vault ledger.
// Records are immutable once created; the ledger only appends and reads.
type MintRecord struct {
	ID          string `json:"id"`          // Unique, time-based identifier assigned at creation
	Name        string `json:"name"`        // Display name, fixed per collection artwork
	Image       string `json:"image"`       // URI reference to the artwork
	Description string `json:"description"` // Display description
	TxHash      string `json:"tx_hash"`     // Synthetic hex hash; never resolvable on-chain
	OwnerKey    string `json:"owner_key"`   // Nullifier-derived key, or the guest sentinel
	CreatedAt   int64  `json:"created_at"`  // Epoch milliseconds, non-decreasing within a process
}

// VerificationPayload holds the opaque proof material returned by the
// World ID verifier. The fields are never parsed, only stored and
// forwarded.
type VerificationPayload struct {
	NullifierHash     string            `json:"nullifier_hash"`
	MerkleRoot        string            `json:"merkle_root"`
	Proof             string            `json:"proof"`
	VerificationLevel VerificationLevel `json:"verification_level"`
	ActionID          string            `json:"action_id"`
}

// NFTAttribute is a single trait on an NFT's metadata.
type NFTAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// NFTMetadata is the token-level metadata blob resolved from the
// provider (or IPFS).
type NFTMetadata struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Image        string         `json:"image"`
	Attributes   []NFTAttribute `json:"attributes,omitempty"`
	AnimationURL string         `json:"animation_url,omitempty"`
	ExternalURL  string         `json:"external_url,omitempty"`
}

// CollectionRef is the lightweight collection reference embedded in an NFT.
type CollectionRef struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	ContractAddress string `json:"contract_address"`
}

// NFT is a single token as shaped for API responses.
type NFT struct {
	ID              string         `json:"id"`
	TokenID         string         `json:"token_id"`
	ContractAddress string         `json:"contract_address"`
	Owner           string         `json:"owner"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Image           string         `json:"image"`
	Metadata        *NFTMetadata   `json:"metadata,omitempty"`
	Collection      *CollectionRef `json:"collection,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Collection is a contract-level collection summary.
type Collection struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	ContractAddress string `json:"contract_address"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	TotalSupply     int    `json:"total_supply,omitempty"`
	FloorPrice      string `json:"floor_price,omitempty"`
	VolumeTraded    string `json:"volume_traded,omitempty"`
	OwnersCount     int    `json:"owners_count,omitempty"`
}
