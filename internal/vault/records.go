package vault

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/draxxycodes/NFT/internal/types"
)

// Sort keys accepted by SortRecords.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortName   = "name"
)

var (
	clockMu    sync.Mutex
	lastMillis int64
)

// monotonicMillis returns the current epoch milliseconds, never going
// backwards within this process even if the wall clock does.
func monotonicMillis() int64 {
	clockMu.Lock()
	defer clockMu.Unlock()

	now := time.Now().UnixMilli()
	if now < lastMillis {
		now = lastMillis
	}
	lastMillis = now
	return now
}

// NewRecord builds a fully-populated mint record for the given artwork
// and owner. The id stays time-based but carries uuid-derived entropy so
// two mints in the same millisecond cannot collide. The transaction hash
// is synthetic and never resolvable on-chain.
func NewRecord(name, image, description, ownerKey string) types.MintRecord {
	if ownerKey == "" {
		ownerKey = types.GuestOwner
	}

	createdAt := monotonicMillis()
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	return types.MintRecord{
		ID:          strconv.FormatInt(createdAt, 10) + "-" + suffix,
		Name:        name,
		Image:       image,
		Description: description,
		TxHash:      syntheticTxHash(),
		OwnerKey:    ownerKey,
		CreatedAt:   createdAt,
	}
}

// syntheticTxHash produces a 0x-prefixed 64-nybble hex string standing
// in for a chain transaction hash.
func syntheticTxHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is not worth crashing a simulated mint;
		// fall back to uuid bytes.
		id := uuid.New()
		copy(buf, id[:])
		copy(buf[16:], id[:])
	}
	return "0x" + hex.EncodeToString(buf)
}

// SortRecords orders records by the given key: SortNewest (createdAt
// descending, the default), SortOldest (ascending), or SortName.
// Name collation is case-insensitive: records compare by their
// strings.ToLower form, and ties keep insertion order.
func SortRecords(records []types.MintRecord, key string) {
	switch key {
	case SortOldest:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt < records[j].CreatedAt
		})
	case SortName:
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt > records[j].CreatedAt
		})
	}
}
