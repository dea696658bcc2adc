package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/draxxycodes/NFT/internal/logger"
	"github.com/draxxycodes/NFT/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault-test.db")
	s := NewStore(path, logger.New(50))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendRequiresCoreFields(t *testing.T) {
	s := newTestStore(t)

	cases := []types.MintRecord{
		{OwnerKey: "guest", CreatedAt: 1000},
		{ID: "1", CreatedAt: 1000},
		{ID: "1", OwnerKey: "guest"},
	}
	for _, rec := range cases {
		if err := s.Append(rec); err == nil {
			t.Errorf("Expected error appending incomplete record %+v", rec)
		}
	}
	if got := len(s.LoadAll()); got != 0 {
		t.Errorf("Expected empty ledger after rejected appends, got %d records", got)
	}
}

func TestListByOwnerFiltersCaseInsensitively(t *testing.T) {
	s := newTestStore(t)

	s.Append(types.MintRecord{ID: "1", OwnerKey: "guest", CreatedAt: 1000})
	s.Append(types.MintRecord{ID: "2", OwnerKey: "abc", CreatedAt: 2000})
	s.Append(types.MintRecord{ID: "3", OwnerKey: "ABC", CreatedAt: 3000})

	guests := s.ListByOwner("")
	if len(guests) != 1 || guests[0].ID != "1" {
		t.Errorf("Expected guest list [1], got %+v", guests)
	}

	abc := s.ListByOwner("abc")
	if len(abc) != 2 {
		t.Fatalf("Expected 2 records for abc (case-insensitive), got %d", len(abc))
	}

	all := s.LoadAll()
	if len(all) != 3 {
		t.Errorf("Expected LoadAll to return all 3 appends, got %d", len(all))
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")
	log := logger.New(50)

	s := NewStore(path, log)
	for _, rec := range []types.MintRecord{
		{ID: "a", Name: "First", OwnerKey: "guest", CreatedAt: 100},
		{ID: "b", Name: "Second", OwnerKey: "nullifier-1", CreatedAt: 200},
		{ID: "c", Name: "Third", OwnerKey: "guest", CreatedAt: 300},
	} {
		if err := s.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(path, log)
	defer reopened.Close()

	all := reopened.LoadAll()
	if len(all) != 3 {
		t.Fatalf("Expected 3 records after reopen, got %d", len(all))
	}
	if got := reopened.ListByOwner("nullifier-1"); len(got) != 1 || got[0].Name != "Second" {
		t.Errorf("Owner filter after reopen returned %+v", got)
	}
}

func TestStorageUnavailableDegradesToMemory(t *testing.T) {
	// Point the store at a path that cannot be a database file.
	dir := t.TempDir()
	s := NewStore(dir, logger.New(50))
	defer s.Close()

	if s.Persistent() {
		t.Fatal("Expected memory-only store for unusable db path")
	}

	if got := s.LoadAll(); len(got) != 0 {
		t.Errorf("Expected empty ledger, got %d records", len(got))
	}

	// Appends still work for the life of the process.
	if err := s.Append(types.MintRecord{ID: "1", OwnerKey: "guest", CreatedAt: 1000}); err != nil {
		t.Fatalf("Append in degraded mode failed: %v", err)
	}
	if got := s.ListByOwner(""); len(got) != 1 {
		t.Errorf("Expected 1 guest record in degraded mode, got %d", len(got))
	}
}

func TestCorruptDatabaseLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.db")
	if err := os.WriteFile(path, []byte("this is not a sqlite file"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path, logger.New(50))
	defer s.Close()

	if got := s.LoadAll(); len(got) != 0 {
		t.Errorf("Expected empty ledger from corrupt db, got %d records", len(got))
	}
}

func TestUpdatesChannelNotifiesOnAppend(t *testing.T) {
	s := newTestStore(t)

	s.Append(types.MintRecord{ID: "1", OwnerKey: "guest", CreatedAt: 1000})

	select {
	case <-s.Updates():
	default:
		t.Error("Expected update notification after append")
	}
}

func TestGuestScenario(t *testing.T) {
	s := newTestStore(t)

	s.Append(types.MintRecord{ID: "1", OwnerKey: "guest", CreatedAt: 1000})
	s.Append(types.MintRecord{ID: "2", OwnerKey: "abc", CreatedAt: 2000})

	guests := s.ListByOwner("")
	if len(guests) != 1 || guests[0].ID != "1" {
		t.Errorf("ListByOwner(nil) = %+v, want [1]", guests)
	}
	abc := s.ListByOwner("abc")
	if len(abc) != 1 || abc[0].ID != "2" {
		t.Errorf("ListByOwner(abc) = %+v, want [2]", abc)
	}
}
