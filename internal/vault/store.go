// Package vault provides the append-only mint ledger backed by SQLite.
// The in-memory record list is authoritative for the life of the
// process; the database is best-effort durability. A store that cannot
// open its database keeps working memory-only, so callers never see a
// persistence failure as a hard error.
package vault

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/draxxycodes/NFT/internal/logger"
	"github.com/draxxycodes/NFT/internal/types"

	_ "modernc.org/sqlite"
)

const (
	defaultDBFile    = "vault.db"
	maxBusyTimeoutMs = 5000
)

// LoadStatus reports how the initial read of persisted records went.
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadEmpty
	LoadCorrupt
)

// Store manages the mint ledger and its persistence to a SQLite
// database file. Exactly one writer exists per process; the mutex
// serializes appends against concurrent reads from handlers.
type Store struct {
	mu      sync.RWMutex
	db      *sql.DB // nil when running memory-only
	file    string
	records []types.MintRecord
	updates chan struct{}
	log     *logger.Logger
}

// NewStore creates a mint ledger store. Open or schema failures degrade
// to a memory-only ledger instead of failing; the condition is logged
// and the caller proceeds normally.
func NewStore(filePath string, log *logger.Logger) *Store {
	if filePath == "" {
		filePath = defaultDBFile
	}

	s := &Store{
		file:    filePath,
		updates: make(chan struct{}, 1),
		log:     log,
	}

	if err := s.openDB(); err != nil {
		s.log.Warningf("Vault storage unavailable, running memory-only: %v", err)
		s.db = nil
		return s
	}

	records, status := s.loadInitial()
	switch status {
	case LoadOK:
		s.records = records
		s.log.Infof("Vault loaded %d mint record(s)", len(records))
	case LoadEmpty:
		s.records = nil
	case LoadCorrupt:
		s.records = records
		s.log.Warningf("Vault data partially unreadable, loaded %d record(s)", len(records))
	}

	return s
}

// Updates returns a channel that receives a value whenever a record is
// appended.
func (s *Store) Updates() <-chan struct{} {
	return s.updates
}

func (s *Store) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) openDB() error {
	if dir := filepath.Dir(s.file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create db directory: %w", err)
		}
	}

	connStr := fmt.Sprintf("file:%s", filepath.Clean(s.file))

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", maxBusyTimeoutMs)); err != nil {
		db.Close()
		return fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS mint_records (
		id TEXT PRIMARY KEY,
		name TEXT,
		image TEXT,
		description TEXT,
		tx_hash TEXT,
		owner_key TEXT,
		created_at INTEGER
	)`); err != nil {
		db.Close()
		return fmt.Errorf("create mint_records table: %w", err)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return fmt.Errorf("enable WAL: %w", err)
	}

	s.db = db
	return nil
}

// loadInitial reads every persisted record. Unreadable rows are skipped
// and reported via the LoadCorrupt status; the store decides the
// fallback, callers of the public API never see the failure.
func (s *Store) loadInitial() ([]types.MintRecord, LoadStatus) {
	rows, err := s.db.Query(`SELECT id, name, image, description, tx_hash, owner_key, created_at
		FROM mint_records ORDER BY created_at`)
	if err != nil {
		return nil, LoadCorrupt
	}
	defer rows.Close()

	var records []types.MintRecord
	corrupt := false
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			corrupt = true
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		corrupt = true
	}

	if corrupt {
		return records, LoadCorrupt
	}
	if len(records) == 0 {
		return nil, LoadEmpty
	}
	return records, LoadOK
}

// Append adds a record to the ledger. The only validation is presence of
// id, owner key, and creation time. The record is always retained in
// memory; a storage write failure is logged and swallowed, so the record
// survives for this process but may be lost across restarts.
func (s *Store) Append(rec types.MintRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("mint record id is required")
	}
	if rec.OwnerKey == "" {
		return fmt.Errorf("mint record owner key is required")
	}
	if rec.CreatedAt == 0 {
		return fmt.Errorf("mint record creation time is required")
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	db := s.db
	s.mu.Unlock()

	if db != nil {
		_, err := db.Exec(`INSERT INTO mint_records
			(id, name, image, description, tx_hash, owner_key, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.Name, rec.Image, rec.Description, rec.TxHash, rec.OwnerKey, rec.CreatedAt)
		if err != nil {
			s.log.Warningf("Vault write for record %s failed, kept in memory only: %v", rec.ID, err)
		}
	}

	s.notify()
	return nil
}

// ListByOwner returns the records whose owner key matches the given key
// case-insensitively. An empty key selects guest records. No order is
// guaranteed; callers sort with SortRecords.
func (s *Store) ListByOwner(ownerKey string) []types.MintRecord {
	if ownerKey == "" {
		ownerKey = types.GuestOwner
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.MintRecord
	for _, rec := range s.records {
		if strings.EqualFold(rec.OwnerKey, ownerKey) {
			out = append(out, rec)
		}
	}
	return out
}

// LoadAll returns every record in the ledger. A store whose database was
// never readable returns an empty list, never an error.
func (s *Store) LoadAll() []types.MintRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.MintRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Persistent reports whether the store has a live database behind it.
func (s *Store) Persistent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (types.MintRecord, error) {
	var (
		id, name, image, description sql.NullString
		txHash, ownerKey             sql.NullString
		createdAt                    sql.NullInt64
	)

	if err := scanner.Scan(&id, &name, &image, &description, &txHash, &ownerKey, &createdAt); err != nil {
		return types.MintRecord{}, err
	}

	return types.MintRecord{
		ID:          id.String,
		Name:        name.String,
		Image:       image.String,
		Description: description.String,
		TxHash:      txHash.String,
		OwnerKey:    ownerKey.String,
		CreatedAt:   createdAt.Int64,
	}, nil
}
