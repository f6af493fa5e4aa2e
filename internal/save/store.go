// Package save persists game state snapshots to a SQLite-backed slot
// store and upgrades older-shaped save blobs on load.
package save

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mveiss/hollow-manor/internal/dice"
	"github.com/mveiss/hollow-manor/internal/game"
)

// MaxSlots is the number of independent save slots.
const MaxSlots = 3

// ErrSlotEmpty indicates a load from a slot with no snapshot.
var ErrSlotEmpty = errors.New("save slot is empty")

// ErrInvalidSlot indicates a slot number outside [1, MaxSlots].
var ErrInvalidSlot = errors.New("save slot out of range")

// Metadata summarizes a stored snapshot for slot listings.
type Metadata struct {
	CharacterName string
	SavedAt       time.Time
	RoomID        string
	Stats         map[string]int
	Status        game.Status
}

// SlotInfo pairs a slot number with its metadata, nil when empty.
type SlotInfo struct {
	Slot int
	Meta *Metadata
}

// Store is a SQLite-backed save store.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS saves (
    slot INTEGER PRIMARY KEY,
    payload TEXT NOT NULL,
    saved_at INTEGER NOT NULL
);
`

// Open opens (creating if needed) the save database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("save path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save dir: %w", err)
		}
	}
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping save db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure saves table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes a snapshot of the state into the slot, replacing any
// previous snapshot there. The live state is never aliased: the
// snapshot is a serialized copy.
func (s *Store) Save(slot int, st *game.State) error {
	if slot < 1 || slot > MaxSlots {
		return ErrInvalidSlot
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO saves (slot, payload, saved_at) VALUES (?, ?, ?)",
		slot, string(payload), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write slot %d: %w", slot, err)
	}
	return nil
}

// Load reads a snapshot from the slot and migrates it to the current
// schema. On any failure the caller's live state is untouched; the
// migration itself never fails on a syntactically valid older blob.
// The roller replays legacy body-map claims.
func (s *Store) Load(slot int, roller dice.Roller) (*game.State, error) {
	if slot < 1 || slot > MaxSlots {
		return nil, ErrInvalidSlot
	}
	var payload string
	err := s.db.QueryRow("SELECT payload FROM saves WHERE slot = ?", slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %d: %w", slot, err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decode slot %d: %w", slot, err)
	}
	return Migrate(raw, roller), nil
}

// Delete clears a slot. Deleting an empty slot is a no-op.
func (s *Store) Delete(slot int) error {
	if slot < 1 || slot > MaxSlots {
		return ErrInvalidSlot
	}
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("delete slot %d: %w", slot, err)
	}
	return nil
}

// ListSlots returns every slot in order with metadata for the
// occupied ones.
func (s *Store) ListSlots() ([]SlotInfo, error) {
	rows, err := s.db.Query("SELECT slot, payload, saved_at FROM saves ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	found := map[int]*Metadata{}
	for rows.Next() {
		var slot int
		var payload string
		var savedAt int64
		if err := rows.Scan(&slot, &payload, &savedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		meta := &Metadata{SavedAt: time.UnixMilli(savedAt).UTC()}
		var snapshot struct {
			CharacterName string         `json:"characterName"`
			CurrentRoomID string         `json:"currentRoomId"`
			Stats         map[string]int `json:"stats"`
			GameStatus    game.Status    `json:"gameStatus"`
		}
		if err := json.Unmarshal([]byte(payload), &snapshot); err == nil {
			meta.CharacterName = snapshot.CharacterName
			meta.RoomID = snapshot.CurrentRoomID
			meta.Stats = snapshot.Stats
			meta.Status = snapshot.GameStatus
		}
		found[slot] = meta
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	infos := make([]SlotInfo, 0, MaxSlots)
	for slot := 1; slot <= MaxSlots; slot++ {
		infos = append(infos, SlotInfo{Slot: slot, Meta: found[slot]})
	}
	return infos, nil
}
