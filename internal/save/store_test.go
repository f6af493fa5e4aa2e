package save

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mveiss/hollow-manor/internal/game"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleState() *game.State {
	st := game.NewState()
	st.CharacterName = "Wren"
	st.Stats[game.StatCharm] = 4
	st.CurrentRoomID = "library"
	st.VisitedRooms["library"] = 1
	st.Inventory = []string{"cellar-key"}
	return st
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	st := sampleState()

	if err := store.Save(1, st); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(1, &scriptRoller{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.CharacterName != "Wren" || loaded.CurrentRoomID != "library" {
		t.Errorf("loaded = %q in %q; want Wren in library", loaded.CharacterName, loaded.CurrentRoomID)
	}
	if loaded.Stats[game.StatCharm] != 4 {
		t.Errorf("charm = %d; want 4", loaded.Stats[game.StatCharm])
	}
	if len(loaded.Inventory) != 1 || loaded.Inventory[0] != "cellar-key" {
		t.Errorf("inventory = %v; want the cellar key", loaded.Inventory)
	}
}

func TestStoreLoadEmptySlot(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Load(2, &scriptRoller{}); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("err = %v; want ErrSlotEmpty", err)
	}
}

func TestStoreSlotRange(t *testing.T) {
	store := newTestStore(t)
	st := sampleState()

	if err := store.Save(0, st); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("save slot 0 err = %v; want ErrInvalidSlot", err)
	}
	if err := store.Save(MaxSlots+1, st); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("save slot %d err = %v; want ErrInvalidSlot", MaxSlots+1, err)
	}
	if _, err := store.Load(MaxSlots+1, &scriptRoller{}); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("load err = %v; want ErrInvalidSlot", err)
	}
	if err := store.Delete(-1); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("delete err = %v; want ErrInvalidSlot", err)
	}
}

func TestStoreOverwriteSlot(t *testing.T) {
	store := newTestStore(t)
	st := sampleState()
	if err := store.Save(1, st); err != nil {
		t.Fatalf("first save: %v", err)
	}

	st.CurrentRoomID = "cellar"
	st.RoomTransitions = 5
	if err := store.Save(1, st); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.Load(1, &scriptRoller{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.CurrentRoomID != "cellar" || loaded.RoomTransitions != 5 {
		t.Errorf("loaded %q after %d transitions; want the overwritten snapshot", loaded.CurrentRoomID, loaded.RoomTransitions)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(1, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(1, &scriptRoller{}); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("err = %v; want ErrSlotEmpty after delete", err)
	}
	if err := store.Delete(1); err != nil {
		t.Errorf("deleting an empty slot: %v; want nil", err)
	}
}

func TestStoreListSlots(t *testing.T) {
	store := newTestStore(t)
	first := sampleState()
	third := sampleState()
	third.CharacterName = "Moss"
	third.GameStatus = game.StatusWon

	if err := store.Save(1, first); err != nil {
		t.Fatalf("save slot 1: %v", err)
	}
	if err := store.Save(3, third); err != nil {
		t.Fatalf("save slot 3: %v", err)
	}

	infos, err := store.ListSlots()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != MaxSlots {
		t.Fatalf("len = %d; want %d entries", len(infos), MaxSlots)
	}
	if infos[0].Meta == nil || infos[0].Meta.CharacterName != "Wren" {
		t.Errorf("slot 1 meta = %+v; want Wren", infos[0].Meta)
	}
	if infos[1].Meta != nil {
		t.Errorf("slot 2 meta = %+v; want nil for an empty slot", infos[1].Meta)
	}
	if infos[2].Meta == nil || infos[2].Meta.Status != game.StatusWon {
		t.Errorf("slot 3 meta = %+v; want a won game", infos[2].Meta)
	}
	if infos[0].Meta.SavedAt.IsZero() {
		t.Error("saved-at timestamp missing")
	}
}
