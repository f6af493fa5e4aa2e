package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads rooms, items, and curses from a content directory. Each
// table lives in its own file (rooms.yaml, items.yaml, curses.yaml,
// with .json accepted — YAML is a superset) as a mapping of id to
// entity. Entity IDs default to their map key.
func Load(dir string) (*Store, error) {
	store := &Store{
		Rooms:  map[string]Room{},
		Items:  map[string]Item{},
		Curses: map[string]Curse{},
	}

	if err := loadTable(dir, "rooms", store.Rooms); err != nil {
		return nil, err
	}
	if err := loadTable(dir, "items", store.Items); err != nil {
		return nil, err
	}
	if err := loadTable(dir, "curses", store.Curses); err != nil {
		return nil, err
	}

	fillIDs(store)
	return store, nil
}

type identifiable interface {
	Room | Item | Curse
}

func loadTable[T identifiable](dir, name string, into map[string]T) error {
	data, err := readTableFile(dir, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, &into); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func readTableFile(dir, name string) ([]byte, error) {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return nil, fmt.Errorf("no %s table found in %s", name, dir)
}

func fillIDs(s *Store) {
	for id, r := range s.Rooms {
		if r.ID == "" {
			r.ID = id
			s.Rooms[id] = r
		}
	}
	for id, i := range s.Items {
		if i.ID == "" {
			i.ID = id
			s.Items[id] = i
		}
	}
	for id, c := range s.Curses {
		if c.ID == "" {
			c.ID = id
			s.Curses[id] = c
		}
	}
}

// Validate reports dangling references between tables. Content is
// externally authored and may be incomplete during development, so the
// engine treats missing ids as no-ops at runtime; Validate exists for
// authors who want to fail fast at load time.
func (s *Store) Validate() error {
	for id, room := range s.Rooms {
		for _, conn := range room.Connections {
			if _, ok := s.Rooms[conn]; !ok {
				return fmt.Errorf("room %q connects to unknown room %q", id, conn)
			}
		}
		for _, ev := range room.Events {
			if ev.FailureEffect != nil && ev.FailureEffect.Curse != "" {
				if _, ok := s.Curses[ev.FailureEffect.Curse]; !ok {
					return fmt.Errorf("event %q inflicts unknown curse %q", ev.ID, ev.FailureEffect.Curse)
				}
			}
			if ev.SuccessEffect != nil {
				for _, item := range ev.SuccessEffect.Items {
					if _, ok := s.Items[item]; !ok {
						return fmt.Errorf("event %q rewards unknown item %q", ev.ID, item)
					}
				}
			}
		}
		for _, search := range room.Searches {
			if search.ItemReward != "" {
				if _, ok := s.Items[search.ItemReward]; !ok {
					return fmt.Errorf("search %q rewards unknown item %q", search.ID, search.ItemReward)
				}
			}
		}
		for _, area := range room.HiddenAreas {
			if area.ItemReward != "" {
				if _, ok := s.Items[area.ItemReward]; !ok {
					return fmt.Errorf("hidden area %q rewards unknown item %q", area.ID, area.ItemReward)
				}
			}
		}
	}
	for id, curse := range s.Curses {
		if curse.ProtectiveItem != "" {
			if _, ok := s.Items[curse.ProtectiveItem]; !ok {
				return fmt.Errorf("curse %q names unknown protective item %q", id, curse.ProtectiveItem)
			}
		}
	}
	for id, item := range s.Items {
		if item.ProtectsFrom != "" {
			if _, ok := s.Curses[item.ProtectsFrom]; !ok {
				return fmt.Errorf("item %q protects from unknown curse %q", id, item.ProtectsFrom)
			}
		}
		if item.CurseEffect != nil {
			if _, ok := s.Curses[item.CurseEffect.Curse]; !ok {
				return fmt.Errorf("item %q inflicts unknown curse %q", id, item.CurseEffect.Curse)
			}
		}
	}
	return nil
}
