// Package content holds the read-only game content: rooms, items, and
// curses, keyed by string id. The engine never writes to it.
package content

// Requirements gates an event on player state. All present fields are
// ANDed; a nil Requirements means always eligible.
type Requirements struct {
	VisitCount     int      `yaml:"visitCount,omitempty"`     // current room visit count must be >= value
	HasItem        string   `yaml:"hasItem,omitempty"`
	HasItems       []string `yaml:"hasItems,omitempty"`
	MissingItem    string   `yaml:"missingItem,omitempty"`
	HasFlag        string   `yaml:"hasFlag,omitempty"`
	MissingFlag    string   `yaml:"missingFlag,omitempty"`
	CompletedEvent string   `yaml:"completedEvent,omitempty"`
}

// Check describes the stat check attached to an event or search.
type Check struct {
	Stat         string `yaml:"stat"`
	Difficulty   int    `yaml:"difficulty"`
	SuccessStory string `yaml:"successStory,omitempty"`
	FailureStory string `yaml:"failureStory,omitempty"`
}

// Effect describes what an event does on success or failure.
type Effect struct {
	Flag    string   `yaml:"flag,omitempty"`
	Items   []string `yaml:"items,omitempty"`
	Curse   string   `yaml:"curse,omitempty"`
	Victory bool     `yaml:"victory,omitempty"`
}

// Event is a player-triggered encounter in a room.
type Event struct {
	ID            string        `yaml:"id"`
	Trigger       string        `yaml:"trigger,omitempty"` // "action" when empty
	Name          string        `yaml:"name,omitempty"`
	StoryKey      string        `yaml:"storyKey,omitempty"`
	Requirements  *Requirements `yaml:"requirements,omitempty"`
	Check         *Check        `yaml:"check,omitempty"`
	SuccessEffect *Effect       `yaml:"successEffect,omitempty"`
	FailureEffect *Effect       `yaml:"failureEffect,omitempty"`
}

// Search is a repeatable-until-passed room search with an item reward.
// Its requirements support only hasItem, hasFlag, and completedEvent.
type Search struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name,omitempty"`
	StoryKey     string        `yaml:"storyKey,omitempty"`
	Requirements *Requirements `yaml:"requirements,omitempty"`
	Check        *Check        `yaml:"check,omitempty"`
	ItemReward   string        `yaml:"itemReward,omitempty"`
}

// HiddenArea is discovered through a passive keen-eye check.
type HiddenArea struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name,omitempty"`
	StoryKey   string `yaml:"storyKey,omitempty"`
	Threshold  int    `yaml:"threshold"`
	ItemReward string `yaml:"itemReward,omitempty"`
}

// Room is a location in the manor.
type Room struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Connections []string     `yaml:"connections,omitempty"`
	Events      []Event      `yaml:"events,omitempty"`
	Searches    []Search     `yaml:"searches,omitempty"`
	HiddenAreas []HiddenArea `yaml:"hiddenAreas,omitempty"`
}

// ItemType classifies an item.
type ItemType string

const (
	ItemKey        ItemType = "key"
	ItemQuest      ItemType = "quest"
	ItemProtective ItemType = "protective"
	ItemEquipment  ItemType = "equipment"
	ItemCursed     ItemType = "cursed"
)

// StatMod adjusts a stat while the item is equipped.
type StatMod struct {
	Stat   string `yaml:"stat"`
	Amount int    `yaml:"amount"`
}

// CurseLink ties a cursed item to the curse it inflicts on pickup.
type CurseLink struct {
	Curse string `yaml:"curse"`
}

// Item is a collectible object.
type Item struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Description  string     `yaml:"description,omitempty"`
	Type         ItemType   `yaml:"type"`
	StatBoost    *StatMod   `yaml:"statBoost,omitempty"`
	StatPenalty  *StatMod   `yaml:"statPenalty,omitempty"`
	ProtectsFrom string     `yaml:"protectsFrom,omitempty"`
	CurseEffect  *CurseLink `yaml:"curseEffect,omitempty"`
	CanEquip     bool       `yaml:"canEquip,omitempty"`
	EquipSlot    string     `yaml:"equipSlot,omitempty"`
	Consumable   bool       `yaml:"consumable,omitempty"`
}

// Curse is a progressive affliction that claims body parts over time.
type Curse struct {
	ID                   string            `yaml:"id"`
	Name                 string            `yaml:"name"`
	ProtectiveItem       string            `yaml:"protectiveItem,omitempty"`
	BodyPartDescriptions map[string]string `yaml:"bodyPartDescriptions,omitempty"`
}

// Store aggregates the three lookup tables.
type Store struct {
	Rooms  map[string]Room
	Items  map[string]Item
	Curses map[string]Curse
}

// Room looks up a room by id.
func (s *Store) Room(id string) (Room, bool) {
	r, ok := s.Rooms[id]
	return r, ok
}

// Item looks up an item by id.
func (s *Store) Item(id string) (Item, bool) {
	i, ok := s.Items[id]
	return i, ok
}

// Curse looks up a curse by id.
func (s *Store) Curse(id string) (Curse, bool) {
	c, ok := s.Curses[id]
	return c, ok
}
