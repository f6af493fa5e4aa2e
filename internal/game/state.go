// Package game implements the rules engine: the player state
// aggregate, the curse progression subsystem, event eligibility, and
// encounter resolution. All randomness flows through an injected
// dice.Roller and all expected outcomes (failed checks, blocked
// curses, ineligible events) are ordinary return values, never errors.
package game

import (
	"github.com/mveiss/hollow-manor/internal/content"
	"github.com/mveiss/hollow-manor/internal/dice"
)

// Difficulty selects the game mode.
type Difficulty string

const (
	DifficultyStory   Difficulty = "story"
	DifficultyDefault Difficulty = "default"
	DifficultyHard    Difficulty = "hard"
)

// Status is the game lifecycle state. Won and game over are terminal:
// no further room transitions or curse progression are processed.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusWon      Status = "won"
	StatusGameOver Status = "gameOver"
)

// Stat names.
const (
	StatGrit    = "grit"
	StatKeenEye = "keenEye"
	StatCharm   = "charm"
)

// StatNames lists the three stats in display order.
var StatNames = []string{StatGrit, StatKeenEye, StatCharm}

// BodyParts lists the four body-map slots in a stable order.
var BodyParts = []string{"head", "arms", "body", "legs"}

const (
	statBase    = 2
	statSpread  = 3 // base values roll uniformly in [2,4]
	statSoftCap = 5

	defaultClockInterval = 4
	hardClockInterval    = 3
)

// State is the mutable player-state aggregate. One instance exists per
// session; it is passed explicitly, never held as a package singleton.
type State struct {
	CharacterName string         `json:"characterName"`
	Stats         map[string]int `json:"stats"`
	BonusApplied  bool           `json:"bonusApplied"`

	Inventory []string `json:"inventory"`
	Equipped  []string `json:"equipped"`

	CurrentRoomID   string         `json:"currentRoomId"`
	VisitedRooms    map[string]int `json:"visitedRooms"`
	RoomTransitions int            `json:"roomTransitions"`

	DiscoveredHiddenAreas map[string]bool `json:"discoveredHiddenAreas"`

	// BodyMap maps each of the four body-part slots to the curse id
	// holding it, or "" while unclaimed. Every non-empty value has a
	// matching key in ActiveCurses.
	BodyMap      map[string]string `json:"bodyMap"`
	ActiveCurses map[string]bool   `json:"activeCurses"`

	// CurseClock counts rooms remaining until the next curse advances.
	// It is positive only while at least one curse is active.
	CurseClock         int `json:"curseClock"`
	CurseClockInterval int `json:"curseClockInterval"`

	Flags           map[string]bool `json:"flags"`
	CompletedEvents map[string]bool `json:"completedEvents"`

	GameStatus Status `json:"gameStatus"`

	// SearchAttempts counts failed hidden-area searches per room; each
	// failure eases the next attempt's threshold.
	SearchAttempts map[string]int `json:"searchAttempts"`

	Difficulty Difficulty `json:"difficulty"`

	// PendingItems holds discovered-but-unclaimed rewards per room.
	// Hard mode grants rewards immediately and never populates it.
	PendingItems map[string][]string `json:"pendingItems"`

	// Randomized item placement is not part of the engine; these are
	// carried as neutral placeholders for save compatibility.
	ItemSeed       int64             `json:"itemSeed"`
	ItemPlacements map[string]string `json:"itemPlacements"`
}

// NewState returns a freshly initialized state with every collection
// allocated and defaults applied. Load merges saved fields onto this.
func NewState() *State {
	bodyMap := make(map[string]string, len(BodyParts))
	for _, part := range BodyParts {
		bodyMap[part] = ""
	}
	return &State{
		Stats:                 map[string]int{StatGrit: statBase, StatKeenEye: statBase, StatCharm: statBase},
		Inventory:             []string{},
		Equipped:              []string{},
		VisitedRooms:          map[string]int{},
		DiscoveredHiddenAreas: map[string]bool{},
		BodyMap:               bodyMap,
		ActiveCurses:          map[string]bool{},
		CurseClockInterval:    defaultClockInterval,
		Flags:                 map[string]bool{},
		CompletedEvents:       map[string]bool{},
		GameStatus:            StatusPlaying,
		SearchAttempts:        map[string]int{},
		Difficulty:            DifficultyDefault,
		PendingItems:          map[string][]string{},
		ItemPlacements:        map[string]string{},
	}
}

// BodyMapOccupiedCount returns how many body-part slots are claimed.
func (st *State) BodyMapOccupiedCount() int {
	count := 0
	for _, part := range BodyParts {
		if st.BodyMap[part] != "" {
			count++
		}
	}
	return count
}

// CurseStage returns how many body parts the given curse holds.
func (st *State) CurseStage(curseID string) int {
	stage := 0
	for _, part := range BodyParts {
		if st.BodyMap[part] == curseID {
			stage++
		}
	}
	return stage
}

// ClaimClearZone assigns one currently-unclaimed body part to the
// curse, picked uniformly at random. It is a no-op when every slot is
// already claimed; a curse never contests a part held by another.
func (st *State) ClaimClearZone(curseID string, roller dice.Roller) (string, bool) {
	var free []string
	for _, part := range BodyParts {
		if st.BodyMap[part] == "" {
			free = append(free, part)
		}
	}
	if len(free) == 0 {
		return "", false
	}
	part := free[roller.Die(len(free))-1]
	st.BodyMap[part] = curseID
	return part, true
}

// Engine binds a state to the content store and random source and
// exposes every rule of the game. The UI layer only calls Engine
// methods and reads the state it returns.
type Engine struct {
	content *content.Store
	roller  dice.Roller
	state   *State
}

// New creates an engine with no active session. Call NewGame or
// Restore before anything else.
func New(store *content.Store, roller dice.Roller) *Engine {
	return &Engine{content: store, roller: roller}
}

// Content exposes the read-only content store.
func (e *Engine) Content() *content.Store {
	return e.content
}

// State returns the live session state.
func (e *Engine) State() *State {
	return e.state
}

// NewGame starts a fresh session. Each base stat is rolled uniformly
// in [2,4]; the curse clock interval depends on difficulty.
func (e *Engine) NewGame(name string, diff Difficulty, startRoom string) *State {
	st := NewState()
	st.CharacterName = name
	st.Difficulty = diff
	for _, stat := range StatNames {
		st.Stats[stat] = statBase + e.roller.Die(statSpread) - 1
	}
	if diff == DifficultyHard {
		st.CurseClockInterval = hardClockInterval
	}
	st.CurrentRoomID = startRoom
	st.VisitedRooms[startRoom] = 1
	e.state = st
	return st
}

// Restore replaces the live state wholesale, typically after a load.
func (e *Engine) Restore(st *State) {
	e.state = st
}

// ApplyBonusPoint raises one stat by a single point, once per session,
// up to the soft cap of 5. Returns false without mutating on a repeat
// call, an unknown stat, or a capped stat.
func (e *Engine) ApplyBonusPoint(stat string) bool {
	st := e.state
	if st.BonusApplied {
		return false
	}
	value, ok := st.Stats[stat]
	if !ok || value >= statSoftCap {
		return false
	}
	st.Stats[stat] = value + 1
	st.BonusApplied = true
	return true
}

// EffectiveStat returns the base stat adjusted by equipped items.
// Equipment can push the effective value past the soft cap.
func (e *Engine) EffectiveStat(stat string) int {
	value := e.state.Stats[stat]
	for _, id := range e.state.Equipped {
		item, ok := e.content.Item(id)
		if !ok {
			continue
		}
		if item.StatBoost != nil && item.StatBoost.Stat == stat {
			value += item.StatBoost.Amount
		}
		if item.StatPenalty != nil && item.StatPenalty.Stat == stat {
			value -= item.StatPenalty.Amount
		}
	}
	return value
}

// PerformStatCheck rolls a d20 check against the effective stat.
func (e *Engine) PerformStatCheck(stat string, difficulty int) dice.Result {
	return dice.Check(e.roller, stat, e.EffectiveStat(stat), difficulty)
}

// PerformPassiveKeenEyeCheck resolves a passive perception check:
// automatic success when effective keen eye meets the threshold,
// otherwise a roll with advantage.
func (e *Engine) PerformPassiveKeenEyeCheck(threshold int) dice.PassiveResult {
	return dice.PassiveCheck(e.roller, e.EffectiveStat(StatKeenEye), threshold)
}

// HasFlag reports whether a flag is set.
func (e *Engine) HasFlag(name string) bool {
	return e.state.Flags[name]
}

// SetFlag sets a flag.
func (e *Engine) SetFlag(name string) {
	e.state.Flags[name] = true
}

// IsEventCompleted reports whether an event (or search) id has been
// completed this session.
func (e *Engine) IsEventCompleted(id string) bool {
	return e.state.CompletedEvents[id]
}

// IsHiddenAreaDiscovered reports whether a hidden area has been found.
func (e *Engine) IsHiddenAreaDiscovered(id string) bool {
	return e.state.DiscoveredHiddenAreas[id]
}

// GetBodyMapOccupiedCount reports how many body-part slots are claimed.
func (e *Engine) GetBodyMapOccupiedCount() int {
	return e.state.BodyMapOccupiedCount()
}

// GetCurseStage reports how many body parts the curse holds.
func (e *Engine) GetCurseStage(curseID string) int {
	return e.state.CurseStage(curseID)
}

// GetPendingItems lists unclaimed discovered items for a room.
func (e *Engine) GetPendingItems(roomID string) []string {
	return e.state.PendingItems[roomID]
}
