package save

import (
	"sort"

	"github.com/mveiss/hollow-manor/internal/dice"
	"github.com/mveiss/hollow-manor/internal/game"
)

// Migrate upgrades a decoded save blob of any historical shape to the
// current schema. It is idempotent, tolerates any subset of missing
// fields, and never fails on a syntactically valid older blob: fields
// absent from the blob keep their freshly-initialized defaults.
//
// Two legacy shapes are handled beyond simple missing fields:
//
//   - activeCurses entries that are objects (the per-curse timer
//     schema) collapse to plain membership; their currentStage
//     counters are replayed through the claim algorithm when the blob
//     predates the body map. The replay re-randomizes which parts are
//     claimed — an accepted non-bit-exact restore.
//   - A missing curseClock starts at the interval when any curse is
//     active, otherwise stays 0.
func Migrate(raw map[string]any, roller dice.Roller) *game.State {
	st := game.NewState()
	if raw == nil {
		return st
	}

	if v, ok := asString(raw["characterName"]); ok {
		st.CharacterName = v
	}
	if stats, ok := asIntMap(raw["stats"]); ok {
		for name, value := range stats {
			st.Stats[name] = value
		}
	}
	if v, ok := asBool(raw["bonusApplied"]); ok {
		st.BonusApplied = v
	}
	if v, ok := asStringSlice(raw["inventory"]); ok {
		st.Inventory = v
	}
	if v, ok := asStringSlice(raw["equipped"]); ok {
		st.Equipped = v
	}
	if v, ok := asString(raw["currentRoomId"]); ok {
		st.CurrentRoomID = v
	}
	if v, ok := asIntMap(raw["visitedRooms"]); ok {
		st.VisitedRooms = v
	}
	if v, ok := asInt(raw["roomTransitions"]); ok {
		st.RoomTransitions = v
	}
	if v, ok := asBoolSet(raw["discoveredHiddenAreas"]); ok {
		st.DiscoveredHiddenAreas = v
	}
	if v, ok := asBoolSet(raw["flags"]); ok {
		st.Flags = v
	}
	if v, ok := asBoolSet(raw["completedEvents"]); ok {
		st.CompletedEvents = v
	}
	if v, ok := asString(raw["gameStatus"]); ok {
		switch game.Status(v) {
		case game.StatusPlaying, game.StatusWon, game.StatusGameOver:
			st.GameStatus = game.Status(v)
		}
	}
	if v, ok := asIntMap(raw["searchAttempts"]); ok {
		st.SearchAttempts = v
	}
	if v, ok := asString(raw["difficulty"]); ok {
		switch game.Difficulty(v) {
		case game.DifficultyStory, game.DifficultyDefault, game.DifficultyHard:
			st.Difficulty = game.Difficulty(v)
		}
	}
	if v, ok := raw["pendingItems"].(map[string]any); ok {
		for roomID, items := range v {
			if ids, ok := asStringSlice(items); ok {
				st.PendingItems[roomID] = ids
			}
		}
	}
	if v, ok := asInt(raw["curseClockInterval"]); ok && v > 0 {
		st.CurseClockInterval = v
	}
	if v, ok := asInt(raw["itemSeed"]); ok {
		st.ItemSeed = int64(v)
	}
	if placements, ok := raw["itemPlacements"].(map[string]any); ok {
		for k, v := range placements {
			if s, ok := asString(v); ok {
				st.ItemPlacements[k] = s
			}
		}
	}

	legacyStages := migrateActiveCurses(raw["activeCurses"], st)
	migrateBodyMap(raw["bodyMap"], legacyStages, st, roller)
	migrateCurseClock(raw["curseClock"], st)

	if st.BodyMapOccupiedCount() >= len(game.BodyParts) {
		st.GameStatus = game.StatusGameOver
	}
	return st
}

// migrateActiveCurses fills the membership set from either schema
// generation and returns any legacy per-curse stage counters.
func migrateActiveCurses(raw any, st *game.State) map[string]int {
	curses, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	stages := map[string]int{}
	for id, value := range curses {
		switch v := value.(type) {
		case bool:
			if v {
				st.ActiveCurses[id] = true
			}
		case map[string]any:
			// Oldest schema: per-curse timer objects. Presence means
			// active unless explicitly flagged off.
			if active, ok := asBool(v["active"]); ok && !active {
				continue
			}
			st.ActiveCurses[id] = true
			if stage, ok := asInt(v["currentStage"]); ok && stage > 0 {
				stages[id] = stage
			}
		default:
			st.ActiveCurses[id] = true
		}
	}
	return stages
}

// migrateBodyMap restores the body map, or reconstructs it from legacy
// stage counters by replaying random claims.
func migrateBodyMap(raw any, legacyStages map[string]int, st *game.State, roller dice.Roller) {
	if bodyMap, ok := raw.(map[string]any); ok {
		for _, part := range game.BodyParts {
			if curse, ok := asString(bodyMap[part]); ok {
				st.BodyMap[part] = curse
			}
		}
		return
	}
	for _, curseID := range sortedKeys(legacyStages) {
		for i := 0; i < legacyStages[curseID]; i++ {
			if _, ok := st.ClaimClearZone(curseID, roller); !ok {
				break
			}
		}
	}
}

// migrateCurseClock restores the shared clock, starting it at the
// interval for pre-clock saves with any active curse.
func migrateCurseClock(raw any, st *game.State) {
	if v, ok := asInt(raw); ok {
		if len(st.ActiveCurses) == 0 {
			st.CurseClock = 0
		} else if v >= 0 {
			st.CurseClock = v
		}
		return
	}
	if len(st.ActiveCurses) > 0 {
		st.CurseClock = st.CurseClockInterval
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt accepts float64 (the JSON number type) and int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func asStringSlice(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func asIntMap(v any) (map[string]int, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]int, len(m))
	for k, value := range m {
		if n, ok := asInt(value); ok {
			out[k] = n
		}
	}
	return out, true
}

// asBoolSet accepts either the current map form or a legacy list form.
func asBoolSet(v any) (map[string]bool, bool) {
	switch set := v.(type) {
	case map[string]any:
		out := make(map[string]bool, len(set))
		for k, value := range set {
			if b, ok := asBool(value); ok {
				if b {
					out[k] = true
				}
				continue
			}
			out[k] = true
		}
		return out, true
	case []any:
		out := make(map[string]bool, len(set))
		for _, item := range set {
			if s, ok := item.(string); ok {
				out[s] = true
			}
		}
		return out, true
	default:
		return nil, false
	}
}
