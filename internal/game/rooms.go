package game

import (
	"github.com/mveiss/hollow-manor/internal/content"
	"github.com/mveiss/hollow-manor/internal/dice"
)

// MoveResult reports a room transition and any curse progression it
// triggered.
type MoveResult struct {
	Moved        bool
	FirstVisit   bool
	Progressions []Progression
}

// SearchResult reports an active search attempt.
type SearchResult struct {
	Search       string
	Check        *dice.Result
	StoryKey     string
	RewardItem   string
	Pending      bool // reward waiting in the room's pending pile
	Pickup       *PickupResult
	Completed    bool
	Progressions []Progression
}

// HiddenSearchResult reports a passive sweep for hidden areas.
type HiddenSearchResult struct {
	Area       string
	Check      dice.PassiveResult
	Discovered bool
	StoryKey   string
	RewardItem string
	Pending    bool
	Pickup     *PickupResult
}

// CurrentRoom returns the room the player occupies.
func (e *Engine) CurrentRoom() (content.Room, bool) {
	return e.content.Room(e.state.CurrentRoomID)
}

// CanMoveTo reports whether the target is connected to the current
// room.
func (e *Engine) CanMoveTo(roomID string) bool {
	room, ok := e.CurrentRoom()
	if !ok {
		return false
	}
	for _, conn := range room.Connections {
		if conn == roomID {
			return true
		}
	}
	return false
}

// MoveTo transitions to a connected room, bumps the visit counters,
// and advances the curse clock. Terminal sessions and unknown or
// unconnected rooms are no-ops.
func (e *Engine) MoveTo(roomID string) MoveResult {
	st := e.state
	if st.GameStatus != StatusPlaying {
		return MoveResult{}
	}
	if _, ok := e.content.Room(roomID); !ok || !e.CanMoveTo(roomID) {
		return MoveResult{}
	}

	st.CurrentRoomID = roomID
	first := st.VisitedRooms[roomID] == 0
	st.VisitedRooms[roomID]++
	st.RoomTransitions++

	return MoveResult{
		Moved:        true,
		FirstVisit:   first,
		Progressions: e.ProgressCurses(),
	}
}

// AttemptSearch runs one search attempt in the current room. Every
// attempt costs a curse-clock tick. A passed check (or a check-less
// search) completes the search and yields its reward: granted
// immediately in hard mode, otherwise left in the room's pending pile
// for the player to claim. Failed searches stay available.
func (e *Engine) AttemptSearch(searchID string) *SearchResult {
	st := e.state
	if st.GameStatus != StatusPlaying {
		return nil
	}
	room, ok := e.CurrentRoom()
	if !ok {
		return nil
	}
	var search *content.Search
	for i := range room.Searches {
		if room.Searches[i].ID == searchID {
			search = &room.Searches[i]
			break
		}
	}
	if search == nil || !e.SearchAvailable(*search) {
		return nil
	}

	result := &SearchResult{Search: searchID, StoryKey: search.StoryKey}
	result.Progressions = e.ProgressCurses()

	passed := true
	if search.Check != nil {
		check := e.PerformStatCheck(search.Check.Stat, search.Check.Difficulty)
		result.Check = &check
		passed = check.Success
		if passed {
			result.StoryKey = search.Check.SuccessStory
		} else {
			result.StoryKey = search.Check.FailureStory
		}
	}
	if !passed {
		return result
	}

	st.CompletedEvents[searchID] = true
	result.Completed = true
	if search.ItemReward != "" {
		result.RewardItem = search.ItemReward
		if st.Difficulty == DifficultyHard {
			result.Pickup = e.AddItem(search.ItemReward)
		} else {
			st.PendingItems[room.ID] = append(st.PendingItems[room.ID], search.ItemReward)
			result.Pending = true
		}
	}
	return result
}

// SearchForHiddenAreas sweeps the current room for its first
// undiscovered hidden area with a passive keen-eye check. Each failed
// sweep eases the room's future thresholds by one, to a floor of 1.
func (e *Engine) SearchForHiddenAreas() *HiddenSearchResult {
	st := e.state
	if st.GameStatus != StatusPlaying {
		return nil
	}
	areas := e.UndiscoveredHiddenAreas(st.CurrentRoomID)
	if len(areas) == 0 {
		return nil
	}
	area := areas[0]

	threshold := area.Threshold - st.SearchAttempts[st.CurrentRoomID]
	if threshold < 1 {
		threshold = 1
	}
	check := e.PerformPassiveKeenEyeCheck(threshold)
	result := &HiddenSearchResult{Area: area.ID, Check: check, StoryKey: area.StoryKey}
	if !check.Success {
		st.SearchAttempts[st.CurrentRoomID]++
		return result
	}

	st.DiscoveredHiddenAreas[area.ID] = true
	result.Discovered = true
	if area.ItemReward != "" {
		result.RewardItem = area.ItemReward
		if st.Difficulty == DifficultyHard {
			result.Pickup = e.AddItem(area.ItemReward)
		} else {
			st.PendingItems[st.CurrentRoomID] = append(st.PendingItems[st.CurrentRoomID], area.ItemReward)
			result.Pending = true
		}
	}
	return result
}

// ClaimPendingItems moves the current room's pending rewards into the
// inventory. Cursed rewards bite on claim, not on discovery.
func (e *Engine) ClaimPendingItems() []PickupResult {
	st := e.state
	pending := st.PendingItems[st.CurrentRoomID]
	if len(pending) == 0 {
		return nil
	}
	delete(st.PendingItems, st.CurrentRoomID)

	var results []PickupResult
	for _, itemID := range pending {
		if picked := e.AddItem(itemID); picked != nil {
			results = append(results, *picked)
		}
	}
	return results
}
