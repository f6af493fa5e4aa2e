package game

import "sort"

// CurseOutcome reports what ApplyCurse did.
type CurseOutcome string

const (
	CurseApplied       CurseOutcome = "applied"
	CurseBlocked       CurseOutcome = "blocked"
	CurseAlreadyActive CurseOutcome = "alreadyActive"
	CurseStoryBlocked  CurseOutcome = "storyModeBlocked"
)

// CurseResult is the outcome of a curse application attempt.
type CurseResult struct {
	Curse    string
	Outcome  CurseOutcome
	BodyPart string // claimed part when Outcome is CurseApplied
}

// Progression records one curse advancing onto a body part.
type Progression struct {
	Curse    string
	BodyPart string
	Stage    int // parts held by the curse after this claim
	GameOver bool
}

// clockInterval is the difficulty-adjusted reset value for the shared
// curse clock. Story mode gets one extra tick of breathing room.
func (e *Engine) clockInterval() int {
	interval := e.state.CurseClockInterval
	if e.state.Difficulty == DifficultyStory {
		interval++
	}
	return interval
}

// ApplyCurse activates a curse: it claims one free body part at once
// and starts the shared clock if it was not already running.
//
// No state changes when the player holds the matching protective item
// (blocked), when the curse is already active (idempotent), or when
// story mode already has a concurrent curse. Returns nil for a curse
// id absent from content.
func (e *Engine) ApplyCurse(curseID string) *CurseResult {
	curse, ok := e.content.Curse(curseID)
	if !ok {
		return nil
	}
	st := e.state

	if curse.ProtectiveItem != "" && e.HasItem(curse.ProtectiveItem) {
		return &CurseResult{Curse: curseID, Outcome: CurseBlocked}
	}
	if st.ActiveCurses[curseID] {
		return &CurseResult{Curse: curseID, Outcome: CurseAlreadyActive}
	}
	if st.Difficulty == DifficultyStory && len(st.ActiveCurses) > 0 {
		return &CurseResult{Curse: curseID, Outcome: CurseStoryBlocked}
	}

	st.ActiveCurses[curseID] = true
	part, _ := st.ClaimClearZone(curseID, e.roller)
	if st.CurseClock <= 0 {
		st.CurseClock = e.clockInterval()
	}
	e.checkBodyMapFull()

	return &CurseResult{Curse: curseID, Outcome: CurseApplied, BodyPart: part}
}

// ProgressCurses advances the shared curse clock by one tick. It runs
// once per room transition and once per search attempt, and does
// nothing while no curse is active.
//
// When the clock reaches zero, one active curse — picked uniformly at
// random, not round-robin — claims a free body part, and the clock
// resets to the interval. A full body map ends the game; the
// triggering progression carries the GameOver flag.
func (e *Engine) ProgressCurses() []Progression {
	st := e.state
	if len(st.ActiveCurses) == 0 || st.GameStatus != StatusPlaying {
		return nil
	}

	st.CurseClock--
	if st.CurseClock > 0 {
		return nil
	}

	var results []Progression
	curseID := e.pickActiveCurse()
	if part, ok := st.ClaimClearZone(curseID, e.roller); ok {
		result := Progression{
			Curse:    curseID,
			BodyPart: part,
			Stage:    st.CurseStage(curseID),
		}
		if e.checkBodyMapFull() {
			result.GameOver = true
		}
		results = append(results, result)
	}
	st.CurseClock = e.clockInterval()
	return results
}

// pickActiveCurse selects one active curse uniformly at random. Keys
// are sorted first so the pick depends only on the roller.
func (e *Engine) pickActiveCurse() string {
	ids := make([]string, 0, len(e.state.ActiveCurses))
	for id := range e.state.ActiveCurses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) == 1 {
		return ids[0]
	}
	return ids[e.roller.Die(len(ids))-1]
}

// checkBodyMapFull flags game over once all four slots are claimed.
func (e *Engine) checkBodyMapFull() bool {
	if e.state.BodyMapOccupiedCount() >= len(BodyParts) {
		e.state.GameStatus = StatusGameOver
		return true
	}
	return false
}

// RemoveCurse fully cures a curse: it leaves the active set and every
// body-map slot it holds is cleared. The shared clock stops only when
// no curses remain. Returns false if the curse was not active.
func (e *Engine) RemoveCurse(curseID string) bool {
	st := e.state
	if !st.ActiveCurses[curseID] {
		return false
	}
	delete(st.ActiveCurses, curseID)
	for _, part := range BodyParts {
		if st.BodyMap[part] == curseID {
			st.BodyMap[part] = ""
		}
	}
	if len(st.ActiveCurses) == 0 {
		st.CurseClock = 0
	}
	return true
}

// ActiveCurseIDs lists the active curses in a stable order.
func (e *Engine) ActiveCurseIDs() []string {
	ids := make([]string, 0, len(e.state.ActiveCurses))
	for id := range e.state.ActiveCurses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
