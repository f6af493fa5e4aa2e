package game

import (
	"github.com/mveiss/hollow-manor/internal/content"
	"github.com/mveiss/hollow-manor/internal/dice"
)

// EncounterResult is the structured outcome of resolving an event.
type EncounterResult struct {
	Event    string
	Check    *dice.Result
	StoryKey string

	// Success side effects.
	FlagSet     string
	RewardItems []string
	Pending     bool // rewards waiting in the room's pending pile
	Pickups     []PickupResult
	Victory     bool
	Completed   bool

	// Failure side effects.
	Curse             *CurseResult
	ExtraProgressions []Progression
}

// ResolveEvent runs an event's stat check and applies its effects.
//
// Success sets the effect flag, surfaces reward items (granted
// immediately in hard mode, pending otherwise), may win the game, and
// marks the event completed. Failure applies the failure curse, if
// any, and — unless the curse was blocked by protection — costs one
// extra curse-clock tick on top of the passive per-room tick: failing
// a fight is wasted time in danger.
func (e *Engine) ResolveEvent(ev content.Event) *EncounterResult {
	st := e.state
	if st.GameStatus != StatusPlaying {
		return nil
	}
	if !e.EventAvailable(ev) {
		return nil
	}

	result := &EncounterResult{Event: ev.ID, StoryKey: ev.StoryKey}

	success := true
	if ev.Check != nil {
		check := e.PerformStatCheck(ev.Check.Stat, ev.Check.Difficulty)
		result.Check = &check
		success = check.Success
		if success {
			result.StoryKey = ev.Check.SuccessStory
		} else {
			result.StoryKey = ev.Check.FailureStory
		}
	}

	if success {
		e.applySuccessEffect(ev, result)
		return result
	}

	if ev.FailureEffect != nil && ev.FailureEffect.Curse != "" {
		result.Curse = e.ApplyCurse(ev.FailureEffect.Curse)
	}
	if result.Curse == nil || result.Curse.Outcome != CurseBlocked {
		result.ExtraProgressions = e.ProgressCurses()
	}
	return result
}

func (e *Engine) applySuccessEffect(ev content.Event, result *EncounterResult) {
	st := e.state
	st.CompletedEvents[ev.ID] = true
	result.Completed = true

	effect := ev.SuccessEffect
	if effect == nil {
		return
	}
	if effect.Flag != "" {
		st.Flags[effect.Flag] = true
		result.FlagSet = effect.Flag
	}
	if len(effect.Items) > 0 {
		result.RewardItems = effect.Items
		if st.Difficulty == DifficultyHard {
			for _, itemID := range effect.Items {
				if picked := e.AddItem(itemID); picked != nil {
					result.Pickups = append(result.Pickups, *picked)
				}
			}
		} else {
			st.PendingItems[st.CurrentRoomID] = append(st.PendingItems[st.CurrentRoomID], effect.Items...)
			result.Pending = true
		}
	}
	if effect.Victory {
		st.GameStatus = StatusWon
		result.Victory = true
	}
}

// ResolveEventByID resolves an event from the current room.
func (e *Engine) ResolveEventByID(eventID string) *EncounterResult {
	room, ok := e.CurrentRoom()
	if !ok {
		return nil
	}
	for _, ev := range room.Events {
		if ev.ID == eventID && isActionTrigger(ev) {
			return e.ResolveEvent(ev)
		}
	}
	return nil
}
