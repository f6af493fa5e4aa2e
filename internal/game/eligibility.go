package game

import "github.com/mveiss/hollow-manor/internal/content"

// MeetsRequirements evaluates an event requirements object against the
// current state. Every present field must hold; nil means eligible.
// VisitCount refers to the current room's visit count.
func (e *Engine) MeetsRequirements(req *content.Requirements) bool {
	if req == nil {
		return true
	}
	st := e.state
	if req.VisitCount > 0 && st.VisitedRooms[st.CurrentRoomID] < req.VisitCount {
		return false
	}
	if req.HasItem != "" && !e.HasItem(req.HasItem) {
		return false
	}
	if len(req.HasItems) > 0 && !e.HasAllItems(req.HasItems) {
		return false
	}
	if req.MissingItem != "" && e.HasItem(req.MissingItem) {
		return false
	}
	if req.HasFlag != "" && !st.Flags[req.HasFlag] {
		return false
	}
	if req.MissingFlag != "" && st.Flags[req.MissingFlag] {
		return false
	}
	if req.CompletedEvent != "" && !st.CompletedEvents[req.CompletedEvent] {
		return false
	}
	return true
}

// meetsSearchRequirements evaluates the narrower requirement subset
// searches support: hasItem, hasFlag, completedEvent.
func (e *Engine) meetsSearchRequirements(req *content.Requirements) bool {
	if req == nil {
		return true
	}
	if req.HasItem != "" && !e.HasItem(req.HasItem) {
		return false
	}
	if req.HasFlag != "" && !e.state.Flags[req.HasFlag] {
		return false
	}
	if req.CompletedEvent != "" && !e.state.CompletedEvents[req.CompletedEvent] {
		return false
	}
	return true
}

// EventAvailable reports whether an event can currently be attempted:
// not yet completed and requirements met.
func (e *Engine) EventAvailable(ev content.Event) bool {
	if e.state.CompletedEvents[ev.ID] {
		return false
	}
	return e.MeetsRequirements(ev.Requirements)
}

// SearchAvailable reports whether a search can currently be attempted.
func (e *Engine) SearchAvailable(s content.Search) bool {
	if e.state.CompletedEvents[s.ID] {
		return false
	}
	return e.meetsSearchRequirements(s.Requirements)
}

// AvailableEvents lists the action-trigger events currently eligible
// in the room.
func (e *Engine) AvailableEvents(roomID string) []content.Event {
	room, ok := e.content.Room(roomID)
	if !ok {
		return nil
	}
	var events []content.Event
	for _, ev := range room.Events {
		if isActionTrigger(ev) && e.EventAvailable(ev) {
			events = append(events, ev)
		}
	}
	return events
}

// AvailableSearches lists the searches currently eligible in the room.
func (e *Engine) AvailableSearches(roomID string) []content.Search {
	room, ok := e.content.Room(roomID)
	if !ok {
		return nil
	}
	var searches []content.Search
	for _, s := range room.Searches {
		if e.SearchAvailable(s) {
			searches = append(searches, s)
		}
	}
	return searches
}

// UndiscoveredHiddenAreas lists the room's hidden areas not yet found.
func (e *Engine) UndiscoveredHiddenAreas(roomID string) []content.HiddenArea {
	room, ok := e.content.Room(roomID)
	if !ok {
		return nil
	}
	var areas []content.HiddenArea
	for _, area := range room.HiddenAreas {
		if !e.state.DiscoveredHiddenAreas[area.ID] {
			areas = append(areas, area)
		}
	}
	return areas
}

// roomContentDone reports whether nothing actionable remains: no
// incomplete-and-eligible action events, no incomplete searches, no
// completed search with an unclaimed reward, no undiscovered hidden
// area.
func (e *Engine) roomContentDone(room content.Room) bool {
	for _, ev := range room.Events {
		if isActionTrigger(ev) && e.EventAvailable(ev) {
			return false
		}
	}
	for _, s := range room.Searches {
		if !e.state.CompletedEvents[s.ID] {
			return false
		}
	}
	if len(e.state.PendingItems[room.ID]) > 0 {
		return false
	}
	for _, area := range room.HiddenAreas {
		if !e.state.DiscoveredHiddenAreas[area.ID] {
			return false
		}
	}
	return true
}

// IsRoomFullyCleared reports, for display, whether a room both had
// actionable content and has none left.
func (e *Engine) IsRoomFullyCleared(roomID string) bool {
	room, ok := e.content.Room(roomID)
	if !ok {
		return false
	}
	hadContent := len(room.Searches) > 0 || len(room.HiddenAreas) > 0
	if !hadContent {
		for _, ev := range room.Events {
			if isActionTrigger(ev) {
				hadContent = true
				break
			}
		}
	}
	return hadContent && e.roomContentDone(room)
}

// isActionTrigger reports whether an event is triggered by an explicit
// player action. An empty trigger defaults to "action".
func isActionTrigger(ev content.Event) bool {
	return ev.Trigger == "" || ev.Trigger == "action"
}
