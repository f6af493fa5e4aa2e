package game

import "testing"

func TestMoveToConnectedRoom(t *testing.T) {
	engine, st := newTestEngine()

	result := engine.MoveTo("cellar")
	if !result.Moved || !result.FirstVisit {
		t.Fatalf("move = %+v; want a first visit to the cellar", result)
	}
	if st.CurrentRoomID != "cellar" || st.VisitedRooms["cellar"] != 1 {
		t.Errorf("room = %q visits = %d; want cellar once", st.CurrentRoomID, st.VisitedRooms["cellar"])
	}
	if st.RoomTransitions != 1 {
		t.Errorf("transitions = %d; want 1", st.RoomTransitions)
	}

	back := engine.MoveTo("hall")
	if !back.Moved || back.FirstVisit {
		t.Errorf("return move = %+v; want moved, not a first visit", back)
	}
	if st.VisitedRooms["hall"] != 2 {
		t.Errorf("hall visits = %d; want 2", st.VisitedRooms["hall"])
	}
}

func TestMoveToUnconnectedRoom(t *testing.T) {
	engine, st := newTestEngine()
	if result := engine.MoveTo("attic"); result.Moved {
		t.Error("moved to an unknown room")
	}
	if result := engine.MoveTo("hall"); result.Moved {
		t.Error("moved to the current, unconnected room")
	}
	if st.RoomTransitions != 0 {
		t.Errorf("transitions = %d; want 0 after refused moves", st.RoomTransitions)
	}
	if !engine.CanMoveTo("cellar") || engine.CanMoveTo("attic") {
		t.Error("CanMoveTo disagrees with the connection list")
	}
}

func TestAttemptSearchSuccessPendsReward(t *testing.T) {
	engine, st := newTestEngine(9)

	result := engine.AttemptSearch("hall-cabinet")
	if result == nil || !result.Check.Success {
		t.Fatalf("search = %+v; want success on a roll of 9", result)
	}
	if result.StoryKey != "cabinet-win" {
		t.Errorf("StoryKey = %q; want cabinet-win", result.StoryKey)
	}
	if !result.Completed || !st.CompletedEvents["hall-cabinet"] {
		t.Error("passed search not marked completed")
	}
	if !result.Pending || len(st.PendingItems["hall"]) != 1 {
		t.Errorf("reward should pend in default mode, got %+v", result)
	}
	if engine.HasItem("trinket") {
		t.Error("default mode granted the reward immediately")
	}
}

func TestAttemptSearchHardModeGrantsImmediately(t *testing.T) {
	engine, st := newTestEngine(9)
	st.Difficulty = DifficultyHard

	result := engine.AttemptSearch("hall-cabinet")
	if result.Pickup == nil || result.Pending {
		t.Fatalf("search = %+v; want an immediate pickup", result)
	}
	if !engine.HasItem("trinket") {
		t.Error("hard mode should grant the reward immediately")
	}
}

func TestAttemptSearchFailureStaysAvailable(t *testing.T) {
	engine, st := newTestEngine(2, 9)

	first := engine.AttemptSearch("hall-cabinet")
	if first == nil || first.Check.Success {
		t.Fatalf("first attempt = %+v; want failure on a roll of 2", first)
	}
	if first.StoryKey != "cabinet-loss" {
		t.Errorf("StoryKey = %q; want cabinet-loss", first.StoryKey)
	}
	if st.CompletedEvents["hall-cabinet"] {
		t.Fatal("failed search marked completed")
	}

	second := engine.AttemptSearch("hall-cabinet")
	if second == nil || !second.Check.Success {
		t.Fatalf("retry = %+v; want success on a roll of 9", second)
	}
}

func TestAttemptSearchTicksClockFirst(t *testing.T) {
	// The attempt costs a tick before the check resolves; at clock 1
	// that tick claims a body part.
	engine, st := newTestEngine(1, 9)
	st.ActiveCurses["ghost"] = true
	st.BodyMap["head"] = "ghost"
	st.CurseClock = 1

	result := engine.AttemptSearch("hall-cabinet")
	if result == nil || len(result.Progressions) != 1 {
		t.Fatalf("search = %+v; want one progression", result)
	}
	if result.Progressions[0].BodyPart != "arms" {
		t.Errorf("claimed %q; want arms", result.Progressions[0].BodyPart)
	}
	if !result.Check.Success {
		t.Error("check should still resolve after the tick")
	}
	if st.CurseClock != 4 {
		t.Errorf("clock = %d; want reset to 4", st.CurseClock)
	}
}

func TestAttemptSearchIneligible(t *testing.T) {
	engine, st := newTestEngine()
	st.CompletedEvents["hall-cabinet"] = true
	if result := engine.AttemptSearch("hall-cabinet"); result != nil {
		t.Errorf("completed search ran again: %+v", result)
	}
	if result := engine.AttemptSearch("no-such-search"); result != nil {
		t.Errorf("unknown search ran: %+v", result)
	}
}

func TestSearchForHiddenAreasEasesThreshold(t *testing.T) {
	// Keen eye 2 against threshold 5: roll with advantage. Each failed
	// sweep lowers the next threshold by one.
	engine, st := newTestEngine(1, 2, 3, 1, 3, 2)

	first := engine.SearchForHiddenAreas()
	if first == nil || first.Discovered {
		t.Fatalf("first sweep = %+v; want a miss on best roll 2", first)
	}
	if first.Check.Threshold != 5 || first.Check.Best != 2 {
		t.Errorf("first check = %+v; want threshold 5, best 2", first.Check)
	}

	second := engine.SearchForHiddenAreas()
	if second.Discovered || second.Check.Threshold != 4 {
		t.Fatalf("second sweep = %+v; want a miss at threshold 4", second)
	}

	third := engine.SearchForHiddenAreas()
	if !third.Discovered || third.Check.Threshold != 3 {
		t.Fatalf("third sweep = %+v; want a find at threshold 3", third)
	}
	if !st.DiscoveredHiddenAreas["hall-alcove"] {
		t.Error("discovery not recorded")
	}
	if !third.Pending || len(st.PendingItems["hall"]) != 1 {
		t.Errorf("reward should pend, got %+v", third)
	}

	if again := engine.SearchForHiddenAreas(); again != nil {
		t.Errorf("sweep with nothing left = %+v; want nil", again)
	}
}

func TestSearchForHiddenAreasThresholdFloor(t *testing.T) {
	engine, st := newTestEngine()
	st.SearchAttempts["hall"] = 10

	result := engine.SearchForHiddenAreas()
	if result == nil || !result.Check.Automatic {
		t.Fatalf("sweep = %+v; want automatic success at the floor threshold", result)
	}
	if result.Check.Threshold != 1 {
		t.Errorf("threshold = %d; want floor of 1", result.Check.Threshold)
	}
	if !result.Discovered {
		t.Error("automatic success should discover the area")
	}
}

func TestClaimPendingItems(t *testing.T) {
	engine, st := newTestEngine(1)
	st.PendingItems["hall"] = []string{"trinket", "locket"}

	results := engine.ClaimPendingItems()
	if len(results) != 2 {
		t.Fatalf("claims = %+v; want two pickups", results)
	}
	if !engine.HasItem("trinket") || !engine.HasItem("locket") {
		t.Error("claimed items missing from inventory")
	}
	if len(st.PendingItems["hall"]) != 0 {
		t.Errorf("pending = %v; want empty", st.PendingItems["hall"])
	}
	// The cursed locket bites on claim.
	if !st.ActiveCurses["ghost"] {
		t.Error("claiming the locket should apply its curse")
	}

	if again := engine.ClaimPendingItems(); again != nil {
		t.Errorf("second claim = %+v; want nil", again)
	}
}
