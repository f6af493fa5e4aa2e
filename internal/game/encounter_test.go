package game

import (
	"testing"

	"github.com/mveiss/hollow-manor/internal/content"
)

func TestResolveEventSuccess(t *testing.T) {
	engine, st := newTestEngine(18)
	result := engine.ResolveEventByID("face-the-ghost")
	if result == nil {
		t.Fatal("resolve returned nil")
	}
	if !result.Check.Success {
		t.Fatalf("check = %+v; want success on a roll of 18", result.Check)
	}
	if result.StoryKey != "ghost-win" {
		t.Errorf("StoryKey = %q; want ghost-win", result.StoryKey)
	}
	if result.FlagSet != "ghost-faced" || !st.Flags["ghost-faced"] {
		t.Error("success flag not set")
	}
	if !result.Completed || !st.CompletedEvents["face-the-ghost"] {
		t.Error("successful event not marked completed")
	}
	if !result.Pending || len(st.PendingItems["hall"]) != 1 {
		t.Errorf("reward should pend in default mode, got pending=%v items=%v", result.Pending, st.PendingItems["hall"])
	}
	if engine.HasItem("trinket") {
		t.Error("default mode granted the reward immediately")
	}
}

func TestResolveEventSuccessHardModeGrantsImmediately(t *testing.T) {
	engine, st := newTestEngine(18)
	st.Difficulty = DifficultyHard

	result := engine.ResolveEventByID("face-the-ghost")
	if result.Pending {
		t.Error("hard mode should not pend rewards")
	}
	if !engine.HasItem("trinket") {
		t.Error("hard mode should grant the reward immediately")
	}
}

func TestResolveEventFailureAppliesCurseAndExtraTick(t *testing.T) {
	engine, st := newTestEngine(2, 1)
	result := engine.ResolveEventByID("face-the-ghost")
	if result.Check.Success {
		t.Fatalf("check = %+v; want failure on a roll of 2", result.Check)
	}
	if result.StoryKey != "ghost-loss" {
		t.Errorf("StoryKey = %q; want ghost-loss", result.StoryKey)
	}
	if result.Curse == nil || result.Curse.Outcome != CurseApplied {
		t.Fatalf("curse = %+v; want ghost applied", result.Curse)
	}
	// The curse starts the clock at 4; the unblocked failure then
	// costs one extra tick.
	if st.CurseClock != 3 {
		t.Errorf("clock = %d; want 3 after the penalty tick", st.CurseClock)
	}
	if st.CompletedEvents["face-the-ghost"] {
		t.Error("failed event must stay incomplete")
	}
}

func TestResolveEventFailureBlockedSkipsExtraTick(t *testing.T) {
	engine, st := newTestEngine(1, 2)
	st.Inventory = append(st.Inventory, "ghost-ward")
	st.ActiveCurses["cow"] = true
	st.BodyMap["legs"] = "cow"
	st.CurseClock = 3

	result := engine.ResolveEventByID("face-the-ghost")
	if result.Curse == nil || result.Curse.Outcome != CurseBlocked {
		t.Fatalf("curse = %+v; want blocked by the ward", result.Curse)
	}
	if st.CurseClock != 3 {
		t.Errorf("clock = %d; want 3 — a blocked failure costs nothing", st.CurseClock)
	}
}

func TestResolveEventFailureWithoutCurseStillTicks(t *testing.T) {
	engine, st := newTestEngine(1)
	st.ActiveCurses["cow"] = true
	st.BodyMap["legs"] = "cow"
	st.CurseClock = 3

	ev := engine.content.Rooms["hall"].Events[0]
	ev.ID = "bare-failure"
	ev.FailureEffect = nil
	result := engine.ResolveEvent(ev)
	if result == nil || result.Check.Success {
		t.Fatalf("result = %+v; want a plain failure", result)
	}
	if st.CurseClock != 2 {
		t.Errorf("clock = %d; want 2 after the penalty tick", st.CurseClock)
	}
}

func TestResolveEventVictory(t *testing.T) {
	engine, st := newTestEngine()
	room := engine.content.Rooms["hall"]
	ev := room.Events[0]
	ev.ID = "open-the-gate"
	ev.Check = nil
	ev.FailureEffect = nil
	ev.SuccessEffect = &content.Effect{Victory: true}

	result := engine.ResolveEvent(ev)
	if result == nil || !result.Victory {
		t.Fatalf("result = %+v; want victory", result)
	}
	if st.GameStatus != StatusWon {
		t.Errorf("status = %q; want won", st.GameStatus)
	}
}

func TestResolveEventIneligible(t *testing.T) {
	engine, st := newTestEngine()
	st.CompletedEvents["face-the-ghost"] = true
	if result := engine.ResolveEventByID("face-the-ghost"); result != nil {
		t.Errorf("completed event resolved again: %+v", result)
	}

	st.CompletedEvents = map[string]bool{}
	st.GameStatus = StatusGameOver
	if result := engine.ResolveEventByID("face-the-ghost"); result != nil {
		t.Errorf("terminal session resolved an event: %+v", result)
	}
}
