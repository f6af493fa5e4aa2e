// Command simulate plays the game with a scripted random-walk player,
// printing each action and outcome. Useful for smoke-testing content
// pacing without sitting through a session by hand.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mveiss/hollow-manor/internal/config"
	"github.com/mveiss/hollow-manor/internal/content"
	"github.com/mveiss/hollow-manor/internal/dice"
	"github.com/mveiss/hollow-manor/internal/game"
	"github.com/mveiss/hollow-manor/internal/story"
)

const (
	maxTurns  = 60
	startRoom = "foyer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := content.Load(cfg.ContentDir)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	narrative, err := story.ParseFile(cfg.StoryFile)
	if err != nil {
		log.Fatalf("Failed to load story text: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = dice.RandomSeed(); err != nil {
			log.Fatalf("Failed to seed dice: %v", err)
		}
	}
	if len(os.Args) > 1 {
		if parsed, err := strconv.ParseInt(os.Args[1], 10, 64); err == nil {
			seed = parsed
		}
	}
	fmt.Printf("--- Simulating with seed %d ---\n", seed)

	roller := dice.NewRoller(seed)
	engine := game.New(store, roller)
	st := engine.NewGame("Simulant", game.Difficulty(cfg.Difficulty), startRoom)
	fmt.Printf("Stats: grit=%d keenEye=%d charm=%d\n\n", st.Stats[game.StatGrit], st.Stats[game.StatKeenEye], st.Stats[game.StatCharm])

	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d (room %s, clock %d) ---\n", turn, st.CurrentRoomID, st.CurseClock)

		if !playTurn(engine, narrative, roller) {
			fmt.Println("No action available; wandering.")
		}

		for _, pickup := range engine.ClaimPendingItems() {
			fmt.Printf("Claimed: %s\n", pickup.Item)
		}

		if st.GameStatus != game.StatusPlaying {
			fmt.Printf("\nGame ended: %s after %d transitions\n", st.GameStatus, st.RoomTransitions)
			return
		}
	}
	fmt.Printf("\nReached turn limit still %s; body map %d/4 claimed\n", st.GameStatus, st.BodyMapOccupiedCount())
}

// playTurn prefers events, then searches, then hidden areas, then a
// random exit. Returns false when it could do nothing at all.
func playTurn(engine *game.Engine, narrative *story.Store, roller dice.Roller) bool {
	st := engine.State()
	roomID := st.CurrentRoomID

	if events := engine.AvailableEvents(roomID); len(events) > 0 {
		ev := events[roller.Die(len(events))-1]
		result := engine.ResolveEvent(ev)
		if result == nil {
			return false
		}
		fmt.Printf("Event %s: ", ev.ID)
		if result.Check != nil {
			fmt.Printf("rolled %d+%d=%d vs %d — ", result.Check.DieRoll, result.Check.Modifier, result.Check.Total, result.Check.Difficulty)
		}
		fmt.Println(firstLine(narrative.Text(result.StoryKey)))
		if result.Curse != nil {
			fmt.Printf("Curse %s: %s %s\n", result.Curse.Curse, result.Curse.Outcome, result.Curse.BodyPart)
		}
		for _, p := range result.ExtraProgressions {
			fmt.Printf("Curse %s spreads to %s (stage %d)\n", p.Curse, p.BodyPart, p.Stage)
		}
		return true
	}

	if searches := engine.AvailableSearches(roomID); len(searches) > 0 {
		s := searches[roller.Die(len(searches))-1]
		result := engine.AttemptSearch(s.ID)
		if result == nil {
			return false
		}
		fmt.Printf("Search %s: completed=%v reward=%q\n", s.ID, result.Completed, result.RewardItem)
		for _, p := range result.Progressions {
			fmt.Printf("Curse %s spreads to %s (stage %d)\n", p.Curse, p.BodyPart, p.Stage)
		}
		return true
	}

	if areas := engine.UndiscoveredHiddenAreas(roomID); len(areas) > 0 {
		if result := engine.SearchForHiddenAreas(); result != nil {
			fmt.Printf("Scan %s: discovered=%v\n", result.Area, result.Discovered)
			return true
		}
	}

	room, ok := engine.CurrentRoom()
	if !ok || len(room.Connections) == 0 {
		return false
	}
	target := room.Connections[roller.Die(len(room.Connections))-1]
	result := engine.MoveTo(target)
	fmt.Printf("Move to %s\n", target)
	for _, p := range result.Progressions {
		fmt.Printf("Curse %s spreads to %s (stage %d)\n", p.Curse, p.BodyPart, p.Stage)
	}
	return true
}

func firstLine(text string) string {
	for i, r := range text {
		if r == '\n' {
			return text[:i]
		}
	}
	return text
}
