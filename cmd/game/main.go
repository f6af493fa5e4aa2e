package main

import (
	"fmt"
	"os"

	"github.com/mveiss/hollow-manor/internal/config"
	"github.com/mveiss/hollow-manor/internal/content"
	"github.com/mveiss/hollow-manor/internal/dice"
	"github.com/mveiss/hollow-manor/internal/game"
	"github.com/mveiss/hollow-manor/internal/save"
	"github.com/mveiss/hollow-manor/internal/story"
	"github.com/mveiss/hollow-manor/internal/tui"
)

const startRoom = "foyer"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := content.Load(cfg.ContentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}
	if err := store.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Content problem: %v\n", err)
		os.Exit(1)
	}

	narrative, err := story.ParseFile(cfg.StoryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading story text: %v\n", err)
		os.Exit(1)
	}

	saves, err := save.Open(cfg.SavePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save store: %v\n", err)
		os.Exit(1)
	}
	defer saves.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed, err = dice.RandomSeed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding dice: %v\n", err)
			os.Exit(1)
		}
	}
	roller := dice.NewRoller(seed)

	difficulty := game.Difficulty(cfg.Difficulty)
	switch difficulty {
	case game.DifficultyStory, game.DifficultyDefault, game.DifficultyHard:
	default:
		difficulty = game.DifficultyDefault
	}

	err = tui.Run(tui.Options{
		Engine:     game.New(store, roller),
		Story:      narrative,
		Saves:      saves,
		Roller:     roller,
		StartRoom:  startRoom,
		Difficulty: difficulty,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
