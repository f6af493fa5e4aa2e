package game

import (
	"github.com/mveiss/hollow-manor/internal/content"
)

// scriptRoller replays a fixed sequence of rolls; out of script it
// returns 1.
type scriptRoller struct {
	rolls []int
	calls int
}

func (r *scriptRoller) Die(sides int) int {
	if r.calls >= len(r.rolls) {
		r.calls++
		return 1
	}
	v := r.rolls[r.calls]
	r.calls++
	return v
}

// testContent builds a two-room manor with two curses and enough items
// to exercise protection, equipment, and cursed pickups.
func testContent() *content.Store {
	return &content.Store{
		Rooms: map[string]content.Room{
			"hall": {
				ID:          "hall",
				Name:        "Hall",
				Connections: []string{"cellar"},
				Events: []content.Event{
					{
						ID: "face-the-ghost",
						Check: &content.Check{
							Stat: StatGrit, Difficulty: 10,
							SuccessStory: "ghost-win", FailureStory: "ghost-loss",
						},
						SuccessEffect: &content.Effect{Flag: "ghost-faced", Items: []string{"trinket"}},
						FailureEffect: &content.Effect{Curse: "ghost"},
					},
				},
				Searches: []content.Search{
					{
						ID: "hall-cabinet",
						Check: &content.Check{
							Stat: StatKeenEye, Difficulty: 8,
							SuccessStory: "cabinet-win", FailureStory: "cabinet-loss",
						},
						ItemReward: "trinket",
					},
				},
				HiddenAreas: []content.HiddenArea{
					{ID: "hall-alcove", Threshold: 5, ItemReward: "blade"},
				},
			},
			"cellar": {
				ID:          "cellar",
				Name:        "Cellar",
				Connections: []string{"hall"},
			},
		},
		Items: map[string]content.Item{
			"ghost-ward": {
				ID: "ghost-ward", Name: "Ghost Ward", Type: content.ItemProtective,
				ProtectsFrom: "ghost", CanEquip: true, EquipSlot: "neck", Consumable: true,
			},
			"cowbell": {
				ID: "cowbell", Name: "Cowbell", Type: content.ItemProtective,
				ProtectsFrom: "cow", CanEquip: true, EquipSlot: "wrist", Consumable: true,
			},
			"potion": {
				ID: "potion", Name: "Potion of Cleansing", Type: content.ItemProtective,
				Consumable: true,
			},
			"blade": {
				ID: "blade", Name: "Blade", Type: content.ItemEquipment,
				CanEquip: true, EquipSlot: "hand",
				StatBoost: &content.StatMod{Stat: StatGrit, Amount: 2},
			},
			"locket": {
				ID: "locket", Name: "Locket", Type: content.ItemCursed,
				CurseEffect: &content.CurseLink{Curse: "ghost"},
			},
			"trinket": {ID: "trinket", Name: "Trinket", Type: content.ItemQuest},
		},
		Curses: map[string]content.Curse{
			"ghost": {ID: "ghost", Name: "Ghostly Pallor", ProtectiveItem: "ghost-ward"},
			"cow":   {ID: "cow", Name: "Bovine Drift", ProtectiveItem: "cowbell"},
		},
	}
}

// newTestEngine returns an engine over testContent with a scripted
// roller and a fresh state placed in the hall.
func newTestEngine(rolls ...int) (*Engine, *State) {
	engine := New(testContent(), &scriptRoller{rolls: rolls})
	st := NewState()
	st.CharacterName = "Tester"
	st.CurrentRoomID = "hall"
	st.VisitedRooms["hall"] = 1
	engine.Restore(st)
	return engine, st
}
