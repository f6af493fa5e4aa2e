// Package tui is the bubbletea front end. It renders state and relays
// commands; every rule lives in internal/game.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mveiss/hollow-manor/internal/dice"
	"github.com/mveiss/hollow-manor/internal/game"
	"github.com/mveiss/hollow-manor/internal/save"
	"github.com/mveiss/hollow-manor/internal/story"
)

type sessionState int

const (
	stateMenu sessionState = iota
	stateName
	stateBonus
	statePlaying
	stateEnded
)

type model struct {
	state     sessionState
	engine    *game.Engine
	story     *story.Store
	saves     *save.Store
	roller    dice.Roller
	startRoom string

	difficulty game.Difficulty
	textInput  textinput.Model
	viewport   viewport.Model
	gameLog    string
	width      int
	height     int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// Options configures a TUI run.
type Options struct {
	Engine     *game.Engine
	Story      *story.Store
	Saves      *save.Store
	Roller     dice.Roller
	StartRoom  string
	Difficulty game.Difficulty
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "new, load <slot>, or quit"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:      stateMenu,
		engine:     opts.Engine,
		story:      opts.Story,
		saves:      opts.Saves,
		roller:     opts.Roller,
		startRoom:  opts.StartRoom,
		difficulty: opts.Difficulty,
		textInput:  ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		if m.state == statePlaying || m.state == stateEnded {
			m.viewport.SetContent(m.gameLog)
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	m.textInput.Reset()

	switch m.state {
	case stateMenu:
		return m.handleMenu(input)
	case stateName:
		if input == "" {
			return m, nil
		}
		m.engine.NewGame(input, m.difficulty, m.startRoom)
		m.state = stateBonus
		m.textInput.Placeholder = "grit, keeneye, charm, or skip"
		return m, nil
	case stateBonus:
		return m.handleBonus(input)
	case statePlaying:
		if input == "" {
			return m, nil
		}
		return m.handleCommand(input)
	case stateEnded:
		if input == "quit" {
			return m, tea.Quit
		}
		m.state = stateMenu
		m.textInput.Placeholder = "new, load <slot>, or quit"
		return m, nil
	}
	return m, nil
}

func (m model) handleMenu(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return m, nil
	}
	switch fields[0] {
	case "quit":
		return m, tea.Quit
	case "new":
		m.state = stateName
		m.textInput.Placeholder = "What is your name?"
		return m, nil
	case "load":
		if len(fields) < 2 {
			return m, nil
		}
		slot, err := strconv.Atoi(fields[1])
		if err != nil {
			return m, nil
		}
		st, err := m.saves.Load(slot, m.roller)
		if err != nil {
			m.appendLog(dangerStyle.Render(fmt.Sprintf("Could not load slot %d: %v", slot, err)))
			return m, nil
		}
		m.engine.Restore(st)
		m.startPlaying()
		m.appendLog(gameStyle.Render(fmt.Sprintf("Welcome back, %s.", st.CharacterName)))
		m.describeRoom()
		return m, nil
	}
	return m, nil
}

func (m model) handleBonus(input string) (tea.Model, tea.Cmd) {
	stat := normalizeStat(input)
	if stat != "" {
		m.engine.ApplyBonusPoint(stat)
	} else if !strings.EqualFold(input, "skip") {
		return m, nil
	}
	m.startPlaying()
	m.appendLog(m.story.Text("intro"))
	m.describeRoom()
	return m, nil
}

func (m *model) startPlaying() {
	m.state = statePlaying
	m.gameLog = ""
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.logWidth(), m.height-6)
	}
	m.textInput.Placeholder = "What do you do?"
}

func (m model) handleCommand(input string) (tea.Model, tea.Cmd) {
	m.appendLog(userStyle.Width(m.logWidth()).Render("> " + input))

	fields := strings.Fields(input)
	verb := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch verb {
	case "quit":
		return m, tea.Quit
	case "help":
		m.appendLog(helpStyle.Render(helpText))
	case "look":
		m.describeRoom()
	case "go", "move":
		m.doMove(arg)
	case "do":
		m.doEvent(arg)
	case "search":
		m.doSearch(arg)
	case "scan":
		m.doScan()
	case "take":
		m.doTake()
	case "equip":
		m.doEquip(arg)
	case "unequip":
		if !m.engine.Unequip(arg) {
			m.appendLog("Nothing to unequip.")
		} else {
			m.appendLog(fmt.Sprintf("You stow the %s.", m.itemName(arg)))
		}
	case "use":
		target := ""
		if len(fields) > 2 {
			target = fields[2]
		}
		m.doUse(arg, target)
	case "save":
		m.doSave(arg)
	case "slots":
		m.doSlots()
	default:
		m.appendLog(helpStyle.Render("Unknown command. Try 'help'."))
	}

	if m.engine.State().GameStatus != game.StatusPlaying && m.state == statePlaying {
		m.state = stateEnded
		if m.engine.State().GameStatus == game.StatusWon {
			m.appendLog(titleStyle.Render("YOU HAVE ESCAPED THE MANOR"))
		} else {
			m.appendLog(dangerStyle.Render("THE CURSES HAVE CLAIMED YOU"))
		}
		m.textInput.Placeholder = "Press enter for the menu, or type quit"
	}
	return m, nil
}

func (m *model) doMove(roomID string) {
	result := m.engine.MoveTo(roomID)
	if !result.Moved {
		m.appendLog("You can't get there from here.")
		return
	}
	m.narrateProgressions(result.Progressions)
	m.describeRoom()
}

func (m *model) doEvent(eventID string) {
	result := m.engine.ResolveEventByID(eventID)
	if result == nil {
		m.appendLog("Nothing like that to do here.")
		return
	}
	if result.Check != nil {
		m.appendLog(renderCheck(*result.Check))
	}
	m.appendLog(m.story.Text(result.StoryKey))
	if len(result.RewardItems) > 0 && result.Pending {
		m.appendLog(helpStyle.Render("Something was left behind — 'take' to claim it."))
	}
	if result.Curse != nil {
		m.narrateCurse(result.Curse)
	}
	m.narrateProgressions(result.ExtraProgressions)
}

func (m *model) doSearch(searchID string) {
	result := m.engine.AttemptSearch(searchID)
	if result == nil {
		m.appendLog("There's nothing like that to search.")
		return
	}
	m.narrateProgressions(result.Progressions)
	if result.Check != nil {
		m.appendLog(renderCheck(*result.Check))
	}
	m.appendLog(m.story.Text(result.StoryKey))
	if result.Pending {
		m.appendLog(helpStyle.Render("You found something — 'take' to claim it."))
	}
	if result.Pickup != nil && result.Pickup.Curse != nil {
		m.narrateCurse(result.Pickup.Curse)
	}
}

func (m *model) doScan() {
	result := m.engine.SearchForHiddenAreas()
	if result == nil {
		m.appendLog("You find nothing out of the ordinary.")
		return
	}
	if !result.Discovered {
		m.appendLog("Something feels off here, but you can't place it.")
		return
	}
	m.appendLog(m.story.Text(result.StoryKey))
	if result.Pending {
		m.appendLog(helpStyle.Render("You found something — 'take' to claim it."))
	}
	if result.Pickup != nil && result.Pickup.Curse != nil {
		m.narrateCurse(result.Pickup.Curse)
	}
}

func (m *model) doTake() {
	pickups := m.engine.ClaimPendingItems()
	if len(pickups) == 0 {
		m.appendLog("There is nothing here to take.")
		return
	}
	for _, pickup := range pickups {
		m.appendLog(fmt.Sprintf("You take the %s.", m.itemName(pickup.Item)))
		if pickup.Curse != nil {
			m.narrateCurse(pickup.Curse)
		}
	}
}

func (m *model) doEquip(itemID string) {
	result := m.engine.Equip(itemID)
	if !result.Equipped {
		m.appendLog("You can't equip that.")
		return
	}
	m.appendLog(fmt.Sprintf("You equip the %s.", m.itemName(itemID)))
	if result.CuredCurse != "" {
		m.appendLog(gameStyle.Render(fmt.Sprintf("The %s lifts from you entirely.", m.curseName(result.CuredCurse))))
	}
}

func (m *model) doUse(itemID, targetCurse string) {
	result := m.engine.UseConsumable(itemID, targetCurse)
	if !result.Used {
		m.appendLog("Nothing happens.")
		return
	}
	m.appendLog(gameStyle.Render(fmt.Sprintf("The %s lifts from you entirely.", m.curseName(result.CuredCurse))))
}

func (m *model) doSave(arg string) {
	slot, err := strconv.Atoi(arg)
	if err != nil {
		m.appendLog("Usage: save <1-3>")
		return
	}
	if err := m.saves.Save(slot, m.engine.State()); err != nil {
		m.appendLog(dangerStyle.Render(fmt.Sprintf("Save failed: %v", err)))
		return
	}
	m.appendLog(helpStyle.Render(fmt.Sprintf("Saved to slot %d.", slot)))
}

func (m *model) doSlots() {
	infos, err := m.saves.ListSlots()
	if err != nil {
		m.appendLog(dangerStyle.Render(fmt.Sprintf("Could not list slots: %v", err)))
		return
	}
	for _, info := range infos {
		if info.Meta == nil {
			m.appendLog(fmt.Sprintf("Slot %d: (empty)", info.Slot))
			continue
		}
		m.appendLog(fmt.Sprintf("Slot %d: %s — %s, %s (%s)",
			info.Slot, info.Meta.CharacterName, m.roomName(info.Meta.RoomID),
			info.Meta.Status, info.Meta.SavedAt.Format("2006-01-02 15:04")))
	}
}

func (m *model) describeRoom() {
	room, ok := m.engine.CurrentRoom()
	if !ok {
		return
	}
	header := gameStyle.Bold(true).Render(room.Name)
	if m.engine.IsRoomFullyCleared(room.ID) {
		header += helpStyle.Render("  (nothing left here)")
	}
	m.appendLog(header)
	if room.Description != "" {
		m.appendLog(gameStyle.Width(m.logWidth()).Render(m.story.Text(room.Description)))
	}

	var lines []string
	for _, ev := range m.engine.AvailableEvents(room.ID) {
		label := ev.Name
		if label == "" {
			label = ev.ID
		}
		if ev.Check != nil {
			mod := dice.Modifier(m.engine.EffectiveStat(ev.Check.Stat))
			lines = append(lines, fmt.Sprintf("do %s — %s (%s, %d%%)",
				ev.ID, label, dice.Classify(ev.Check.Difficulty), dice.SuccessChance(mod, ev.Check.Difficulty)))
		} else {
			lines = append(lines, fmt.Sprintf("do %s — %s", ev.ID, label))
		}
	}
	for _, s := range m.engine.AvailableSearches(room.ID) {
		label := s.Name
		if label == "" {
			label = s.ID
		}
		lines = append(lines, fmt.Sprintf("search %s — %s", s.ID, label))
	}
	if len(m.engine.GetPendingItems(room.ID)) > 0 {
		lines = append(lines, "take — claim what you found")
	}
	if len(lines) > 0 {
		m.appendLog(helpStyle.Render(strings.Join(lines, "\n")))
	}
	if len(room.Connections) > 0 {
		m.appendLog(helpStyle.Render("Exits: " + strings.Join(room.Connections, ", ")))
	}
}

func (m *model) narrateCurse(result *game.CurseResult) {
	switch result.Outcome {
	case game.CurseApplied:
		text := fmt.Sprintf("The %s takes hold", m.curseName(result.Curse))
		if desc := m.bodyPartDescription(result.Curse, result.BodyPart); desc != "" {
			text += ": " + desc
		} else if result.BodyPart != "" {
			text += " of your " + result.BodyPart
		}
		m.appendLog(dangerStyle.Render(text + "."))
	case game.CurseBlocked:
		m.appendLog(gameStyle.Render("Something you carry wards the curse away."))
	case game.CurseAlreadyActive:
		m.appendLog(dangerStyle.Render(fmt.Sprintf("The %s tightens its grip.", m.curseName(result.Curse))))
	case game.CurseStoryBlocked:
		m.appendLog(gameStyle.Render("The curse recoils — one affliction is burden enough."))
	}
}

func (m *model) narrateProgressions(progressions []game.Progression) {
	for _, p := range progressions {
		text := fmt.Sprintf("The %s spreads", m.curseName(p.Curse))
		if desc := m.bodyPartDescription(p.Curse, p.BodyPart); desc != "" {
			text += ": " + desc
		} else {
			text += " to your " + p.BodyPart
		}
		m.appendLog(dangerStyle.Render(text + "."))
	}
}

func renderCheck(check dice.Result) string {
	status := "Success"
	if !check.Success {
		status = "Failure"
	}
	return helpStyle.Render(fmt.Sprintf("[%s check: %d + %d = %d vs %d — %s]",
		check.Stat, check.DieRoll, check.Modifier, check.Total, check.Difficulty, status))
}

func (m *model) appendLog(text string) {
	if text == "" {
		return
	}
	if m.gameLog != "" {
		m.gameLog += "\n\n"
	}
	m.gameLog += text
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	w := int(float64(m.width) * 0.75)
	if w <= 0 {
		w = 60
	}
	return w
}

const helpText = `Commands:
  go <room>        move through a doorway
  do <event>       attempt an encounter
  search <search>  search a spot
  scan             look for hidden areas
  take             claim discovered items
  equip / unequip / use <item> [curse]
  save <1-3>, slots, look, quit`

func (m model) View() string {
	var s string

	switch m.state {
	case stateMenu:
		s = fmt.Sprintf(
			"THE HOLLOW MANOR\n\n%s\n\n%s",
			"'new' to begin, 'load <slot>' to resume, 'quit' to leave:",
			m.textInput.View(),
		)

	case stateName, stateBonus:
		prompt := "Every stranger has a name."
		if m.state == stateBonus {
			st := m.engine.State()
			prompt = fmt.Sprintf(
				"Grit %d, Keen Eye %d, Charm %d.\nSpend your one bonus point:",
				st.Stats[game.StatGrit], st.Stats[game.StatKeenEye], st.Stats[game.StatCharm],
			)
		}
		s = fmt.Sprintf("%s\n\n%s", prompt, m.textInput.View())

	case statePlaying, stateEnded:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		help := helpStyle.Render("Type 'help' for commands.")
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	st := m.engine.State()
	if st == nil {
		return ""
	}

	name := titleStyle.Render(st.CharacterName) + "\n\n"

	statsTitle := titleStyle.Render("STATS") + "\n"
	stats := ""
	for _, stat := range game.StatNames {
		base := st.Stats[stat]
		effective := m.engine.EffectiveStat(stat)
		line := fmt.Sprintf("%s: %d", stat, effective)
		if effective != base {
			line += fmt.Sprintf(" (base %d)", base)
		}
		stats += line + "\n"
	}
	stats += "\n"

	bodyTitle := titleStyle.Render("BODY") + "\n"
	body := ""
	for _, part := range game.BodyParts {
		curse := st.BodyMap[part]
		if curse == "" {
			body += fmt.Sprintf("%s: —\n", part)
		} else {
			body += dangerStyle.Render(fmt.Sprintf("%s: %s", part, m.curseName(curse))) + "\n"
		}
	}
	if len(st.ActiveCurses) > 0 {
		body += helpStyle.Render(fmt.Sprintf("clock: %d", st.CurseClock)) + "\n"
	}
	body += "\n"

	invTitle := titleStyle.Render("INVENTORY") + "\n"
	inventory := ""
	if len(st.Inventory) == 0 && len(st.Equipped) == 0 {
		inventory = "(empty)\n"
	} else {
		for _, id := range st.Equipped {
			inventory += "* " + m.itemName(id) + " (equipped)\n"
		}
		for _, id := range st.Inventory {
			inventory += "- " + m.itemName(id) + "\n"
		}
	}

	content := name + statsTitle + stats + bodyTitle + body + invTitle + inventory

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) itemName(id string) string {
	if item, ok := m.engine.Content().Item(id); ok && item.Name != "" {
		return item.Name
	}
	return id
}

func (m model) curseName(id string) string {
	if curse, ok := m.engine.Content().Curse(id); ok && curse.Name != "" {
		return curse.Name
	}
	return id
}

func (m model) roomName(id string) string {
	if room, ok := m.engine.Content().Room(id); ok && room.Name != "" {
		return room.Name
	}
	return id
}

func (m model) bodyPartDescription(curseID, part string) string {
	curse, ok := m.engine.Content().Curse(curseID)
	if !ok {
		return ""
	}
	return curse.BodyPartDescriptions[part]
}

func normalizeStat(input string) string {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "grit":
		return game.StatGrit
	case "keeneye", "keen-eye", "keen":
		return game.StatKeenEye
	case "charm":
		return game.StatCharm
	}
	return ""
}

// Run starts the TUI.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
