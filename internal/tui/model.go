// Package tui is the interactive terminal front end of the tracker
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	"github.com/KirkDiggler/artifact-tracker/internal/orchestrators/tracker"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeConfirmRemove
)

const blankSlot = "—"

// Config holds the dependencies of the terminal UI
type Config struct {
	Service tracker.Service
	Logger  *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Service == nil {
		return errors.InvalidArgument("tracker service is required")
	}
	return nil
}

// position addresses one slot of the selected character
type position struct {
	list int
	slot int
}

// Model is the bubbletea model of the tracker screen
type Model struct {
	ctx    context.Context
	svc    tracker.Service
	logger *zap.Logger
	styles Styles

	characters []*tracker.CharacterView
	selected   int
	cursor     int

	filterSets []string
	filter     string
	summary    []tracker.SummaryEntry

	mode   mode
	input  textinput.Model
	status string
	err    string

	width int
}

// New creates the model and reads the current roster
func New(ctx context.Context, cfg *Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	in := textinput.New()
	in.Placeholder = "character name"
	in.Prompt = "add › "
	in.CharLimit = 40
	in.Width = 30
	in.ShowSuggestions = true

	m := Model{
		ctx:    ctx,
		svc:    cfg.Service,
		logger: logger,
		styles: DefaultStyles(),
		input:  in,
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, cfg *Config) error {
	m, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return errors.Wrap(err, "terminal ui failed")
	}
	return nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmRemove:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.selectCharacter(m.selected + 1)
	case "shift+tab":
		m.selectCharacter(m.selected - 1)
	case "down", "j":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-1)
	case "right", "l":
		m.cycle(1)
	case "left", "h":
		m.cycle(-1)
	case "backspace", "delete":
		m.setCurrent("")
	case "f":
		m.cycleFilter()
	case "a":
		return m.startAdd()
	case "x":
		if c := m.current(); c != nil {
			m.mode = modeConfirmRemove
			m.status = fmt.Sprintf("Remove %s? (y/n)", c.Name)
		}
	}
	return m, nil
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	out, err := m.svc.AvailableCharacters(m.ctx, &tracker.AvailableCharactersInput{})
	if err != nil {
		m.fail(err)
		return m, nil
	}

	m.mode = modeAdd
	m.status = ""
	m.input.Reset()
	m.input.SetSuggestions(out.Names)
	return m, m.input.Focus()
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		m.err = ""
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		out, err := m.svc.AddCharacter(m.ctx, &tracker.AddCharacterInput{Name: name})
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.mode = modeBrowse
		m.input.Blur()
		m.err = ""
		m.status = fmt.Sprintf("Added %s", out.Character.Name)
		if err := m.refresh(); err != nil {
			m.fail(err)
		}
		m.selectCharacter(len(m.characters) - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	c := m.current()
	if c == nil || msg.String() != "y" {
		m.status = "Kept"
		return m, nil
	}

	out, err := m.svc.RemoveCharacter(m.ctx, &tracker.RemoveCharacterInput{Name: c.Name})
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.status = fmt.Sprintf("Removed %s", c.Name)
	if !out.Removed {
		m.status = fmt.Sprintf("%s was already gone", c.Name)
	}
	if err := m.refresh(); err != nil {
		m.fail(err)
	}
	m.selectCharacter(m.selected)
	return m, nil
}

// refresh re-reads the roster and everything derived from it
func (m *Model) refresh() error {
	list, err := m.svc.ListCharacters(m.ctx, &tracker.ListCharactersInput{})
	if err != nil {
		return err
	}
	m.characters = list.Characters

	opts, err := m.svc.FilterOptions(m.ctx, &tracker.FilterOptionsInput{})
	if err != nil {
		return err
	}
	m.filterSets = opts.Sets
	if !contains(m.filterSets, m.filter) {
		m.filter = ""
	}

	summary, err := m.svc.Summary(m.ctx, &tracker.SummaryInput{Set: m.filter})
	if err != nil {
		return err
	}
	m.summary = summary.Entries

	m.clampCursor()
	return nil
}

func (m *Model) fail(err error) {
	m.logger.Debug("tracker action failed", zap.Error(err))
	m.err = errors.GetMessage(err)
}

func (m *Model) current() *tracker.CharacterView {
	if m.selected < 0 || m.selected >= len(m.characters) {
		return nil
	}
	return m.characters[m.selected]
}

func (m *Model) selectCharacter(i int) {
	n := len(m.characters)
	if n == 0 {
		m.selected = 0
		m.cursor = 0
		return
	}
	m.selected = ((i % n) + n) % n
	m.cursor = 0
}

// positions flattens every slot of the selected character in display order
func (m *Model) positions() []position {
	c := m.current()
	if c == nil {
		return nil
	}
	var out []position
	for li, l := range c.Lists {
		for si := range l.Slots {
			out = append(out, position{list: li, slot: si})
		}
	}
	return out
}

func (m *Model) moveCursor(delta int) {
	n := len(m.positions())
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m *Model) clampCursor() {
	if m.selected >= len(m.characters) {
		m.selected = max(len(m.characters)-1, 0)
	}
	if n := len(m.positions()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// cycle steps the slot under the cursor through blank and its options
func (m *Model) cycle(delta int) {
	pos, ok := m.position()
	if !ok {
		return
	}
	slot := m.current().Lists[pos.list].Slots[pos.slot]

	choices := append([]string{""}, slot.Options...)
	idx := 0
	for i, v := range choices {
		if v == slot.Value {
			idx = i
			break
		}
	}
	next := ((idx+delta)%len(choices) + len(choices)) % len(choices)
	m.setCurrent(choices[next])
}

func (m *Model) setCurrent(value string) {
	pos, ok := m.position()
	if !ok {
		return
	}
	c := m.current()
	l := c.Lists[pos.list]
	if l.Slots[pos.slot].Value == value {
		return
	}

	_, err := m.svc.UpdateSlot(m.ctx, &tracker.UpdateSlotInput{
		Name:  c.Name,
		Kind:  l.Kind,
		Index: pos.slot,
		Value: value,
	})
	if err != nil {
		m.fail(err)
		return
	}
	if err := m.refresh(); err != nil {
		m.fail(err)
	}
}

func (m *Model) position() (position, bool) {
	ps := m.positions()
	if m.cursor < 0 || m.cursor >= len(ps) {
		return position{}, false
	}
	return ps[m.cursor], true
}

func (m *Model) cycleFilter() {
	if len(m.filterSets) == 0 {
		m.filter = ""
		return
	}
	next := 0
	for i, s := range m.filterSets {
		if s == m.filter {
			next = i + 1
			break
		}
	}
	if m.filter != "" && next >= len(m.filterSets) {
		m.filter = ""
	} else {
		m.filter = m.filterSets[next]
	}

	summary, err := m.svc.Summary(m.ctx, &tracker.SummaryInput{Set: m.filter})
	if err != nil {
		m.fail(err)
		return
	}
	m.summary = summary.Entries
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Artifact Tracker"))
	b.WriteString("\n\n")

	if len(m.characters) == 0 {
		b.WriteString(m.styles.Muted.Render("No characters yet. Press a to add one."))
		b.WriteString("\n")
	}
	var cursorAt position
	if pos, ok := m.position(); ok {
		cursorAt = pos
	}
	for i, c := range m.characters {
		b.WriteString(m.renderCard(c, i == m.selected, cursorAt))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderTracker())

	switch m.mode {
	case modeAdd:
		b.WriteString("\n")
		b.WriteString(m.input.View())
	case modeConfirmRemove:
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.status))
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.err))
	} else if m.status != "" && m.mode == modeBrowse {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(
		"tab next • ↑/↓ slot • ←/→ choose • ⌫ clear • a add • x remove • f filter • q quit"))
	return b.String()
}

func (m Model) renderCard(c *tracker.CharacterView, selected bool, cursorAt position) string {
	lines := []string{m.styles.Name.Render(c.Name)}
	for li, l := range c.Lists {
		cells := make([]string, 0, len(l.Slots))
		for si, slot := range l.Slots {
			text := slot.Value
			style := m.styles.Slot
			if slot.Blank() {
				text = blankSlot
				style = m.styles.Blank
			}
			if selected && li == cursorAt.list && si == cursorAt.slot {
				style = m.styles.Cursor
			}
			cells = append(cells, style.Render(text))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		lines = append(lines, m.styles.Label.Render(l.Label)+row)
	}

	card := m.styles.Card
	if selected {
		card = m.styles.Selected
	}
	return card.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTracker() string {
	if m.filter == "" {
		if len(m.filterSets) == 0 {
			return m.styles.Muted.Render("Tracker: no artifact sets chosen yet")
		}
		return m.styles.Muted.Render("Tracker: press f to pick a set")
	}

	lines := []string{m.styles.Name.Render("Tracker: " + m.filter)}
	for _, e := range m.summary {
		lines = append(lines,
			fmt.Sprintf("%s · Sets: %s", m.styles.Name.Render(e.Name), strings.Join(e.Sets, ", ")),
			"  "+e.Details)
	}
	return strings.Join(lines, "\n")
}

func contains(values []string, v string) bool {
	for _, have := range values {
		if have == v {
			return true
		}
	}
	return false
}
