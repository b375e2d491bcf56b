package ui

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user cancels a selection.
var ErrAborted = stderrors.New("selection aborted")

// SelectItem is one entry of a selection list.
type SelectItem struct {
	Label string
	Hint  string
}

type selectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultSelectKeyMap() selectKeyMap {
	return selectKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Quit:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// SelectModel is a vertical single-choice list.
type SelectModel struct {
	title   string
	items   []SelectItem
	cursor  int
	choice  int
	aborted bool
	keys    selectKeyMap
}

// NewSelect creates a selection model with the cursor on defaultIndex
// (clamped into range).
func NewSelect(title string, items []SelectItem, defaultIndex int) SelectModel {
	if defaultIndex < 0 || defaultIndex >= len(items) {
		defaultIndex = 0
	}
	return SelectModel{
		title:  title,
		items:  items,
		cursor: defaultIndex,
		choice: -1,
		keys:   defaultSelectKeyMap(),
	}
}

// Init initializes the model.
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and updates the model's state.
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		m.choice = m.cursor
		return m, tea.Quit
	}

	return m, nil
}

// View renders the list.
func (m SelectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Label
		if item.Hint != "" {
			line += " " + hintStyle.Render(item.Hint)
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ move · enter select · esc cancel"))
	b.WriteString("\n")

	return b.String()
}

// RunSelect runs the selection list and returns the chosen index.
// ErrAborted is returned when the user cancels.
func RunSelect(title string, items []SelectItem, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("nothing to select from")
	}

	final, err := tea.NewProgram(NewSelect(title, items, defaultIndex)).Run()
	if err != nil {
		return -1, err
	}

	model := final.(SelectModel)
	if model.aborted || model.choice < 0 {
		return -1, ErrAborted
	}
	return model.choice, nil
}
