// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package threads is the saved-conversations sidebar. It is a pure
// view-model: it renders the list and turns key presses into selection
// and delete requests, leaving network work to its owner.
package threads

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tickertalk/tickertalk-tui/internal/model"
	"github.com/tickertalk/tickertalk-tui/internal/ui/styles"
)

// ============================================================================
// MESSAGES
// ============================================================================

// SelectedMsg asks the owner to open the given thread.
type SelectedMsg struct {
	ID string
}

// DeleteRequestMsg asks the owner to confirm and delete the given thread.
type DeleteRequestMsg struct {
	ID    string
	Title string
}

// ============================================================================
// KEYS
// ============================================================================

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Delete key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Delete: key.NewBinding(key.WithKeys("d", "delete")),
}

// ============================================================================
// MODEL
// ============================================================================

// Model is the sidebar state.
type Model struct {
	items    []model.ThreadSummary
	cursor   int
	activeID string
	focused  bool
	width    int
	height   int
}

// New returns an empty sidebar.
func New(width int) Model {
	return Model{width: width}
}

// SetItems replaces the list, keeping the cursor in bounds.
func (m *Model) SetItems(items []model.ThreadSummary) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetActive marks the thread shown in the chat pane.
func (m *Model) SetActive(id string) {
	m.activeID = id
}

// ActiveID is the currently highlighted thread, or "".
func (m *Model) ActiveID() string { return m.activeID }

// Items returns the listed summaries.
func (m *Model) Items() []model.ThreadSummary { return m.items }

// Focus routes key input to the sidebar.
func (m *Model) Focus() { m.focused = true }

// Blur stops the sidebar from consuming keys.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the sidebar has key focus.
func (m *Model) Focused() bool { return m.focused }

// SetSize updates the rendered dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ============================================================================
// UPDATE
// ============================================================================

// Update moves the cursor and emits selection or delete requests. Input is
// ignored while blurred.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.focused {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Select):
		if item, ok := m.current(); ok {
			return func() tea.Msg { return SelectedMsg{ID: item.ID} }
		}
	case key.Matches(keyMsg, keys.Delete):
		if item, ok := m.current(); ok {
			return func() tea.Msg {
				return DeleteRequestMsg{ID: item.ID, Title: item.Title}
			}
		}
	}
	return nil
}

func (m *Model) current() (model.ThreadSummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return model.ThreadSummary{}, false
	}
	return m.items[m.cursor], true
}

// ============================================================================
// VIEW
// ============================================================================

var (
	sidebarHeader = lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)
	sidebarItem   = lipgloss.NewStyle().Foreground(styles.TextSecondary)
	sidebarCursor = lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true)
	sidebarActive = lipgloss.NewStyle().Foreground(styles.Cyan)
	sidebarEmpty  = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
)

// View renders the list of saved conversations.
func (m *Model) View() string {
	lines := []string{sidebarHeader.Render("Conversations"), ""}

	if len(m.items) == 0 {
		lines = append(lines, sidebarEmpty.Render("No saved chats yet"))
	}

	for i, item := range m.items {
		title := runewidth.Truncate(item.Title, m.width-4, "...")
		prefix := "  "
		style := sidebarItem
		if item.ID == m.activeID {
			style = sidebarActive
		}
		if m.focused && i == m.cursor {
			prefix = "> "
			style = sidebarCursor
		}
		lines = append(lines, prefix+style.Render(title))
	}

	return lipgloss.NewStyle().Width(m.width).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}
