// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package threads

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tickertalk/tickertalk-tui/internal/model"
)

func pressKey(m *Model, k string) tea.Msg {
	var msg tea.KeyMsg
	switch k {
	case "up", "down", "enter", "delete":
		msg = tea.KeyMsg{Type: keyType(k)}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func keyType(k string) tea.KeyType {
	switch k {
	case "up":
		return tea.KeyUp
	case "down":
		return tea.KeyDown
	case "enter":
		return tea.KeyEnter
	case "delete":
		return tea.KeyDelete
	}
	return tea.KeyRunes
}

func sampleItems() []model.ThreadSummary {
	return []model.ThreadSummary{
		{ID: "t1", Title: "Should I buy AAPL?"},
		{ID: "t2", Title: "Compare MSFT and GOOG"},
		{ID: "t3", Title: "What happened to TSLA today?"},
	}
}

func TestSidebarSelection(t *testing.T) {
	m := New(28)
	m.SetItems(sampleItems())
	m.Focus()

	pressKey(&m, "down")
	got := pressKey(&m, "enter")
	sel, ok := got.(SelectedMsg)
	if !ok {
		t.Fatalf("Expected SelectedMsg, got %T", got)
	}
	if sel.ID != "t2" {
		t.Errorf("Expected t2 selected, got %q", sel.ID)
	}
}

func TestSidebarDeleteRequest(t *testing.T) {
	m := New(28)
	m.SetItems(sampleItems())
	m.Focus()

	got := pressKey(&m, "d")
	req, ok := got.(DeleteRequestMsg)
	if !ok {
		t.Fatalf("Expected DeleteRequestMsg, got %T", got)
	}
	if req.ID != "t1" || req.Title != "Should I buy AAPL?" {
		t.Errorf("Unexpected delete request: %+v", req)
	}
}

func TestSidebarCursorStaysInBounds(t *testing.T) {
	m := New(28)
	m.SetItems(sampleItems())
	m.Focus()

	pressKey(&m, "up")
	if m.cursor != 0 {
		t.Errorf("Cursor underflowed to %d", m.cursor)
	}
	for i := 0; i < 10; i++ {
		pressKey(&m, "down")
	}
	if m.cursor != 2 {
		t.Errorf("Cursor overflowed to %d", m.cursor)
	}

	// Shrinking the list clamps the cursor.
	m.SetItems(sampleItems()[:1])
	if m.cursor != 0 {
		t.Errorf("Cursor not clamped after shrink, got %d", m.cursor)
	}
}

func TestSidebarIgnoresInputWhileBlurred(t *testing.T) {
	m := New(28)
	m.SetItems(sampleItems())

	if got := pressKey(&m, "enter"); got != nil {
		t.Errorf("Blurred sidebar emitted %T", got)
	}
	if m.cursor != 0 {
		t.Errorf("Blurred sidebar moved cursor to %d", m.cursor)
	}
}

func TestSidebarEmptyList(t *testing.T) {
	m := New(28)
	m.Focus()

	if got := pressKey(&m, "enter"); got != nil {
		t.Errorf("Empty list emitted %T on enter", got)
	}
	if !strings.Contains(m.View(), "No saved chats yet") {
		t.Error("Empty sidebar should show placeholder text")
	}
}

func TestSidebarTruncatesLongTitles(t *testing.T) {
	m := New(16)
	m.SetItems([]model.ThreadSummary{
		{ID: "t1", Title: "An extremely long conversation title that cannot fit"},
	})

	view := m.View()
	if !strings.Contains(view, "...") {
		t.Errorf("Long title should be truncated with ellipsis:\n%s", view)
	}
}
