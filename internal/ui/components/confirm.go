// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tickertalk/tickertalk-tui/internal/ui/styles"
)

// ============================================================================
// CONFIRM DIALOG
// ============================================================================

// ConfirmResultMsg is emitted when the user answers the dialog.
type ConfirmResultMsg struct {
	Confirmed bool
}

// ConfirmDialog is a modal yes/no prompt. While visible it swallows all
// key input so nothing destructive happens by accident.
type ConfirmDialog struct {
	prompt  string
	visible bool
}

// NewConfirmDialog returns a hidden dialog.
func NewConfirmDialog() ConfirmDialog {
	return ConfirmDialog{}
}

// Show makes the dialog visible with the given prompt.
func (d *ConfirmDialog) Show(prompt string) {
	d.prompt = prompt
	d.visible = true
}

// Hide dismisses the dialog without an answer.
func (d *ConfirmDialog) Hide() {
	d.visible = false
}

// Visible reports whether the dialog is currently shown.
func (d *ConfirmDialog) Visible() bool {
	return d.visible
}

// Update consumes key input while the dialog is visible. "y" and enter
// confirm, "n" and esc cancel, everything else is ignored.
func (d *ConfirmDialog) Update(msg tea.Msg) tea.Cmd {
	if !d.visible {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		d.visible = false
		return func() tea.Msg { return ConfirmResultMsg{Confirmed: true} }
	case "n", "N", "esc":
		d.visible = false
		return func() tea.Msg { return ConfirmResultMsg{Confirmed: false} }
	}
	return nil
}

var (
	confirmBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Rose).
			Padding(0, 2)

	confirmPrompt = lipgloss.NewStyle().
			Foreground(styles.TextPrimary).
			Bold(true)

	confirmHint = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// View renders the dialog, or an empty string while hidden.
func (d *ConfirmDialog) View() string {
	if !d.visible {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		confirmPrompt.Render(d.prompt),
		"",
		confirmHint.Render("y: confirm    n: cancel"),
	)
	return confirmBorder.Render(body)
}
