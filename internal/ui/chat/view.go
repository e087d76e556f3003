// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tickertalk/tickertalk-tui/internal/directive"
	"github.com/tickertalk/tickertalk-tui/internal/model"
	"github.com/tickertalk/tickertalk-tui/internal/ui/styles"
)

// ============================================================================
// VIEW
// ============================================================================

// View renders the transcript, status line, and input.
func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.statusLine(),
		m.inputLine(),
	)
}

// refreshViewport re-renders the transcript into the viewport and pins it
// to the newest message.
func (m *Model) refreshViewport() {
	var b strings.Builder
	for i, msg := range m.conv.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		if w, ok := m.widgets[i]; ok {
			b.WriteString("\n")
			b.WriteString(w.View())
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderMessage(msg model.Message) string {
	switch msg.Role {
	case model.RoleUser:
		return styles.UserLabel.Render("You") + "\n" + msg.Content + "\n"
	case model.RoleAssistant:
		content := directive.Strip(msg.Content)
		return styles.AssistantLabel.Render("Assistant") + "\n" +
			m.renderMarkdown(content)
	}
	return msg.Content
}

func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content + "\n"
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func (m *Model) statusLine() string {
	switch m.state {
	case stateAwaiting:
		if m.rotator.Active() {
			return m.spin.View() + " " + styles.StatusText.Render(m.rotator.Current()+"...")
		}
		return m.spin.View() + " " + styles.StatusText.Render("Working...")
	case stateLoadingHistory:
		return m.spin.View() + " " + styles.StatusText.Render("Loading conversation...")
	}
	return ""
}

func (m *Model) inputLine() string {
	if m.state == stateAwaiting {
		// Input is visually muted while a reply is pending.
		return styles.StatusText.Render("> waiting for reply")
	}
	return m.input.View()
}
