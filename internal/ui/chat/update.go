// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/tickertalk/tickertalk-tui/internal/api"
	"github.com/tickertalk/tickertalk-tui/internal/directive"
	"github.com/tickertalk/tickertalk-tui/internal/model"
	"github.com/tickertalk/tickertalk-tui/internal/ui/components"
	"github.com/tickertalk/tickertalk-tui/internal/ui/widget"
)

// ============================================================================
// UPDATE
// ============================================================================

// Update handles chat pane messages and returns follow-up commands.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		return m.handleReply(msg)

	case historyMsg:
		return m.handleHistory(msg)

	case components.RotateTickMsg:
		return m.rotator.Advance(msg)

	case spinner.TickMsg:
		if m.state == stateIdle {
			return nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.state == stateAwaiting || m.state == stateLoadingHistory {
			m.refreshViewport()
		}
		return cmd

	case widget.SnapshotMsg:
		var cmds []tea.Cmd
		for _, w := range m.widgets {
			if cmd := w.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		m.refreshViewport()
		return tea.Batch(cmds...)
	}

	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submit sends the typed query. Blank input is a no-op, and a second
// submit while a reply is pending is ignored.
func (m *Model) submit() tea.Cmd {
	if m.state != stateIdle {
		return nil
	}
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return nil
	}

	firstExchange := !m.conv.Saved()
	m.conv.AddUserMessage(query)
	m.input.Reset()
	m.state = stateAwaiting
	m.refreshViewport()

	m.log.WithFields(logrus.Fields{
		"thread_id": m.conv.ID,
		"first":     firstExchange,
	}).Info("query submitted")

	cmds := []tea.Cmd{m.send(query), m.spin.Tick}
	if firstExchange {
		cmds = append(cmds, m.rotator.Start())
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleReply(msg replyMsg) tea.Cmd {
	if msg.convKey != m.conv.Key {
		m.log.Debug("discarding reply for abandoned conversation")
		return nil
	}

	m.rotator.Stop()
	m.state = stateIdle

	var cmds []tea.Cmd
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("analyze failed")
		m.conv.AddAssistantMessage(errorReply(msg.err))
	} else {
		promoted := false
		if !m.conv.Saved() {
			m.conv.Promote(msg.threadID)
			promoted = true
		}
		m.conv.AddAssistantMessage(msg.response)

		if d, ok := directive.Parse(msg.response); ok {
			w := widget.New(m.client, d.Symbol)
			w.SetWidth(min(m.width-2, 72))
			m.widgets[m.conv.MessageCount()-1] = w
			cmds = append(cmds, w.Load())
		}
		if promoted {
			id := m.conv.ID
			cmds = append(cmds, func() tea.Msg { return PromotedMsg{ID: id} })
		}
	}

	m.refreshViewport()
	return tea.Batch(cmds...)
}

func (m *Model) handleHistory(msg historyMsg) tea.Cmd {
	if msg.convKey != m.conv.Key {
		return nil
	}

	m.state = stateIdle
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("thread load failed")
		m.conv.AddAssistantMessage(errorReply(msg.err))
		m.refreshViewport()
		return nil
	}

	m.conv.Replace(msg.threadID, msg.messages)

	// Rehydrate dashboard cards for every directive in the transcript.
	var cmds []tea.Cmd
	m.widgets = make(map[int]*widget.Model)
	for i, message := range m.conv.Messages {
		if message.Role != model.RoleAssistant {
			continue
		}
		if d, ok := directive.Parse(message.Content); ok {
			w := widget.New(m.client, d.Symbol)
			w.SetWidth(min(m.width-2, 72))
			m.widgets[i] = w
			cmds = append(cmds, w.Load())
		}
	}

	m.refreshViewport()
	return tea.Batch(cmds...)
}

// errorReply turns a failed call into readable assistant copy.
func errorReply(err error) string {
	switch {
	case errors.Is(err, api.ErrRateLimited):
		return "Rate limit reached. Please wait a moment before asking again."
	case errors.Is(err, api.ErrUnreachable):
		return "Cannot reach the analysis service. Check your connection."
	default:
		return "Something went wrong while analyzing your question. Please try again."
	}
}
