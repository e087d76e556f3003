// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// send runs the analyze call off the update loop. It captures the
// conversation key and thread ID at submit time: if the user switches
// conversations before the reply lands, the key no longer matches and the
// reply is discarded.
func (m *Model) send(query string) tea.Cmd {
	key := m.conv.Key
	threadID := m.conv.ID
	client := m.client
	return func() tea.Msg {
		res, err := client.Analyze(context.Background(), query, threadID)
		if err != nil {
			return replyMsg{convKey: key, err: err}
		}
		return replyMsg{convKey: key, response: res.Response, threadID: res.ThreadID}
	}
}

// loadHistory fetches a saved thread's transcript.
func (m *Model) loadHistory(id string) tea.Cmd {
	key := m.conv.Key
	client := m.client
	return func() tea.Msg {
		msgs, err := client.GetThread(context.Background(), id)
		return historyMsg{convKey: key, threadID: id, messages: msgs, err: err}
	}
}
