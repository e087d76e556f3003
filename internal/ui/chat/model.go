// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/tickertalk/tickertalk-tui/internal/api"
	"github.com/tickertalk/tickertalk-tui/internal/model"
	"github.com/tickertalk/tickertalk-tui/internal/ui/components"
	"github.com/tickertalk/tickertalk-tui/internal/ui/styles"
	"github.com/tickertalk/tickertalk-tui/internal/ui/widget"
)

// ============================================================================
// STATE
// ============================================================================

type state int

const (
	stateIdle state = iota
	stateAwaiting
	stateLoadingHistory
)

// ============================================================================
// MODEL
// ============================================================================

// Model is the chat pane.
type Model struct {
	client *api.Client
	log    *logrus.Logger

	conv    *model.Conversation
	widgets map[int]*widget.Model

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	rotator  components.StatusRotator
	renderer *glamour.TermRenderer

	state  state
	keys   KeyMap
	width  int
	height int
}

// New returns a chat pane holding a fresh unsaved conversation.
func New(client *api.Client, log *logrus.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "Ask about a stock..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Purple)

	m := &Model{
		client:  client,
		log:     log,
		conv:    model.NewConversation(),
		widgets: make(map[int]*widget.Model),
		input:   input,
		spin:    sp,
		rotator: components.NewStatusRotator(),
		keys:    DefaultKeyMap(),
		width:   80,
		height:  24,
	}
	m.viewport = viewport.New(m.width, m.transcriptHeight())
	m.rebuildRenderer()
	m.refreshViewport()
	return m
}

// ActiveThreadID is the server ID of the open conversation, or "" while
// unsaved.
func (m *Model) ActiveThreadID() string {
	return m.conv.ID
}

// Awaiting reports whether an analyze call is in flight.
func (m *Model) Awaiting() bool {
	return m.state == stateAwaiting
}

// Focus gives the input line key focus.
func (m *Model) Focus() {
	m.input.Focus()
}

// Blur removes key focus from the input line.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the input line has key focus.
func (m *Model) Focused() bool {
	return m.input.Focused()
}

// SetSize resizes the pane and re-wraps rendered markdown.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = m.transcriptHeight()
	m.input.Width = width - 4
	for _, w := range m.widgets {
		w.SetWidth(min(width-2, 72))
	}
	m.rebuildRenderer()
	m.refreshViewport()
}

// Reset discards the open conversation for a fresh unsaved one. Any reply
// still in flight dies with the old conversation key.
func (m *Model) Reset() {
	m.rotator.Stop()
	m.conv = model.NewConversation()
	m.widgets = make(map[int]*widget.Model)
	m.state = stateIdle
	m.input.Reset()
	m.refreshViewport()
}

// OpenThread discards the open conversation and starts loading the given
// saved thread's transcript.
func (m *Model) OpenThread(id string) tea.Cmd {
	m.rotator.Stop()
	m.conv = model.NewConversation()
	m.widgets = make(map[int]*widget.Model)
	m.state = stateLoadingHistory
	m.input.Reset()
	m.refreshViewport()
	return tea.Batch(m.spin.Tick, m.loadHistory(id))
}

func (m *Model) rebuildRenderer() {
	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.log.WithError(err).Warn("markdown renderer unavailable, using plain text")
		m.renderer = nil
		return
	}
	m.renderer = r
}

// 3 rows reserved below the transcript for status and input.
func (m *Model) transcriptHeight() int {
	h := m.height - 3
	if h < 3 {
		h = 3
	}
	return h
}
