// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tickertalk is a terminal client for a stock-analysis assistant. It holds
// a chat conversation, lists saved threads in a sidebar, and embeds live
// dashboard cards when the assistant references a ticker.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/tickertalk/tickertalk-tui/internal/api"
	"github.com/tickertalk/tickertalk-tui/internal/config"
	"github.com/tickertalk/tickertalk-tui/internal/logging"
	"github.com/tickertalk/tickertalk-tui/internal/model"
	"github.com/tickertalk/tickertalk-tui/internal/ui/chat"
	"github.com/tickertalk/tickertalk-tui/internal/ui/components"
	"github.com/tickertalk/tickertalk-tui/internal/ui/styles"
	"github.com/tickertalk/tickertalk-tui/internal/ui/threads"
)

// ============================================================================
// MESSAGES
// ============================================================================

// threadsMsg carries the refreshed saved-thread list.
type threadsMsg struct {
	items []model.ThreadSummary
	err   error
}

// threadDeletedMsg reports the outcome of a delete.
type threadDeletedMsg struct {
	id  string
	err error
}

// ============================================================================
// APP MODEL
// ============================================================================

type appModel struct {
	cfg    *config.Config
	log    *logrus.Logger
	client *api.Client

	chat    *chat.Model
	sidebar threads.Model
	confirm components.ConfirmDialog

	pendingDelete  string
	notice         string
	sidebarVisible bool
	width          int
	height         int
}

func newApp(cfg *config.Config, log *logrus.Logger, client *api.Client) appModel {
	c := chat.New(client, log)
	c.Focus()
	return appModel{
		cfg:            cfg,
		log:            log,
		client:         client,
		chat:           c,
		sidebar:        threads.New(cfg.UI.SidebarWidth),
		confirm:        components.NewConfirmDialog(),
		sidebarVisible: true,
	}
}

func (a appModel) Init() tea.Cmd {
	return a.listThreads()
}

// ============================================================================
// COMMANDS
// ============================================================================

func (a appModel) listThreads() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		items, err := client.ListThreads(context.Background())
		return threadsMsg{items: items, err: err}
	}
}

func (a appModel) deleteThread(id string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.DeleteThread(context.Background(), id)
		return threadDeletedMsg{id: id, err: err}
	}
}

// ============================================================================
// UPDATE
// ============================================================================

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sidebarVisible = msg.Width >= a.cfg.UI.NarrowWidth
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case threadsMsg:
		if msg.err != nil {
			// Keep the previous list rather than blanking the sidebar.
			a.log.WithError(msg.err).Warn("thread list refresh failed")
			return a, nil
		}
		a.sidebar.SetItems(msg.items)
		return a, nil

	case threads.SelectedMsg:
		a.sidebar.SetActive(msg.ID)
		a.focusChat()
		return a, a.chat.OpenThread(msg.ID)

	case threads.DeleteRequestMsg:
		a.pendingDelete = msg.ID
		a.confirm.Show(fmt.Sprintf("Delete \"%s\"?", msg.Title))
		return a, nil

	case components.ConfirmResultMsg:
		id := a.pendingDelete
		a.pendingDelete = ""
		if !msg.Confirmed || id == "" {
			return a, nil
		}
		return a, a.deleteThread(id)

	case threadDeletedMsg:
		if msg.err != nil {
			a.log.WithError(msg.err).WithField("thread_id", msg.id).
				Warn("thread delete failed")
			// Deleting was an explicit action, so the failure is shown,
			// not just logged. Nothing else changes.
			a.notice = "Could not delete the conversation. Check your connection."
			return a, nil
		}
		if msg.id == a.chat.ActiveThreadID() {
			a.chat.Reset()
			a.sidebar.SetActive("")
		}
		return a, a.listThreads()

	case chat.PromotedMsg:
		a.sidebar.SetActive(msg.ID)
		return a, a.listThreads()
	}

	// Everything else (spinner ticks, rotation ticks, replies, snapshot
	// results) belongs to the chat pane.
	return a, a.chat.Update(msg)
}

func (a appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.notice != "" {
		// Any key dismisses the notice; the key itself is swallowed.
		a.notice = ""
		return a, nil
	}
	if a.confirm.Visible() {
		return a, a.confirm.Update(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "ctrl+n":
		a.chat.Reset()
		a.sidebar.SetActive("")
		a.focusChat()
		return a, nil
	case "tab":
		if a.sidebar.Focused() {
			a.focusChat()
		} else if a.sidebarVisible {
			a.chat.Blur()
			a.sidebar.Focus()
		}
		return a, nil
	}

	if a.sidebar.Focused() {
		return a, a.sidebar.Update(msg)
	}
	return a, a.chat.Update(msg)
}

func (a *appModel) focusChat() {
	a.sidebar.Blur()
	a.chat.Focus()
}

func (a *appModel) layout() {
	chatWidth := a.width
	if a.sidebarVisible {
		chatWidth -= a.cfg.UI.SidebarWidth + 1
	}
	if chatWidth < 20 {
		chatWidth = 20
	}
	a.chat.SetSize(chatWidth, a.height)
	a.sidebar.SetSize(a.cfg.UI.SidebarWidth, a.height)
	if !a.sidebarVisible && a.sidebar.Focused() {
		a.focusChat()
	}
}

// ============================================================================
// VIEW
// ============================================================================

var sidebarDivider = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderRight(true).
	BorderForeground(styles.Overlay)

var noticeBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.Rose).
	Padding(0, 2)

func (a appModel) View() string {
	var main string
	if a.sidebarVisible {
		main = lipgloss.JoinHorizontal(lipgloss.Top,
			sidebarDivider.Render(a.sidebar.View()),
			a.chat.View(),
		)
	} else {
		main = a.chat.View()
	}

	if a.notice != "" {
		return lipgloss.JoinVertical(lipgloss.Left, main,
			noticeBorder.Render(styles.ErrorText.Render(a.notice)))
	}
	if a.confirm.Visible() {
		return lipgloss.JoinVertical(lipgloss.Left, main, a.confirm.View())
	}
	return main
}

// ============================================================================
// ENTRY POINT
// ============================================================================

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var log *logrus.Logger
	if dir, err := config.DataDir(); err == nil {
		log = logging.Setup(dir)
	} else {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	client := api.NewClient().
		WithBaseURL(cfg.BaseURL).
		WithTimeout(time.Duration(cfg.TimeoutSecs) * time.Second).
		WithLogger(log)

	log.WithField("base_url", cfg.BaseURL).Info("starting")

	p := tea.NewProgram(newApp(cfg, log, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tickertalk: %v\n", err)
		os.Exit(1)
	}
}
