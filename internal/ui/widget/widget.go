// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget renders an inline stock dashboard card inside the chat
// transcript. Each card owns its own fetch lifecycle: a spinner while the
// snapshot loads, a compact quote panel on success, and a readable error
// line on failure.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/tickertalk/tickertalk-tui/internal/api"
	"github.com/tickertalk/tickertalk-tui/internal/model"
	"github.com/tickertalk/tickertalk-tui/internal/ui/components"
	"github.com/tickertalk/tickertalk-tui/internal/ui/styles"
)

// ============================================================================
// STATES
// ============================================================================

// State is the card's fetch lifecycle phase.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

// ============================================================================
// MESSAGES
// ============================================================================

// SnapshotMsg carries a fetch result back to the card that requested it.
// Key and Generation let Update discard results that no longer belong to
// the card's current symbol.
type SnapshotMsg struct {
	Key        string
	Generation int
	Snapshot   *model.Snapshot
	Err        error
}

// ============================================================================
// MODEL
// ============================================================================

// Model is one inline dashboard card.
type Model struct {
	client *api.Client

	key        string
	symbol     string
	generation int
	state      State

	snapshot *model.Snapshot
	err      error

	spinner spinner.Model
	width   int
}

// New returns a card for symbol in the loading state. Call Load to kick
// off the fetch.
func New(client *api.Client, symbol string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Purple)

	return &Model{
		client:  client,
		key:     uuid.NewString(),
		symbol:  strings.ToUpper(symbol),
		state:   StateLoading,
		spinner: sp,
		width:   60,
	}
}

// Key identifies this card across async messages.
func (m *Model) Key() string { return m.key }

// Symbol is the ticker the card currently shows.
func (m *Model) Symbol() string { return m.symbol }

// SetWidth constrains the rendered card.
func (m *Model) SetWidth(w int) {
	if w > 0 {
		m.width = w
	}
}

// Load starts the snapshot fetch for the current symbol and returns the
// spinner tick alongside it.
func (m *Model) Load() tea.Cmd {
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

// SetSymbol switches the card to a new ticker. The generation bump makes
// any in-flight result for the old symbol inert.
func (m *Model) SetSymbol(symbol string) tea.Cmd {
	m.symbol = strings.ToUpper(symbol)
	m.generation++
	m.state = StateLoading
	m.snapshot = nil
	m.err = nil
	return m.Load()
}

func (m *Model) fetch() tea.Cmd {
	key := m.key
	gen := m.generation
	symbol := m.symbol
	client := m.client
	return func() tea.Msg {
		snap, err := client.StockSnapshot(context.Background(), symbol)
		return SnapshotMsg{Key: key, Generation: gen, Snapshot: snap, Err: err}
	}
}

// ============================================================================
// UPDATE
// ============================================================================

// Update handles spinner ticks and fetch results. Results keyed to another
// card or a superseded generation are dropped without touching state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SnapshotMsg:
		if msg.Key != m.key || msg.Generation != m.generation {
			return nil
		}
		if msg.Err != nil {
			m.state = StateFailed
			m.err = msg.Err
			return nil
		}
		m.state = StateLoaded
		m.snapshot = msg.Snapshot
		return nil

	case spinner.TickMsg:
		if m.state != StateLoading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

// ============================================================================
// VIEW
// ============================================================================

var (
	widgetTitle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	widgetLabel = lipgloss.NewStyle().Foreground(styles.TextMuted)
	widgetValue = lipgloss.NewStyle().Foreground(styles.TextPrimary)
)

// View renders the card for its current state.
func (m *Model) View() string {
	var body string
	switch m.state {
	case StateLoading:
		body = fmt.Sprintf("%s Loading %s data", m.spinner.View(),
			widgetTitle.Render(m.symbol))
	case StateFailed:
		body = styles.ErrorText.Render(errorLine(m.err))
	case StateLoaded:
		body = m.renderSnapshot()
	}
	return styles.PanelBorder.Width(m.width).Render(body)
}

func (m *Model) renderSnapshot() string {
	s := m.snapshot
	if s == nil || !s.HasPrice() {
		return styles.ErrorText.Render("No data available for this symbol.")
	}

	change := styles.Gain
	arrow := "+"
	if s.Change < 0 {
		change = styles.Loss
		arrow = ""
	}

	header := fmt.Sprintf("%s  %s",
		widgetTitle.Render(s.Symbol),
		widgetValue.Render(s.Company))
	price := fmt.Sprintf("%s  %s",
		widgetValue.Bold(true).Render(fmt.Sprintf("$%.2f", *s.Price)),
		change.Render(fmt.Sprintf("%s%.2f (%s%.2f%%)", arrow, s.Change, arrow, s.Percent)))

	grid := lipgloss.JoinHorizontal(lipgloss.Top,
		statColumn("Open", fmt.Sprintf("%.2f", s.Open), "High", fmt.Sprintf("%.2f", s.High)),
		"   ",
		statColumn("Low", fmt.Sprintf("%.2f", s.Low), "Prev", fmt.Sprintf("%.2f", s.PrevClose)),
		"   ",
		statColumn("Vol", s.Volume, "MCap", s.MarketCap),
	)

	lines := []string{header, price, "", grid}
	if chart := chartLine(s.Chart, m.width-4); chart != "" {
		lines = append(lines, "", chart)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statColumn(l1, v1, l2, v2 string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s %s", widgetLabel.Render(l1+":"), widgetValue.Render(v1)),
		fmt.Sprintf("%s %s", widgetLabel.Render(l2+":"), widgetValue.Render(v2)),
	)
}

func chartLine(points []model.ChartPoint, width int) string {
	if len(points) == 0 {
		return ""
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Price
	}
	line := components.Sparkline(values, width)
	if line == "" {
		return ""
	}
	return widgetLabel.Render(line)
}

// errorLine maps fetch failures to the fixed copy shown in the card.
func errorLine(err error) string {
	switch {
	case errors.Is(err, api.ErrRateLimited):
		return "Rate limit reached. Please wait a moment before asking again."
	case errors.Is(err, api.ErrNoData):
		return "No data available for this symbol."
	case errors.Is(err, api.ErrUnreachable):
		return "Cannot reach the analysis service. Check your connection."
	default:
		return "Could not load dashboard data."
	}
}
