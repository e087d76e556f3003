// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the tickertalk TUI.
package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// STATUS ROTATOR
// =============================================================================

// RotateInterval is how long each narration phrase is shown.
const RotateInterval = 3 * time.Second

// DefaultPhrases narrates a first exchange. The backend routes a brand-new
// question through several market-data tools before answering, so there is
// real work worth narrating; continuations skip this and show a static
// label instead.
var DefaultPhrases = []string{
	"Analyzing your question",
	"Calling market data tools",
	"Reading the latest headlines",
	"Reviewing fundamentals",
	"Drafting the analysis",
}

// RotateTickMsg advances the rotating status text. Generation ties a tick
// to the awaiting period that scheduled it; ticks from a finished period
// are inert, which is what guarantees no timer outlives its period.
type RotateTickMsg struct {
	Generation int
}

// StatusRotator cycles a status string through a fixed ordered phrase list
// at a fixed interval, wrapping around. Each Start begins a new generation
// at the first phrase; Stop makes any in-flight tick for the previous
// generation a no-op.
type StatusRotator struct {
	phrases    []string
	index      int
	generation int
	active     bool
}

// NewStatusRotator creates a rotator over the default phrase list.
func NewStatusRotator() StatusRotator {
	return StatusRotator{phrases: DefaultPhrases}
}

// NewStatusRotatorWithPhrases creates a rotator over a custom phrase list.
func NewStatusRotatorWithPhrases(phrases []string) StatusRotator {
	return StatusRotator{phrases: phrases}
}

// Start activates the rotator at the first phrase under a fresh generation
// and returns the command scheduling the first tick.
func (r *StatusRotator) Start() tea.Cmd {
	r.generation++
	r.index = 0
	r.active = true
	return r.tick()
}

// Stop deactivates the rotator. Late ticks from the stopped generation are
// discarded by Advance.
func (r *StatusRotator) Stop() {
	r.active = false
	r.generation++
}

// Advance moves to the next phrase in response to a tick. It returns the
// follow-up tick command, or nil when the tick belongs to a stale
// generation or the rotator is stopped.
func (r *StatusRotator) Advance(msg RotateTickMsg) tea.Cmd {
	if !r.active || msg.Generation != r.generation {
		return nil
	}
	r.index = (r.index + 1) % len(r.phrases)
	return r.tick()
}

// Active reports whether the rotator is running.
func (r *StatusRotator) Active() bool {
	return r.active
}

// Current returns the phrase to display, or "" when inactive.
func (r *StatusRotator) Current() string {
	if !r.active || len(r.phrases) == 0 {
		return ""
	}
	return r.phrases[r.index]
}

// tick schedules the next rotation for the current generation.
func (r *StatusRotator) tick() tea.Cmd {
	gen := r.generation
	return tea.Tick(RotateInterval, func(time.Time) tea.Msg {
		return RotateTickMsg{Generation: gen}
	})
}
