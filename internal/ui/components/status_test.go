// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "testing"

// tick fabricates the message a scheduled tick would deliver for the
// rotator's current generation.
func tick(r *StatusRotator) RotateTickMsg {
	return RotateTickMsg{Generation: r.generation}
}

// TestRotatorStartsAtFirstPhrase verifies every awaiting period restarts
// the cycle at phrase zero.
func TestRotatorStartsAtFirstPhrase(t *testing.T) {
	r := NewStatusRotatorWithPhrases([]string{"one", "two", "three"})

	r.Start()
	if r.Current() != "one" {
		t.Errorf("Expected first phrase after Start, got %q", r.Current())
	}

	// Advance mid-cycle, stop, and start again: must restart at "one".
	r.Advance(tick(&r))
	r.Stop()
	r.Start()
	if r.Current() != "one" {
		t.Errorf("Restart should reset to first phrase, got %q", r.Current())
	}
}

// TestRotatorOrderAndWrap verifies phrases are visited in the fixed order
// and wrap around.
func TestRotatorOrderAndWrap(t *testing.T) {
	r := NewStatusRotatorWithPhrases([]string{"one", "two", "three"})
	r.Start()

	want := []string{"two", "three", "one", "two"}
	for i, w := range want {
		if cmd := r.Advance(tick(&r)); cmd == nil {
			t.Fatalf("Advance %d returned no follow-up tick", i)
		}
		if r.Current() != w {
			t.Errorf("After advance %d expected %q, got %q", i, w, r.Current())
		}
	}
}

// TestRotatorStopKillsLateTicks verifies a tick scheduled before Stop does
// nothing after it: the timer cannot leak into the next period.
func TestRotatorStopKillsLateTicks(t *testing.T) {
	r := NewStatusRotator()
	r.Start()
	stale := tick(&r)
	r.Stop()

	if cmd := r.Advance(stale); cmd != nil {
		t.Error("Stale tick after Stop must not reschedule")
	}
	if r.Current() != "" {
		t.Errorf("Stopped rotator should render nothing, got %q", r.Current())
	}
}

// TestRotatorStaleGenerationIgnored verifies a tick from a previous
// awaiting period does not advance the current one.
func TestRotatorStaleGenerationIgnored(t *testing.T) {
	r := NewStatusRotatorWithPhrases([]string{"one", "two"})
	r.Start()
	stale := tick(&r)

	r.Stop()
	r.Start() // second period

	if cmd := r.Advance(stale); cmd != nil {
		t.Error("Tick from a previous period must be inert")
	}
	if r.Current() != "one" {
		t.Errorf("Stale tick advanced the new period: %q", r.Current())
	}
}
