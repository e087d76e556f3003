// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "testing"

func TestSparklineEmptyInputs(t *testing.T) {
	if got := Sparkline(nil, 20); got != "" {
		t.Errorf("Expected empty line for nil values, got %q", got)
	}
	if got := Sparkline([]float64{1}, 20); got != "" {
		t.Errorf("Expected empty line for a single point, got %q", got)
	}
	if got := Sparkline([]float64{1, 2, 3}, 1); got != "" {
		t.Errorf("Expected empty line for width 1, got %q", got)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	got := Sparkline([]float64{5, 5, 5, 5}, 10)
	if got != "____" {
		t.Errorf("Flat series should render the lowest level, got %q", got)
	}
}

func TestSparklineExtremes(t *testing.T) {
	got := Sparkline([]float64{0, 100}, 10)
	if got != "_^" {
		t.Errorf("Expected min and max levels, got %q", got)
	}
}

func TestSparklineResamplesToWidth(t *testing.T) {
	values := make([]float64, 200)
	for i := range values {
		values[i] = float64(i)
	}
	got := Sparkline(values, 40)
	if len(got) != 40 {
		t.Errorf("Expected 40 cells after resampling, got %d", len(got))
	}
	if got[0] != '_' || got[len(got)-1] != '^' {
		t.Errorf("Monotone series should span min to max, got %q", got)
	}
}
