// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "strings"

// sparkLevels are the vertical resolution steps, lowest to highest.
// ASCII only so the output survives limited terminal fonts.
var sparkLevels = []byte{'_', '.', '-', '=', '^'}

// Sparkline renders a compact price chart as a single line of text.
// Values are resampled to fit width. Returns "" when there is nothing
// worth drawing.
func Sparkline(values []float64, width int) string {
	if len(values) < 2 || width < 2 {
		return ""
	}
	if len(values) > width {
		values = resample(values, width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var b strings.Builder
	b.Grow(len(values))
	span := hi - lo
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkLevels)-1))
			if idx >= len(sparkLevels) {
				idx = len(sparkLevels) - 1
			}
		}
		b.WriteByte(sparkLevels[idx])
	}
	return b.String()
}

// resample picks width evenly spaced points from values.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	return out
}
