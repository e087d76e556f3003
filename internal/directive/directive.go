// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package directive extracts embedded dashboard requests from assistant
// message text.
//
// The backend's analyst appends a line of the form "DASHBOARD:TICKER" to a
// reply when a stock dashboard should be rendered beneath it. Parse is a
// pure function of the message content and is re-run on every render pass,
// so it must stay cheap and allocation-light.
package directive

import "strings"

// Marker is the literal token that introduces a dashboard request.
const Marker = "DASHBOARD:"

// Directive is a parsed dashboard request.
type Directive struct {
	Symbol string
}

// Parse scans content for the marker and returns the requested symbol.
// The symbol is the first whitespace-delimited token after the marker, so
// both "DASHBOARD:AAPL" and "DASHBOARD: AAPL today" parse to AAPL. A
// missing marker, or a marker with nothing after it, yields ok=false.
func Parse(content string) (Directive, bool) {
	idx := strings.Index(content, Marker)
	if idx < 0 {
		return Directive{}, false
	}

	rest := strings.TrimSpace(content[idx+len(Marker):])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Directive{}, false
	}

	return Directive{Symbol: fields[0]}, true
}

// Strip removes the line carrying the marker from content, so the transcript
// can show the assistant's prose without the machine-readable trailer. If no
// marker is present the content is returned unchanged.
func Strip(content string) string {
	idx := strings.Index(content, Marker)
	if idx < 0 {
		return content
	}

	lineStart := strings.LastIndexByte(content[:idx], '\n') + 1
	lineEnd := strings.IndexByte(content[idx:], '\n')
	if lineEnd < 0 {
		return strings.TrimRight(content[:lineStart], "\n")
	}
	return content[:lineStart] + content[idx+lineEnd+1:]
}
