// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks a message typed by the user.
	RoleUser Role = "user"

	// RoleAssistant marks a message produced by the analysis backend
	// (or synthesized client-side when a backend call fails).
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry. Messages are immutable once
// appended to a conversation; the transcript renders them in append order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Preview returns the first maxRunes runes of the content with newlines
// collapsed, appending "..." when truncated. Used for thread titles.
func (m Message) Preview(maxRunes int) string {
	flat := strings.Join(strings.Fields(m.Content), " ")
	runes := []rune(flat)
	if len(runes) <= maxRunes {
		return flat
	}
	return string(runes[:maxRunes]) + "..."
}
