// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "github.com/google/uuid"

// Greeting is the canned assistant message every fresh conversation opens
// with. It exists purely client-side and is never sent to the backend.
const Greeting = "Hi! I'm your stock analysis assistant. Ask me about a ticker, " +
	"today's market movers, or a company's fundamentals."

// titleRunes is the maximum title length derived from the first user
// message, matching the backend's own thread-title truncation.
const titleRunes = 50

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the active chat transcript and its identity.
//
// ID is the backend-assigned thread identifier. It is empty for a brand-new
// conversation and becomes stable after the first successful exchange
// ("promotion"). Key is a purely local identity assigned at creation; it
// never changes, so late replies can be matched to the conversation they
// were issued for even across promotion or after the user has switched away.
type Conversation struct {
	ID       string
	Key      string
	Title    string
	Messages []Message
}

// NewConversation creates an unsaved conversation seeded with the greeting.
func NewConversation() *Conversation {
	return &Conversation{
		Key:      uuid.NewString(),
		Messages: []Message{NewAssistantMessage(Greeting)},
	}
}

// Saved reports whether the backend has assigned this conversation an id.
func (c *Conversation) Saved() bool {
	return c.ID != ""
}

// Promote adopts the backend-assigned id after the first successful
// exchange. Once set the id is stable; later calls are no-ops.
func (c *Conversation) Promote(id string) {
	if c.ID == "" {
		c.ID = id
	}
}

// AddUserMessage appends a user message and derives the title from it if
// this is the first user message of the conversation.
func (c *Conversation) AddUserMessage(content string) {
	msg := NewUserMessage(content)
	c.Messages = append(c.Messages, msg)
	if c.Title == "" {
		c.Title = msg.Preview(titleRunes)
	}
}

// AddAssistantMessage appends an assistant message.
func (c *Conversation) AddAssistantMessage(content string) {
	c.Messages = append(c.Messages, NewAssistantMessage(content))
}

// Replace swaps in a transcript fetched from the backend, adopting the
// given thread id. Used when the user selects a saved thread; the previous
// message sequence is discarded wholesale, never merged.
func (c *Conversation) Replace(id string, messages []Message) {
	c.ID = id
	c.Messages = messages
	c.Title = ""
	for _, msg := range messages {
		if msg.Role == RoleUser {
			c.Title = msg.Preview(titleRunes)
			break
		}
	}
}

// MessageCount returns the number of messages in the transcript.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// =============================================================================
// THREAD SUMMARY
// =============================================================================

// ThreadSummary is the lightweight projection the sidebar lists. It never
// carries message history.
type ThreadSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
