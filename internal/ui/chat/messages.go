// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/tickertalk/tickertalk-tui/internal/model"

// ============================================================================
// MESSAGES
// ============================================================================

// PromotedMsg tells the owner a first exchange completed and the
// conversation now exists server-side under ID. The owner typically
// refreshes the sidebar in response.
type PromotedMsg struct {
	ID string
}

// replyMsg carries an analyze result. convKey pins it to the conversation
// that sent the query, so replies for an abandoned conversation are
// silently dropped.
type replyMsg struct {
	convKey  string
	response string
	threadID string
	err      error
}

// historyMsg carries a loaded thread transcript.
type historyMsg struct {
	convKey  string
	threadID string
	messages []model.Message
	err      error
}
