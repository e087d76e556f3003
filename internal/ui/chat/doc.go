// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat owns the active conversation: the transcript viewport, the
// input line, the awaiting-reply lifecycle, and the inline dashboard cards
// spawned by assistant replies.
//
// The package is deliberately self-contained. Its owner only needs to
// forward messages, hand it thread IDs to open, and react to PromotedMsg
// when a first exchange earns the conversation a server-side identity.
package chat
