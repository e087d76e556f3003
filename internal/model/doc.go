// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, messages,
// thread summaries, and stock snapshots.
//
// These types mirror the backend's JSON wire format where they cross the
// network (Message, ThreadSummary, Snapshot) and add the small amount of
// client-side state the UI needs on top (Conversation identity and title
// derivation).
package model
