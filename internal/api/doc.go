// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the stock-analysis backend.
//
// The backend exposes five operations: list threads, fetch one thread's
// history, delete a thread, continue (or start) a conversation, and fetch a
// stock snapshot. The client's job beyond plumbing is error classification:
// callers need to distinguish quota exhaustion, missing data, other server
// errors, and total unreachability, because each produces different
// user-visible text. There are no automatic retries anywhere - recovery is
// always user-triggered.
package api
