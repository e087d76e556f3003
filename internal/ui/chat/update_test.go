// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/tickertalk/tickertalk-tui/internal/api"
	"github.com/tickertalk/tickertalk-tui/internal/model"
)

func testModel() *Model {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(api.NewClient(), log)
}

func typeAndSubmit(m *Model, text string) tea.Cmd {
	m.input.SetValue(text)
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitBlankIsNoOp(t *testing.T) {
	m := testModel()
	before := m.conv.MessageCount()

	if cmd := typeAndSubmit(m, "   "); cmd != nil {
		t.Error("Blank submit should produce no command")
	}
	if m.conv.MessageCount() != before {
		t.Error("Blank submit should not append a message")
	}
	if m.state != stateIdle {
		t.Error("Blank submit should not enter awaiting state")
	}
}

func TestSubmitAppendsAndAwaits(t *testing.T) {
	m := testModel()

	cmd := typeAndSubmit(m, "should I buy AAPL?")
	if cmd == nil {
		t.Fatal("Submit should produce a command")
	}
	if m.state != stateAwaiting {
		t.Errorf("Expected awaiting state, got %v", m.state)
	}

	msgs := m.conv.Messages
	last := msgs[len(msgs)-1]
	if last.Role != model.RoleUser || last.Content != "should I buy AAPL?" {
		t.Errorf("User message not appended last: %+v", last)
	}
	if m.input.Value() != "" {
		t.Error("Input should be cleared after submit")
	}
}

func TestSubmitWhileAwaitingIgnored(t *testing.T) {
	m := testModel()
	typeAndSubmit(m, "first question")
	count := m.conv.MessageCount()

	if cmd := typeAndSubmit(m, "second question"); cmd != nil {
		t.Error("Submit while awaiting should produce no command")
	}
	if m.conv.MessageCount() != count {
		t.Error("Submit while awaiting should not append")
	}
}

func TestFirstExchangeStartsRotation(t *testing.T) {
	m := testModel()
	typeAndSubmit(m, "first question")
	if !m.rotator.Active() {
		t.Error("First exchange should start the rotating status")
	}
	if !strings.Contains(m.View(), m.rotator.Current()) {
		t.Error("Status line should show the current rotation phrase")
	}
}

func TestReplyPromotesAndStopsRotation(t *testing.T) {
	m := testModel()
	typeAndSubmit(m, "first question")

	cmd := m.Update(replyMsg{
		convKey:  m.conv.Key,
		response: "AAPL looks steady.",
		threadID: "t-42",
	})
	if m.conv.ID != "t-42" {
		t.Errorf("Conversation not promoted, ID %q", m.conv.ID)
	}
	if m.rotator.Active() {
		t.Error("Rotation should stop when the reply lands")
	}
	if m.state != stateIdle {
		t.Errorf("Expected idle after reply, got %v", m.state)
	}

	// The promotion notice is batched among the follow-up commands.
	if !emitsPromotion(t, cmd, "t-42") {
		t.Error("Reply should emit PromotedMsg for the owner")
	}

	last := m.conv.Messages[len(m.conv.Messages)-1]
	if last.Role != model.RoleAssistant || last.Content != "AAPL looks steady." {
		t.Errorf("Assistant reply not appended last: %+v", last)
	}
}

func TestContinuationDoesNotRotate(t *testing.T) {
	m := testModel()
	typeAndSubmit(m, "first question")
	m.Update(replyMsg{convKey: m.conv.Key, response: "ok", threadID: "t-1"})

	typeAndSubmit(m, "follow up")
	if m.rotator.Active() {
		t.Error("Continuation exchanges should show the static label, not rotation")
	}
	if !strings.Contains(m.View(), "Working") {
		t.Error("Continuation await should show the Working label")
	}
}

func TestLateReplyForAbandonedConversationDropped(t *testing.T) {
	m := testModel()
	typeAndSubmit(m, "first question")
	staleKey := m.conv.Key

	m.Reset()
	count := m.conv.MessageCount()

	m.Update(replyMsg{convKey: staleKey, response: "too late", threadID: "t-9"})
	if m.conv.MessageCount() != count {
		t.Error("Reply for an abandoned conversation must not append")
	}
	if m.conv.Saved() {
		t.Error("Stale reply must not promote the new conversation")
	}
}

func TestReplyErrorBecomesAssistantMessage(t *testing.T) {
	m := testModel()
	typeAndSubmit(m, "first question")

	m.Update(replyMsg{convKey: m.conv.Key, err: api.ErrUnreachable})
	last := m.conv.Messages[len(m.conv.Messages)-1]
	if last.Role != model.RoleAssistant {
		t.Fatalf("Error should land as an assistant message, got %+v", last)
	}
	if !strings.Contains(last.Content, "Cannot reach the analysis service") {
		t.Errorf("Unexpected error copy: %q", last.Content)
	}
	if m.conv.Saved() {
		t.Error("Failed first exchange must leave the conversation unsaved")
	}
	if m.state != stateIdle {
		t.Error("Failed reply should return to idle so the user can retry")
	}
}

func TestReplyWithDirectiveSpawnsWidget(t *testing.T) {
	m := testModel()
	typeAndSubmit(m, "show me AAPL")

	m.Update(replyMsg{
		convKey:  m.conv.Key,
		response: "Here is the overview.\n\nDASHBOARD:AAPL",
		threadID: "t-1",
	})
	if len(m.widgets) != 1 {
		t.Fatalf("Expected one dashboard card, got %d", len(m.widgets))
	}
	for _, w := range m.widgets {
		if w.Symbol() != "AAPL" {
			t.Errorf("Card symbol %q", w.Symbol())
		}
	}
	if strings.Contains(m.viewport.View(), "DASHBOARD:") {
		t.Error("Directive marker must not appear in the transcript")
	}
}

func TestHistoryLoadRehydratesWidgets(t *testing.T) {
	m := testModel()
	cmd := m.OpenThread("t-7")
	if cmd == nil {
		t.Fatal("OpenThread should produce a load command")
	}
	if m.state != stateLoadingHistory {
		t.Errorf("Expected loading state, got %v", m.state)
	}

	m.Update(historyMsg{
		convKey:  m.conv.Key,
		threadID: "t-7",
		messages: []model.Message{
			model.NewUserMessage("show me MSFT"),
			model.NewAssistantMessage("Sure.\n\nDASHBOARD:MSFT"),
			model.NewUserMessage("and the outlook?"),
			model.NewAssistantMessage("Stable."),
		},
	})

	if m.conv.ID != "t-7" {
		t.Errorf("Conversation ID %q after history load", m.conv.ID)
	}
	if m.state != stateIdle {
		t.Errorf("Expected idle after history load, got %v", m.state)
	}
	if len(m.widgets) != 1 {
		t.Fatalf("Expected one rehydrated card, got %d", len(m.widgets))
	}
	if w, ok := m.widgets[1]; !ok || w.Symbol() != "MSFT" {
		t.Error("Card should sit under the directive-bearing message")
	}
}

func TestStaleHistoryLoadDropped(t *testing.T) {
	m := testModel()
	m.OpenThread("t-7")
	staleKey := m.conv.Key

	// User changes their mind before the transcript arrives.
	m.Reset()
	m.Update(historyMsg{
		convKey:  staleKey,
		threadID: "t-7",
		messages: []model.Message{model.NewUserMessage("old")},
	})

	if m.conv.ID != "" {
		t.Error("Stale history load must not apply to the new conversation")
	}
}

// emitsPromotion runs cmd (flattening batches) and reports whether a
// PromotedMsg with the given ID comes out.
func emitsPromotion(t *testing.T, cmd tea.Cmd, id string) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	msg := cmd()
	switch msg := msg.(type) {
	case PromotedMsg:
		return msg.ID == id
	case tea.BatchMsg:
		for _, sub := range msg {
			if emitsPromotion(t, sub, id) {
				return true
			}
		}
	}
	return false
}
