package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homefood/internal/domain/entity"
	"homefood/pkg/errors"
)

func newChatFixture(t *testing.T) (*ChatUseCase, *fakeMessageRepo, *fakeOrderRepo, *fakeNotifier, *entity.Order) {
	t.Helper()
	messageRepo := newFakeMessageRepo()
	orderRepo := newFakeOrderRepo()
	notifier := newFakeNotifier()
	uc := NewChatUseCase(messageRepo, orderRepo, notifier, nil)
	order := seedOrder(t, orderRepo, "buyer-1", "chef-1", entity.OrderStatusAccepted)
	return uc, messageRepo, orderRepo, notifier, order
}

func TestSendMessage(t *testing.T) {
	uc, _, _, notifier, order := newChatFixture(t)

	message, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID,
		Type:    entity.MessageTypeText,
		Text:    "Is the soup still warm?",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MessageStatusSent, message.Status)
	assert.Equal(t, "buyer-1", message.SenderID)
	assert.NotEmpty(t, message.ID)
	assert.False(t, message.CreatedAt.IsZero())

	// The chef, not the sender, gets the push.
	chefCalls := notifier.callsFor("chef-1")
	require.Len(t, chefCalls, 1)
	assert.Equal(t, "new_message", chefCalls[0].EventType)
	assert.Empty(t, notifier.callsFor("buyer-1"))
}

func TestSendMessageValidation(t *testing.T) {
	uc, _, orderRepo, _, order := newChatFixture(t)

	disabled := seedOrder(t, orderRepo, "buyer-1", "chef-1", entity.OrderStatusAccepted)
	disabled.ChatEnabled = false
	require.NoError(t, orderRepo.Update(context.Background(), disabled))

	tests := []struct {
		name     string
		senderID string
		input    SendMessageInput
		code     string
	}{
		{
			name:     "empty text",
			senderID: "buyer-1",
			input:    SendMessageInput{OrderID: order.ID, Type: entity.MessageTypeText},
			code:     "VALIDATION_ERROR",
		},
		{
			name:     "photo without media url",
			senderID: "buyer-1",
			input:    SendMessageInput{OrderID: order.ID, Type: entity.MessageTypePhoto},
			code:     "VALIDATION_ERROR",
		},
		{
			name:     "unknown type",
			senderID: "buyer-1",
			input:    SendMessageInput{OrderID: order.ID, Type: "video", Text: "hi"},
			code:     "VALIDATION_ERROR",
		},
		{
			name:     "non-participant",
			senderID: "stranger",
			input:    SendMessageInput{OrderID: order.ID, Type: entity.MessageTypeText, Text: "hi"},
			code:     "NOT_ELIGIBLE",
		},
		{
			name:     "chat disabled",
			senderID: "buyer-1",
			input:    SendMessageInput{OrderID: disabled.ID, Type: entity.MessageTypeText, Text: "hi"},
			code:     "NOT_ELIGIBLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SendMessage(context.Background(), tt.senderID, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "expected %s, got %v", tt.code, err)
		})
	}
}

func TestListMessagesKeepsArrivalOrderOnEqualTimestamps(t *testing.T) {
	uc, messageRepo, _, _, order := newChatFixture(t)

	at := time.Now()
	for _, id := range []string{"m-1", "m-2", "m-3"} {
		require.NoError(t, messageRepo.Create(context.Background(), &entity.Message{
			ID:        id,
			OrderID:   order.ID,
			SenderID:  "buyer-1",
			Type:      entity.MessageTypeText,
			Text:      id,
			Status:    entity.MessageStatusSent,
			CreatedAt: at,
		}))
	}

	messages, err := uc.ListMessages(context.Background(), "chef-1", order.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "m-1", messages[0].ID)
	assert.Equal(t, "m-2", messages[1].ID)
	assert.Equal(t, "m-3", messages[2].ID)
}

func TestListMessagesParticipantsOnly(t *testing.T) {
	uc, _, _, _, order := newChatFixture(t)

	_, err := uc.ListMessages(context.Background(), "stranger", order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAdvanceMessageStatusForwardOnly(t *testing.T) {
	uc, messageRepo, _, _, order := newChatFixture(t)

	message, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID,
		Type:    entity.MessageTypeText,
		Text:    "hello",
	})
	require.NoError(t, err)

	// Forward: sent -> read skips delivered, still forward.
	require.NoError(t, uc.AdvanceMessageStatus(context.Background(), order.ID, message.ID, entity.MessageStatusRead))
	stored, err := messageRepo.GetByID(context.Background(), order.ID, message.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusRead, stored.Status)

	// Backward: read -> delivered is a silent no-op.
	require.NoError(t, uc.AdvanceMessageStatus(context.Background(), order.ID, message.ID, entity.MessageStatusDelivered))
	stored, err = messageRepo.GetByID(context.Background(), order.ID, message.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusRead, stored.Status)

	// Same status is not forward either.
	require.NoError(t, uc.AdvanceMessageStatus(context.Background(), order.ID, message.ID, entity.MessageStatusRead))
	stored, err = messageRepo.GetByID(context.Background(), order.ID, message.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusRead, stored.Status)
}

func TestMarkAllReadSkipsOwnMessages(t *testing.T) {
	uc, messageRepo, _, _, order := newChatFixture(t)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "from buyer",
	})
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), "chef-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "from chef",
	})
	require.NoError(t, err)

	require.NoError(t, uc.MarkAllRead(context.Background(), order.ID, "chef-1"))

	messages, err := messageRepo.ListByOrder(context.Background(), order.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	for _, message := range messages {
		if message.SenderID == "buyer-1" {
			assert.Equal(t, entity.MessageStatusRead, message.Status)
		} else {
			assert.Equal(t, entity.MessageStatusSent, message.Status)
		}
	}
}

func TestMarkAllReadSwallowsUpdateFailures(t *testing.T) {
	uc, messageRepo, _, _, order := newChatFixture(t)

	first, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "one",
	})
	require.NoError(t, err)
	second, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "two",
	})
	require.NoError(t, err)

	messageRepo.failStatus[first.ID] = true

	require.NoError(t, uc.MarkAllRead(context.Background(), order.ID, "chef-1"))

	stored, err := messageRepo.GetByID(context.Background(), order.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusRead, stored.Status)
}

func TestSubscribeDeliversSnapshotThenUpdates(t *testing.T) {
	uc, _, _, _, order := newChatFixture(t)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "first",
	})
	require.NoError(t, err)

	var mu sync.Mutex
	var snapshots [][]*entity.Message
	sub, err := uc.Subscribe(context.Background(), "chef-1", order.ID, func(messages []*entity.Message) {
		mu.Lock()
		defer mu.Unlock()
		snapshots = append(snapshots, messages)
	})
	require.NoError(t, err)
	defer sub.Cancel()

	mu.Lock()
	require.Len(t, snapshots, 1)
	assert.Len(t, snapshots[0], 1)
	mu.Unlock()

	_, err = uc.SendMessage(context.Background(), "chef-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "second",
	})
	require.NoError(t, err)

	mu.Lock()
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 2)
	mu.Unlock()
}

func TestSubscribeCancelStopsCallbacks(t *testing.T) {
	uc, _, _, _, order := newChatFixture(t)

	var mu sync.Mutex
	calls := 0
	sub, err := uc.Subscribe(context.Background(), "buyer-1", order.ID, func([]*entity.Message) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	})
	require.NoError(t, err)

	sub.Cancel()

	_, err = uc.SendMessage(context.Background(), "chef-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "after cancel",
	})
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, 1, calls, "only the initial snapshot should have been delivered")
	mu.Unlock()
}

func TestSubscribeParticipantsOnly(t *testing.T) {
	uc, _, _, _, order := newChatFixture(t)

	_, err := uc.Subscribe(context.Background(), "stranger", order.ID, func([]*entity.Message) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestTypingPresence(t *testing.T) {
	uc, _, _, _, order := newChatFixture(t)

	uc.SetTyping(order.ID, "buyer-1", true)
	assert.Equal(t, []string{"buyer-1"}, uc.TypingUsers(order.ID))

	uc.SetTyping(order.ID, "chef-1", true)
	assert.Equal(t, []string{"buyer-1", "chef-1"}, uc.TypingUsers(order.ID))

	uc.SetTyping(order.ID, "buyer-1", false)
	assert.Equal(t, []string{"chef-1"}, uc.TypingUsers(order.ID))
}

func TestSendMessageClearsTyping(t *testing.T) {
	uc, _, _, _, order := newChatFixture(t)

	uc.SetTyping(order.ID, "buyer-1", true)

	_, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "done typing",
	})
	require.NoError(t, err)

	assert.Empty(t, uc.TypingUsers(order.ID))
}

func TestLongChatKeepsNewestMessagesVisible(t *testing.T) {
	uc, messageRepo, _, _, order := newChatFixture(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 54; i++ {
		require.NoError(t, messageRepo.Create(context.Background(), &entity.Message{
			ID:        fmt.Sprintf("seed-%02d", i+1),
			OrderID:   order.ID,
			SenderID:  "buyer-1",
			Type:      entity.MessageTypeText,
			Text:      fmt.Sprintf("backlog %d", i+1),
			Status:    entity.MessageStatusSent,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	sent, err := uc.SendMessage(context.Background(), "buyer-1", SendMessageInput{
		OrderID: order.ID, Type: entity.MessageTypeText, Text: "the 55th",
	})
	require.NoError(t, err)

	// The window keeps the newest 50, so the fresh send is always visible.
	messages, err := uc.ListMessages(context.Background(), "chef-1", order.ID)
	require.NoError(t, err)
	require.Len(t, messages, 50)
	assert.Equal(t, "seed-06", messages[0].ID)
	assert.Equal(t, sent.ID, messages[len(messages)-1].ID)

	// Read receipts cover the full history, not just the window.
	require.NoError(t, uc.MarkAllRead(context.Background(), order.ID, "chef-1"))
	stored, err := messageRepo.GetByID(context.Background(), order.ID, sent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusRead, stored.Status)
	oldest, err := messageRepo.GetByID(context.Background(), order.ID, "seed-01")
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusRead, oldest.Status)

	// Live subscriptions carry the whole conversation.
	var snapshot []*entity.Message
	sub, err := uc.Subscribe(context.Background(), "chef-1", order.ID, func(messages []*entity.Message) {
		snapshot = messages
	})
	require.NoError(t, err)
	defer sub.Cancel()
	assert.Len(t, snapshot, 55)
}

func TestTypingStartIsRateLimited(t *testing.T) {
	uc, _, _, _, order := newChatFixture(t)

	for i := 0; i < 30; i++ {
		uc.SetTyping(order.ID, "buyer-1", true)
		uc.SetTyping(order.ID, "buyer-1", false)
	}

	// The 31st start within the window is dropped.
	uc.SetTyping(order.ID, "buyer-1", true)
	assert.Empty(t, uc.TypingUsers(order.ID))

	// Another user has their own bucket.
	uc.SetTyping(order.ID, "chef-1", true)
	assert.Equal(t, []string{"chef-1"}, uc.TypingUsers(order.ID))

	// Clearing is never limited.
	uc.SetTyping(order.ID, "chef-1", false)
	assert.Empty(t, uc.TypingUsers(order.ID))
}
