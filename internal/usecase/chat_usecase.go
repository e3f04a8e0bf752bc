package usecase

import (
	"context"

	"homefood/internal/domain/entity"
	"homefood/internal/domain/repository"
	"homefood/internal/domain/service"
	"homefood/internal/infrastructure/feed"
	"homefood/internal/infrastructure/presence"
	"homefood/internal/infrastructure/ratelimit"
	ws "homefood/internal/infrastructure/websocket"
	"homefood/pkg/errors"
	"homefood/pkg/logger"
)

// messageFeedLimit caps the chat view window at the newest messages. Live
// feed publishes and read receipts always cover the full history.
const messageFeedLimit = 50

type ChatUseCase struct {
	messageRepo repository.MessageRepository
	orderRepo   repository.OrderRepository
	notifier    service.Notifier
	wsManager   *ws.Manager
	hub         *feed.Hub
	typing      *presence.TypingTracker
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	orderRepo repository.OrderRepository,
	notifier service.Notifier,
	wsManager *ws.Manager,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo: messageRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
		wsManager:   wsManager,
		hub:         feed.NewHub(),
		typing:      presence.NewTypingTracker(),
		rateLimiter: ratelimit.NewRateLimiter(),
	}
}

type SendMessageInput struct {
	OrderID  string
	Type     string // "text", "photo", "audio"
	Text     string
	MediaURL string
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		logger.Warn("SendMessage rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message")
	}

	switch input.Type {
	case entity.MessageTypeText:
		if input.Text == "" {
			return nil, errors.BadRequest("Text message cannot be empty", nil)
		}
	case entity.MessageTypePhoto, entity.MessageTypeAudio:
		if input.MediaURL == "" {
			return nil, errors.BadRequest("Media message requires a media URL", nil)
		}
	default:
		return nil, errors.BadRequest("Invalid message type", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(senderID) {
		return nil, errors.NotEligible("Only the order's buyer or chef can send messages", nil)
	}
	if !order.ChatEnabled {
		return nil, errors.NotEligible("Chat is disabled for this order", nil)
	}

	text := input.Text
	if input.Type != entity.MessageTypeText {
		text = ""
	}

	message := &entity.Message{
		OrderID:  input.OrderID,
		SenderID: senderID,
		Text:     text,
		Type:     input.Type,
		MediaURL: input.MediaURL,
		Status:   entity.MessageStatusSent,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Composing ends when the message goes out.
	uc.SetTyping(input.OrderID, senderID, false)

	counterpart := order.BuyerID
	if senderID == order.BuyerID {
		counterpart = order.ChefID
	}

	// Best effort: when the counterpart has a live connection, the message
	// is considered delivered immediately.
	if uc.wsManager != nil && uc.wsManager.IsOnline(counterpart) {
		if err := uc.messageRepo.UpdateStatus(ctx, input.OrderID, message.ID, entity.MessageStatusDelivered); err != nil {
			logger.Warn("Failed to auto-advance message %s to delivered: %v", message.ID, err)
		} else {
			message.Status = entity.MessageStatusDelivered
		}
	}

	uc.publishFeed(ctx, input.OrderID)

	uc.notifier.Notify(ctx, counterpart, "new_message", map[string]string{
		"orderId":  input.OrderID,
		"senderId": senderID,
	})

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, orderID string) ([]*entity.Message, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(userID) {
		return nil, errors.Forbidden("You don't have permission to view this chat", nil)
	}

	return uc.messageRepo.ListByOrder(ctx, orderID, messageFeedLimit)
}

// Subscribe establishes a live feed for the order: the handler receives the
// full ordered message list on every change, starting with the current
// snapshot. The returned subscription must be cancelled when the consumer
// navigates away.
func (uc *ChatUseCase) Subscribe(ctx context.Context, subscriberID, orderID string, handler feed.Handler) (*feed.Subscription, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(subscriberID) {
		return nil, errors.Forbidden("You don't have permission to view this chat", nil)
	}

	sub := uc.hub.Subscribe(orderID, handler)

	messages, err := uc.messageRepo.ListByOrder(ctx, orderID, 0)
	if err != nil {
		sub.Cancel()
		return nil, err
	}
	handler(messages)

	return sub, nil
}

// JoinOrderRoom attaches a connected user to the order's chat room and pushes
// the current snapshot to them.
func (uc *ChatUseCase) JoinOrderRoom(ctx context.Context, userID, orderID string) error {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.IsParticipant(userID) {
		return errors.Forbidden("You don't have permission to join this chat", nil)
	}

	uc.wsManager.JoinRoom(orderID, userID)

	messages, err := uc.messageRepo.ListByOrder(ctx, orderID, 0)
	if err != nil {
		logger.Warn("Failed to load initial snapshot for order %s: %v", orderID, err)
		return nil
	}
	event, err := ws.NewFeedEvent(orderID, messages)
	if err != nil {
		logger.Warn("Failed to encode feed event for order %s: %v", orderID, err)
		return nil
	}
	uc.wsManager.SendToUser(userID, event)
	return nil
}

func (uc *ChatUseCase) LeaveOrderRoom(orderID, userID string) {
	uc.typing.Set(orderID, userID, false)
	uc.wsManager.LeaveRoom(orderID, userID)
}

// AdvanceMessageStatus moves a message forward along sent -> delivered ->
// read. A non-forward target is a silent no-op: delivery and read receipts
// race under concurrent delivery attempts and losing that race is not an
// error.
func (uc *ChatUseCase) AdvanceMessageStatus(ctx context.Context, orderID, messageID, newStatus string) error {
	message, err := uc.messageRepo.GetByID(ctx, orderID, messageID)
	if err != nil {
		return err
	}

	if !entity.IsForwardMessageStatus(message.Status, newStatus) {
		return nil
	}

	if err := uc.messageRepo.UpdateStatus(ctx, orderID, messageID, newStatus); err != nil {
		return err
	}

	uc.publishFeed(ctx, orderID)
	return nil
}

// MarkAllRead advances every counterpart message that is not yet read.
// Individual update failures are logged and swallowed; chat usability must
// not block on them.
func (uc *ChatUseCase) MarkAllRead(ctx context.Context, orderID, readerID string) error {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.IsParticipant(readerID) {
		return errors.Forbidden("You don't have permission to view this chat", nil)
	}

	messages, err := uc.messageRepo.ListByOrder(ctx, orderID, 0)
	if err != nil {
		return err
	}

	changed := false
	for _, message := range messages {
		if message.SenderID == readerID || message.Status == entity.MessageStatusRead {
			continue
		}
		if err := uc.messageRepo.UpdateStatus(ctx, orderID, message.ID, entity.MessageStatusRead); err != nil {
			logger.Warn("Failed to mark message %s read: %v", message.ID, err)
			continue
		}
		changed = true
	}

	if changed {
		uc.publishFeed(ctx, orderID)
	}
	return nil
}

// SetTyping mutates the in-memory typing set and relays presence to the
// order's room. No persistence, no store round trip. Starting to type is
// rate limited; clearing never is, so a send always resets presence.
func (uc *ChatUseCase) SetTyping(orderID, userID string, isTyping bool) {
	if isTyping {
		allowed, waitTime := uc.rateLimiter.Allow(userID, "typing")
		if !allowed {
			logger.Warn("SetTyping rate limited: user %s must wait %v", userID, waitTime)
			return
		}
	}

	uc.typing.Set(orderID, userID, isTyping)

	if uc.wsManager == nil {
		return
	}
	event, err := ws.NewTypingEvent(orderID, uc.typing.List(orderID))
	if err != nil {
		logger.Warn("Failed to encode typing event for order %s: %v", orderID, err)
		return
	}
	uc.wsManager.BroadcastToRoom(orderID, userID, event)
}

// TypingUsers returns the ids currently composing in the order.
func (uc *ChatUseCase) TypingUsers(orderID string) []string {
	return uc.typing.List(orderID)
}

// publishFeed pushes the current snapshot to hub subscribers and connected
// room members. Best effort: a failed reload is logged, never surfaced.
func (uc *ChatUseCase) publishFeed(ctx context.Context, orderID string) {
	messages, err := uc.messageRepo.ListByOrder(ctx, orderID, 0)
	if err != nil {
		logger.Warn("Failed to load messages for feed publish on order %s: %v", orderID, err)
		return
	}

	uc.hub.Publish(orderID, messages)

	if uc.wsManager == nil {
		return
	}
	event, err := ws.NewFeedEvent(orderID, messages)
	if err != nil {
		logger.Warn("Failed to encode feed event for order %s: %v", orderID, err)
		return
	}
	uc.wsManager.BroadcastToRoom(orderID, "", event)
}
