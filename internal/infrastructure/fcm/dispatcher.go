package fcm

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"

	"homefood/internal/domain/repository"
	"homefood/pkg/logger"
)

var notificationTitles = map[string]string{
	"new_order":     "New order",
	"status_change": "Order status updated",
	"new_message":   "New message",
}

// Dispatcher delivers push notifications through Firebase Cloud Messaging.
// Delivery is fire-and-forget: every failure is logged and swallowed so the
// triggering operation never blocks or fails on it.
type Dispatcher struct {
	client   *messaging.Client
	userRepo repository.UserRepository
}

func NewDispatcher(client *messaging.Client, userRepo repository.UserRepository) *Dispatcher {
	return &Dispatcher{
		client:   client,
		userRepo: userRepo,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, userID, eventType string, payload map[string]string) {
	go func() {
		// Detached from the caller's context so the primary operation
		// can return while delivery is still in flight.
		sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := d.userRepo.GetByID(sendCtx, userID)
		if err != nil {
			logger.Warn("FCM: failed to load user %s for %s notification: %v", userID, eventType, err)
			return
		}
		if user.PushToken == "" {
			logger.Debug("FCM: user %s has no push token, skipping %s", userID, eventType)
			return
		}

		title, ok := notificationTitles[eventType]
		if !ok {
			title = "Notification"
		}

		data := map[string]string{"type": eventType}
		for k, v := range payload {
			data[k] = v
		}

		_, err = d.client.Send(sendCtx, &messaging.Message{
			Token: user.PushToken,
			Notification: &messaging.Notification{
				Title: title,
			},
			Data: data,
		})
		if err != nil {
			logger.Warn("FCM: failed to send %s notification to %s: %v", eventType, userID, err)
		}
	}()
}
