package notification

import (
	"context"

	"github.com/questforge/backend/pkg/xcontext"
	"github.com/questforge/backend/pkg/xredis"
)

// Notifier delivers events to the notification sink. Emit is fire-and-forget:
// a delivery failure is logged and never propagated to the emitting path.
type Notifier interface {
	Emit(ctx context.Context, ev *EventRequest)
}

type redisNotifier struct {
	redisClient xredis.Client
}

func NewRedisNotifier(redisClient xredis.Client) *redisNotifier {
	return &redisNotifier{redisClient: redisClient}
}

func (n *redisNotifier) Emit(ctx context.Context, ev *EventRequest) {
	channel := xcontext.Configs(ctx).Redis.NotificationChannel
	if err := n.redisClient.Publish(ctx, channel, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s notification: %v", ev.Op, err)
	}
}
