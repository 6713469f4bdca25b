package application

import (
	"context"
	"fmt"

	"github.com/philly/postboard/internal/platform/eventbus"
	"github.com/philly/postboard/internal/platform/events"
	"github.com/philly/postboard/internal/platform/logger"
)

// AuditLog writes one log line per post lifecycle event.
type AuditLog struct {
	logger logger.Logger
}

// NewAuditLog creates the audit subscriber and registers it on bus.
func NewAuditLog(bus *eventbus.Bus, logger logger.Logger) *AuditLog {
	a := &AuditLog{logger: logger}
	bus.Subscribe(events.PostCreatedTopic, a.handle)
	bus.Subscribe(events.PostUpdatedTopic, a.handle)
	bus.Subscribe(events.PostDeletedTopic, a.handle)
	return a
}

func (a *AuditLog) handle(ctx context.Context, event eventbus.Event) error {
	switch p := event.Payload.(type) {
	case events.PostCreatedEvent:
		a.logger.Info(ctx, "post created", "postID", p.PostID, "actorID", p.ActorID, "title", p.Title)
	case events.PostUpdatedEvent:
		a.logger.Info(ctx, "post updated", "postID", p.PostID, "actorID", p.ActorID, "title", p.Title)
	case events.PostDeletedEvent:
		a.logger.Info(ctx, "post deleted", "postID", p.PostID, "actorID", p.ActorID)
	default:
		return fmt.Errorf("audit: unexpected payload %T on %s", event.Payload, event.Topic)
	}
	return nil
}
