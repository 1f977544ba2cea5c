// Package analytics provides the log-only client events sink, used
// when the broker is disabled in config. The core stays oblivious to
// which sink is wired.
package analytics

import (
	"context"
	"log/slog"

	"github.com/niksmo/smartshop/internal/core/domain"
	"github.com/niksmo/smartshop/internal/core/port"
)

var _ port.ClientEventsProducer = (*EventLogger)(nil)

type EventLogger struct{}

func NewEventLogger() EventLogger {
	return EventLogger{}
}

func (l EventLogger) ProduceEvent(
	ctx context.Context, evt domain.ClientEvent,
) error {
	const op = "EventLogger.ProduceEvent"

	slog.With("op", op).Debug("client event",
		"eventType", evt.Type,
		"productID", evt.ProductID,
		"quantity", evt.Quantity,
		"cartCount", evt.CartCount,
		"cartTotal", evt.CartTotal,
	)
	return nil
}
