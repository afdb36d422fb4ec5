package http

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/response"
)

const defaultHeartbeat = 25 * time.Second

type EventsHandler struct {
	bus        *notifier.Bus
	bufferSize int
	heartbeat  time.Duration
	logger     *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func NewHandler(bus *notifier.Bus, bufferSize int, logger *slog.Logger) *EventsHandler {
	if bufferSize < 1 {
		bufferSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventsHandler{
		bus:        bus,
		bufferSize: bufferSize,
		heartbeat:  defaultHeartbeat,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Close ends every open stream. http.Server.Shutdown does not cancel
// long-lived requests, so it is registered with RegisterOnShutdown.
func (h *EventsHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Stream pushes bus events to the client as server-sent events until it disconnects.
// A client that falls more than bufferSize events behind misses the overflow.
func (h *EventsHandler) Stream(c *gin.Context) {
	var query StreamQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	eventType := notifier.Wildcard
	if query.Type != "" {
		eventType = notifier.EventType(query.Type)
	}
	if !eventType.Known() {
		response.BadRequest(c, "unknown event type", nil)
		return
	}

	ctx := c.Request.Context()
	ch := make(chan notifier.Event, h.bufferSize)
	unsubscribe := h.bus.Subscribe(eventType, func(_ context.Context, e notifier.Event) {
		if !offer(ch, e) {
			h.logger.WarnContext(ctx, "event stream buffer full, dropping event",
				"event_type", e.Type,
				"event_id", e.ID,
			)
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("ready", ReadyMessage{Type: string(eventType)})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-h.done:
			return false
		case e := <-ch:
			c.SSEvent(string(e.Type), e)
			return true
		case t := <-ticker.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})
}

// offer enqueues e without blocking and reports whether it fit.
func offer(ch chan<- notifier.Event, e notifier.Event) bool {
	select {
	case ch <- e:
		return true
	default:
		return false
	}
}
