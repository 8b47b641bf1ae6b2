package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aescanero/treed/pkg/domain"
	"github.com/aescanero/treed/pkg/ports"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// Handler handles WebSocket connections
type Handler struct {
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(eventBus ports.EventBus, logger *zap.Logger) *Handler {
	return &Handler{
		eventBus: eventBus,
		logger:   logger,
	}
}

// HandleTreeStream streams node.created events to the client until the
// connection or request context ends.
func (h *Handler) HandleTreeStream(c *gin.Context) {
	// Upgrade connection
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	h.logger.Info("WebSocket connection established",
		zap.String("client", c.ClientIP()))

	eventChan := make(chan *domain.Event, 10)
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	h.subscribeToEvents(ctx, eventChan)

	// Send events to client
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}

			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("failed to marshal event", zap.Error(err))
				continue
			}

			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Error("failed to write message", zap.Error(err))
				return
			}
		}
	}
}

// subscribeToEvents forwards bus events into the connection channel
func (h *Handler) subscribeToEvents(ctx context.Context, ch chan<- *domain.Event) {
	eventHandler := func(ctx context.Context, event domain.Event) error {
		// Send to channel (non-blocking)
		select {
		case ch <- &event:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Channel full, skip event
			h.logger.Warn("event channel full, dropping event",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)))
		}
		return nil
	}

	if err := h.eventBus.Subscribe(ctx, domain.TopicTreeEvents, eventHandler); err != nil {
		h.logger.Error("failed to subscribe to events",
			zap.String("topic", domain.TopicTreeEvents),
			zap.Error(err))
	}
}
