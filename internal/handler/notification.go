package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/notify"
)

// keepAliveInterval controls how often a comment line is written to an
// idle event stream so intermediaries do not drop the connection.
const keepAliveInterval = 15 * time.Second

// NotificationHandler serves the long-lived notification stream.
type NotificationHandler struct {
	Hub *notify.Hub
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	if hub == nil {
		panic("nil hub passed to NewNotificationHandler")
	}
	return &NotificationHandler{Hub: hub}
}

// Stream handles GET /notification.  It upgrades the response to a
// server-sent event stream and pushes one `bookingCreated` event per
// accepted reservation until the client disconnects or the hub shuts
// down.  Delivery is best-effort; a client that reconnects does not
// receive events it missed.
func (h *NotificationHandler) Stream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	events, cancel := h.Hub.Subscribe()
	defer cancel()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-events:
			if !ok {
				// Hub closed: the server is shutting down.
				return nil
			}
			if _, err := fmt.Fprintf(w, "event: bookingCreated\ndata: %s\n\n", data); err != nil {
				return nil
			}
			w.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
