package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vedartha/erp-backend-go/internal/handler/http/middleware"
	"github.com/vedartha/erp-backend-go/internal/handler/http/response"
	"github.com/vedartha/erp-backend-go/internal/pkg/jwt"
	"github.com/vedartha/erp-backend-go/internal/pkg/sse"
)

type EventsHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type EventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service) EventsHandler {
	return &EventsHandlerImpl{hub: hub, jwtService: jwtService}
}

// Token implements EventsHandler. EventSource cannot send headers, so the
// stream authenticates with a short-lived token passed in the query string.
func (h *EventsHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(id.UID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"token": token, "expires_in": expiresIn})
}

// Stream implements EventsHandler.
func (h *EventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	uid, err := h.jwtService.ValidateSSEToken(r.URL.Query().Get("token"))
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = "user:" + uid
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(ev.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Event, data)
			flusher.Flush()
		}
	}
}
