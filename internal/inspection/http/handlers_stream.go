package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/auth"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/repository"
	"github.com/safehaven-ai/safehaven-backend/internal/logging"
	"go.uber.org/zap"
)

const keepAliveInterval = 15 * time.Second

// StreamDraftEvents streams draft changes using Server-Sent Events (SSE)
func (h *Handler) StreamDraftEvents(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	d, err := h.wizard.Get(ctx, auth.InspectorID(c), id)
	if err != nil {
		h.fail(c, "draft.stream", err)
		return
	}

	sub := h.events.Subscribe(ctx, id)
	defer sub.Close()
	// wait for the subscription so no change between Get and here is lost
	if _, err := sub.Receive(ctx); err != nil {
		h.fail(c, "draft.stream", err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		httpapi.Fail(c, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	writeEvent(c, "initial", gin.H{"draft": viewOf(d)})
	flusher.Flush()

	log := logging.From(ctx, h.logger, "draft.stream")
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()
	messages := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case msg, ok := <-messages:
			if !ok {
				return
			}
			ev, err := repository.DecodeEvent(msg.Payload)
			if err != nil {
				log.Warn("undecodable draft event", zap.Error(err))
				continue
			}
			if ev.Type == repository.EventDeleted {
				writeEvent(c, "deleted", gin.H{"event": "deleted", "draft_id": id})
				flusher.Flush()
				return
			}
			writeEvent(c, "update", gin.H{"event": ev.Type, "draft": viewOf(ev.Draft)})
			flusher.Flush()
		}
	}
}

func writeEvent(c *gin.Context, name string, payload any) {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", name, data)
}
