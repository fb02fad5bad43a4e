package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/shuaizuo666/Task-System/events"
	"github.com/shuaizuo666/Task-System/middleware"
)

func formatSSEMessage(ev events.Event) (string, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("event: %s\nretry: %d\ndata: %s\n\n", ev.Type, 15000, payload), nil
}

// HandleEvents streams the caller's task lifecycle events as
// server-sent events until the client disconnects.
//
//	@Summary  Stream task events
//	@Produce  text/event-stream
//	@Router   /api/events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	userID, err := middleware.CallerID(c)
	if err != nil {
		return err
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	ch, cancel := h.Hub.Subscribe()
	notify := c.Context().Done()
	caller := userID.String()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		keepAlive := time.NewTicker(15 * time.Second)
		defer keepAlive.Stop()

		for {
			select {
			case <-notify:
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				// Other users' events never reach this stream.
				if ev.UserID != caller {
					continue
				}
				msg, err := formatSSEMessage(ev)
				if err != nil {
					log.Printf("sse: format event: %v", err)
					continue
				}
				if _, err := w.WriteString(msg); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAlive.C:
				if _, err := w.WriteString(":keepalive\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
