package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	natsadapter "github.com/samirrijal/listingmap/internal/adapters/nats"
	"github.com/samirrijal/listingmap/internal/pkg/metrics"
)

// wsMessage is sent from client to subscribe/unsubscribe to feeds.
type wsMessage struct {
	Action  string `json:"action"`  // "subscribe" | "unsubscribe"
	Channel string `json:"channel"` // "polygons" | "saved-searches"
	Filter  string `json:"filter"`  // saved-search action filter (optional, "" = all)
}

// channelSubject maps a client channel onto the NATS subject it relays.
func channelSubject(channel, filter string) (string, bool) {
	switch channel {
	case "", "polygons":
		return natsadapter.SubjectPolygons, true
	case "saved-searches":
		if filter != "" {
			return natsadapter.SubjectSavedSearchPrefix + filter, true
		}
		return natsadapter.SubjectSavedSearches, true
	}
	return "", false
}

// WebSocketHandler relays polygon and saved-search events to map clients.
// Clients send JSON: {"action":"subscribe","channel":"saved-searches","filter":"created"}.
// Every connection starts subscribed to the polygons channel.
func WebSocketHandler(events *natsadapter.Subscriber) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		log := slog.With("remote_addr", remoteAddr)
		log.Info("ws client connected")

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		var mu sync.Mutex
		subs := make(map[string]func()) // subject -> cancel

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}
		relay := func(data []byte) {
			_ = writeJSON(json.RawMessage(data))
		}

		cancel, err := events.Subscribe(natsadapter.SubjectPolygons, relay)
		if err != nil {
			log.Error("ws default subscribe failed", "error", err)
			return
		}
		subs[natsadapter.SubjectPolygons] = cancel

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			subject, ok := channelSubject(m.Channel, m.Filter)
			if !ok {
				_ = writeJSON(map[string]string{"error": "unknown channel: " + m.Channel})
				continue
			}

			switch m.Action {
			case "subscribe":
				if _, exists := subs[subject]; exists {
					_ = writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
					continue
				}
				cancel, err := events.Subscribe(subject, relay)
				if err != nil {
					log.Warn("ws subscribe failed", "subject", subject, "error", err)
					_ = writeJSON(map[string]string{"error": "subscribe failed"})
					continue
				}
				subs[subject] = cancel
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})

			case "unsubscribe":
				if cancel, exists := subs[subject]; exists {
					cancel()
					delete(subs, subject)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, cancel := range subs {
			cancel()
		}
		log.Info("ws client disconnected")
	}
}
