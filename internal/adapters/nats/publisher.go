package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// Subjects carrying listingmap events.
const (
	SubjectPolygonDrawn      = "listingmap.polygons.drawn"
	SubjectPolygons          = "listingmap.polygons.>"
	SubjectSavedSearchPrefix = "listingmap.savedsearch."
	SubjectSavedSearches     = "listingmap.savedsearch.>"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream and ensures the event
// streams exist.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			Name:      "LISTINGMAP_POLYGONS",
			Subjects:  []string{SubjectPolygons},
			Retention: nats.LimitsPolicy,
			MaxAge:    7 * 24 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "LISTINGMAP_SAVED_SEARCHES",
			Subjects:  []string{SubjectSavedSearches},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// already exists with a different config
			if _, err := js.UpdateStream(&cfg); err != nil {
				conn.Close()
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

func (p *Publisher) PublishPolygonDrawn(ctx context.Context, polygon *domain.DrawnPolygon) error {
	data, err := json.Marshal(polygon)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectPolygonDrawn, data, nats.Context(ctx))
	return err
}

func (p *Publisher) PublishSavedSearchEvent(ctx context.Context, event *domain.SavedSearchEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectSavedSearchPrefix+event.Action, data, nats.Context(ctx))
	return err
}

// Connected reports whether the underlying connection is up.
func (p *Publisher) Connected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection that keeps reconnecting.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("listingmap"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
