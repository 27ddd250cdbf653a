package natsadapter

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// Subscriber fans core NATS messages out to in-process callbacks. It reads
// the live subjects the JetStream streams capture, without consumer state.
type Subscriber struct {
	conn *nats.Conn
}

// NewSubscriber wraps an existing connection.
func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{conn: conn}
}

// Subscribe delivers each message payload on subject to fn until the
// returned cancel func is called.
func (s *Subscriber) Subscribe(subject string, fn func(data []byte)) (cancel func(), err error) {
	sub, err := s.conn.Subscribe(subject, func(msg *nats.Msg) {
		fn(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Connected reports whether the underlying connection is up.
func (s *Subscriber) Connected() bool {
	return s.conn.IsConnected()
}

// Close drains and closes the connection.
func (s *Subscriber) Close() {
	_ = s.conn.Drain()
}
