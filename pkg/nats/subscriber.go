package nats

import (
	"context"
	"fmt"
	"log"
	"time"

	"streetmix-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler processes one event. A returned error redelivers it.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber reads events back from the EVENTS stream.
type Subscriber struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe consumes events whose type matches eventType ("*" for all).
// An empty durableName creates an ephemeral consumer that only sees new
// events. Consumption stops when ctx is cancelled.
func (s *Subscriber) Subscribe(ctx context.Context, eventType, durableName string, handler EventHandler) error {
	cfg := jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: Subject(eventType),
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	if durableName == "" {
		cfg.DeliverPolicy = jetstream.DeliverNewPolicy
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, cfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		if handleMessage(ctx, msg.Data(), handler) {
			_ = msg.Ack()
			return
		}
		_ = msg.Nak()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	go func() {
		<-ctx.Done()
		cc.Stop()
	}()

	log.Printf("Subscribed to %s (durable %q)", cfg.FilterSubject, durableName)
	return nil
}

// handleMessage reports whether the message should be acknowledged.
// Undecodable messages are acknowledged so they are not redelivered forever.
func handleMessage(ctx context.Context, data []byte, handler EventHandler) bool {
	event, err := Decode(data)
	if err != nil {
		log.Printf("Dropping undecodable event: %v", err)
		return true
	}
	if err := handler(ctx, event); err != nil {
		log.Printf("Handler failed for event %s: %v", event.Type, err)
		return false
	}
	return true
}

// Close closes the connection.
func (s *Subscriber) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}
