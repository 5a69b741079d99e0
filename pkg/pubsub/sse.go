package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/askeland/codegraph/pkg/logging"
)

// TopicConfig controls replay behavior for late subscribers.
type TopicConfig struct {
	BufferSize int  // Events retained per topic (0 = none)
	ReplayAll  bool // Replay the whole buffer, or only the latest event
}

// SSEPublisher is an in-process publisher whose events are intended to
// be streamed to clients as Server-Sent Events.
type SSEPublisher struct {
	mu            sync.RWMutex
	subscriptions map[string]map[*sseSubscription]bool
	version       map[string]int
	buffer        map[string][]Event
	topicConfig   map[string]TopicConfig
	closed        bool
}

// NewSSEPublisher creates a new publisher.
func NewSSEPublisher() *SSEPublisher {
	return &SSEPublisher{
		subscriptions: make(map[string]map[*sseSubscription]bool),
		version:       make(map[string]int),
		buffer:        make(map[string][]Event),
		topicConfig:   make(map[string]TopicConfig),
	}
}

// ConfigureTopic sets the replay buffer for a topic.
func (p *SSEPublisher) ConfigureTopic(topic string, config TopicConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topicConfig[topic] = config
}

// Subscribe attaches to a topic and replays buffered events according
// to the topic's configuration.
func (p *SSEPublisher) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("publisher is closed")
	}

	sub := &sseSubscription{
		topic:     topic,
		events:    make(chan Event, 100), // Buffered so publishers never block
		publisher: p,
	}

	if p.subscriptions[topic] == nil {
		p.subscriptions[topic] = make(map[*sseSubscription]bool)
	}
	p.subscriptions[topic][sub] = true

	config := p.topicConfig[topic]
	replay := make([]Event, len(p.buffer[topic]))
	copy(replay, p.buffer[topic])

	p.mu.Unlock()

	if len(replay) > 0 {
		if !config.ReplayAll {
			replay = replay[len(replay)-1:]
		}
		for _, event := range replay {
			select {
			case sub.events <- event:
			default:
				logging.Warn("could not replay event to new subscriber", "topic", topic)
			}
		}
		logging.Debug("replayed events to new subscriber", "topic", topic, "count", len(replay))
	}

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub, nil
}

// Publish sends an event to all subscribers of a topic. Slow
// subscribers with full channels drop the event rather than blocking.
func (p *SSEPublisher) Publish(topic string, eventType string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("publisher is closed")
	}

	p.version[topic]++

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	event := Event{
		Topic:   topic,
		Type:    eventType,
		Data:    jsonData,
		Version: p.version[topic],
	}

	if config := p.topicConfig[topic]; config.BufferSize > 0 {
		buf := append(p.buffer[topic], event)
		if len(buf) > config.BufferSize {
			buf = buf[len(buf)-config.BufferSize:]
		}
		p.buffer[topic] = buf
	}

	for sub := range p.subscriptions[topic] {
		select {
		case sub.events <- event:
		default:
			logging.Warn("subscription channel full, dropping event", "topic", topic)
		}
	}

	return nil
}

// Close shuts down the publisher and all subscriptions.
func (p *SSEPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for _, subs := range p.subscriptions {
		for sub := range subs {
			close(sub.events)
		}
	}
	p.subscriptions = make(map[string]map[*sseSubscription]bool)

	return nil
}

func (p *SSEPublisher) unsubscribe(sub *sseSubscription) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if subs := p.subscriptions[sub.topic]; subs != nil {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(p.subscriptions, sub.topic)
		}
	}
}

type sseSubscription struct {
	topic     string
	events    chan Event
	publisher *SSEPublisher
	closed    bool
	mu        sync.Mutex
}

func (s *sseSubscription) Topic() string {
	return s.topic
}

func (s *sseSubscription) Events() <-chan Event {
	return s.events
}

func (s *sseSubscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.publisher.unsubscribe(s)

	return nil
}

// WriteSSE writes one event in SSE wire format: "data: {json}\n\n".
func WriteSSE(w io.Writer, event Event) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", jsonData)
	return err
}
