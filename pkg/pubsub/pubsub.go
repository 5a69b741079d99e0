package pubsub

import (
	"context"
	"encoding/json"
)

// Event is one published message on a topic.
type Event struct {
	Topic   string          `json:"topic"`   // e.g., "analysis_status", "graph"
	Type    string          `json:"type"`    // e.g., "extracting", "ready", "complete"
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Per-topic ordering counter
}

// Subscription is a client's attachment to a topic.
type Subscription interface {
	// Topic returns the subscribed topic.
	Topic() string

	// Events returns the channel of incoming events.
	Events() <-chan Event

	// Close detaches the subscription.
	Close() error
}

// Publisher manages subscriptions and event fan-out.
type Publisher interface {
	// Subscribe attaches to a topic; context cancellation closes the
	// subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic.
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions.
	Close() error
}

// AnalysisStatus is the payload of analysis_status events.
type AnalysisStatus struct {
	State   string `json:"state"`   // extracting, building, analyzing, ready, error
	Message string `json:"message"` // Human-readable status
	Step    int    `json:"step"`    // 1-based step number
	Total   int    `json:"total"`   // Total steps
}

// GraphUpdate is the payload of graph events.
type GraphUpdate struct {
	NodeCount int  `json:"node_count"`
	EdgeCount int  `json:"edge_count"`
	Complete  bool `json:"complete"`
}
