package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestEventBufferReplayAll(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic("test", TopicConfig{BufferSize: 3, ReplayAll: true})

	for i := 1; i <= 5; i++ {
		if err := pub.Publish("test", "event", map[string]int{"num": i}); err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	// The buffer holds the last 3 of 5 events.
	for want := 3; want <= 5; want++ {
		select {
		case event := <-sub.Events():
			if event.Version != want {
				t.Errorf("Expected version %d, got %d", want, event.Version)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for replayed event %d", want)
		}
	}
}

func TestReplayLastOnly(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic("status", TopicConfig{BufferSize: 10, ReplayAll: false})

	for i := 1; i <= 4; i++ {
		if err := pub.Publish("status", "update", map[string]int{"num": i}); err != nil {
			t.Fatalf("Failed to publish: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, "status")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		if event.Version != 4 {
			t.Errorf("Expected only the latest event (version 4), got %d", event.Version)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for replayed event")
	}

	select {
	case event := <-sub.Events():
		t.Errorf("Expected no further replay, got version %d", event.Version)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishFanOut(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	ctx := context.Background()
	first, err := pub.Subscribe(ctx, "graph")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	second, err := pub.Subscribe(ctx, "graph")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	if err := pub.Publish("graph", "complete", GraphUpdate{NodeCount: 7, EdgeCount: 9, Complete: true}); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	for _, sub := range []Subscription{first, second} {
		select {
		case event := <-sub.Events():
			var update GraphUpdate
			if err := json.Unmarshal(event.Data, &update); err != nil {
				t.Fatalf("Failed to unmarshal payload: %v", err)
			}
			if update.NodeCount != 7 || !update.Complete {
				t.Errorf("Unexpected payload: %+v", update)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("Timeout waiting for fan-out event")
		}
	}
}

func TestPublishAfterCloseFails(t *testing.T) {
	pub := NewSSEPublisher()
	pub.Close()

	if err := pub.Publish("test", "event", nil); err == nil {
		t.Error("Expected publish on closed publisher to fail")
	}
	if _, err := pub.Subscribe(context.Background(), "test"); err == nil {
		t.Error("Expected subscribe on closed publisher to fail")
	}
}

func TestWriteSSEFormat(t *testing.T) {
	var buf bytes.Buffer
	event := Event{Topic: "analysis_status", Type: "ready", Data: json.RawMessage(`{"state":"ready"}`), Version: 3}

	if err := WriteSSE(&buf, event); err != nil {
		t.Fatalf("WriteSSE failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "data: ") || !strings.HasSuffix(out, "\n\n") {
		t.Errorf("Malformed SSE frame: %q", out)
	}
	if !strings.Contains(out, `"version":3`) {
		t.Errorf("Expected version in frame, got %q", out)
	}
}
