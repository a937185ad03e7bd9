package pubsub

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCatalogStatusReplay_LastOnly(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	// The status topic replays only the latest state to new subscribers
	pub.ConfigureTopic(TopicCatalogStatus, TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})

	states := []string{"loading", "linting", "ready"}
	for _, state := range states {
		if err := pub.Publish(TopicCatalogStatus, state, CatalogStatus{State: state}); err != nil {
			t.Fatalf("Failed to publish %s: %v", state, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, TopicCatalogStatus)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		if event.Type != "ready" {
			t.Errorf("Expected the latest state 'ready', got %q", event.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for replayed status")
	}

	// Only the latest state is replayed
	select {
	case event := <-sub.Events():
		t.Errorf("Received unexpected extra event %q", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReplayAll(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	pub.ConfigureTopic("test", TopicConfig{
		BufferSize: 3,
		ReplayAll:  true,
	})

	// Publish 5 events; the ring keeps the last 3
	for i := 1; i <= 5; i++ {
		if err := pub.Publish("test", "event", map[string]int{"num": i}); err != nil {
			t.Fatalf("Failed to publish event %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	for want := 3; want <= 5; want++ {
		select {
		case event := <-sub.Events():
			if event.Version != want {
				t.Errorf("Expected version %d, got %d", want, event.Version)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for event version %d", want)
		}
	}
}

func TestLiveDelivery(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	topic := SessionTopic("abc")
	sub, err := pub.Subscribe(ctx, topic)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	update := SessionUpdate{SessionID: "abc", Price: 70000, Valid: true}
	if err := pub.Publish(topic, "selection", update); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	select {
	case event := <-sub.Events():
		if event.Topic != "session/abc" {
			t.Errorf("Topic = %q, want session/abc", event.Topic)
		}
		if event.Type != "selection" {
			t.Errorf("Type = %q, want selection", event.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for live event")
	}
}

func TestDropTopic(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	topic := SessionTopic("gone")
	pub.ConfigureTopic(topic, TopicConfig{BufferSize: 5, ReplayAll: true})
	if err := pub.Publish(topic, "selection", SessionUpdate{SessionID: "gone"}); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	pub.DropTopic(topic)

	// A new subscriber must see nothing from the dropped session
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sub, err := pub.Subscribe(ctx, topic)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case event := <-sub.Events():
		t.Errorf("Received event %q from a dropped topic", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWriteSSE_Format(t *testing.T) {
	var sb strings.Builder
	event := Event{Topic: TopicCatalogStatus, Type: "ready", Data: []byte(`{"state":"ready"}`), Version: 1}

	if err := WriteSSE(&sb, event); err != nil {
		t.Fatalf("WriteSSE() error = %v", err)
	}

	out := sb.String()
	if !strings.HasPrefix(out, "data: ") {
		t.Errorf("Expected data: prefix, got %q", out)
	}
	if !strings.HasSuffix(out, "\n\n") {
		t.Errorf("Expected blank-line terminator, got %q", out)
	}
}
