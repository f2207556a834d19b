package eventbus

import (
	"testing"
	"time"
)

func TestBus_PublishAndSubscribe(t *testing.T) {
	t.Parallel()

	bus := New()
	ch := bus.Subscribe("dispatch.completed")

	bus.Publish("dispatch.completed", "hello")

	select {
	case evt := <-ch:
		if evt.Topic != "dispatch.completed" {
			t.Errorf("expected topic 'dispatch.completed', got %q", evt.Topic)
		}
		if evt.Payload != "hello" {
			t.Errorf("expected payload 'hello', got %v", evt.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestBus_MultipleSubscribers_AllReceive(t *testing.T) {
	t.Parallel()

	bus := New()
	ch1 := bus.Subscribe("multi.topic")
	ch2 := bus.Subscribe("multi.topic")

	bus.Publish("multi.topic", 42)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.Payload != 42 {
				t.Errorf("subscriber %d: expected payload 42, got %v", i, evt.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestBus_DifferentTopics_NoInterference(t *testing.T) {
	t.Parallel()

	bus := New()
	chA := bus.Subscribe("topic.a")
	chB := bus.Subscribe("topic.b")

	bus.Publish("topic.a", "only-a")

	select {
	case evt := <-chA:
		if evt.Payload != "only-a" {
			t.Errorf("expected payload 'only-a', got %v", evt.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for topic.a event")
	}

	select {
	case evt := <-chB:
		t.Errorf("topic.b should not receive topic.a events, got %v", evt)
	default:
	}
}

func TestBus_PublishWithoutSubscribers_DoesNotBlock(t *testing.T) {
	t.Parallel()

	bus := New()
	done := make(chan struct{})
	go func() {
		bus.Publish("nobody.listening", "dropped")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("Publish blocked with no subscribers")
	}
}
