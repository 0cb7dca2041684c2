package review

import (
	"testing"
)

func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(Event{Type: EventReviewStarted, Repo: "acme/widgets", PR: 7})

	select {
	case evt := <-ch:
		if evt.Type != EventReviewStarted || evt.PR != 7 {
			t.Errorf("unexpected event: %+v", evt)
		}
	default:
		t.Fatal("expected buffered event")
	}
}

func TestHubPublishDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; Publish must drop, not block.
	for i := 0; i < 100; i++ {
		hub.Publish(Event{Type: EventFileReviewed})
	}
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	cancel()

	hub.Publish(Event{Type: EventReviewCompleted})

	if _, open := <-ch; open {
		t.Error("channel should be closed after cancel")
	}
}

func TestHubCancelTwice(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	cancel()
	cancel() // must not panic
}
