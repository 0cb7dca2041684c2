package review

import "sync"

// Progress event types published during a review.
const (
	EventReviewStarted   = "review_started"
	EventFileReviewed    = "file_reviewed"
	EventReviewCompleted = "review_completed"
	EventReviewFailed    = "review_failed"
)

// Event is one progress notification from the pipeline.
type Event struct {
	Type string `json:"type"`
	Repo string `json:"repo,omitempty"`
	PR   int    `json:"pr,omitempty"`
	File string `json:"file,omitempty"`
	Note string `json:"note,omitempty"`
}

// Hub fans review progress events out to subscribers. Publishing never
// blocks; a subscriber that falls behind misses events.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub creates an event hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel func removes it
// and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber that can take it.
func (h *Hub) Publish(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
