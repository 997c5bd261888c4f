// Package sse fans events out to listeners subscribed per subject.
package sse

import (
	"sync"
)

const bufferSize = 10

type Event struct {
	Subject string
	Name    string
	Data    interface{}
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe returns a buffered channel of events for subject and a cleanup
// function that closes it.
func (h *Hub) Subscribe(subject string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if h.subscribers[subject] == nil {
		h.subscribers[subject] = make(map[chan Event]struct{})
	}
	h.subscribers[subject][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[subject], ch)
			close(ch)
			if len(h.subscribers[subject]) == 0 {
				delete(h.subscribers, subject)
			}
		})
	}

	return ch, cleanup
}

// Listen calls fn for every event published to subject until stop is called.
func (h *Hub) Listen(subject string, fn func(Event)) (stop func()) {
	ch, cleanup := h.Subscribe(subject)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			fn(ev)
		}
	}()
	return func() {
		cleanup()
		<-done
	}
}

// Publish delivers event to every subscriber of subject. Subscribers with a
// full buffer miss the event.
func (h *Hub) Publish(subject string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Subject = subject
	for ch := range h.subscribers[subject] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(subject string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[subject])
}
