// Package realtime fans item-change notifications out to board subscribers.
//
// Every SSE connection holds exactly one Subscription; a subscription is a
// "something changed" poke, not a data feed. Subscribers always re-read
// current state on a poke, so notification order does not matter: whichever
// state is read last wins.
package realtime

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/retroboard-dev/retroboard/internal/domain"
)

var activeSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "board_subscriptions_active",
	Help: "Number of active board event subscriptions",
})

type Subscription struct {
	boardId domain.BoardId
	c       chan struct{}
	hub     *Hub
	once    sync.Once
}

// C signals at most one pending poke; coalescing is fine because the
// subscriber reloads full state anyway.
func (s *Subscription) C() <-chan struct{} {
	return s.c
}

// Close detaches the subscription. Safe to call more than once; every
// subscriber must guarantee it on teardown.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		activeSubscriptions.Dec()
	})
}

type Hub struct {
	mu   sync.Mutex
	subs map[domain.BoardId]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[domain.BoardId]map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(boardId domain.BoardId) *Subscription {
	s := &Subscription{boardId: boardId, c: make(chan struct{}, 1), hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[boardId] == nil {
		h.subs[boardId] = make(map[*Subscription]struct{})
	}
	h.subs[boardId][s] = struct{}{}
	activeSubscriptions.Inc()
	return s
}

func (h *Hub) unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[s.boardId]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.boardId)
		}
	}
}

// Notify pokes every subscriber of the board. Non-blocking: a subscriber
// with a poke already pending does not get a second one.
func (h *Hub) Notify(boardId domain.BoardId) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[boardId] {
		select {
		case s.c <- struct{}{}:
		default:
		}
	}
}

// Run pumps a notification source (the pg listener) into the hub until the
// context ends or the source closes.
func (h *Hub) Run(ctx context.Context, notifications <-chan domain.BoardId) {
	for {
		select {
		case <-ctx.Done():
			return
		case boardId, ok := <-notifications:
			if !ok {
				return
			}
			h.Notify(boardId)
		}
	}
}
