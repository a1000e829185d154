package event

import (
	"sync"
	"sync/atomic"

	"github.com/rmaia/floodwatch/internal/models"
)

type Kind string

const (
	KindRiskEvaluated Kind = "risk_evaluated"
	KindLookupFailed  Kind = "lookup_failed"
)

// RouteEvent is published by the route store whenever a risk lookup
// resolves. RiskLevel and Status are only set for KindRiskEvaluated;
// Reason is only set for KindLookupFailed.
type RouteEvent struct {
	Kind      Kind               `json:"kind"`
	RouteID   string             `json:"route_id"`
	RouteName string             `json:"route_name"`
	RiskLevel int                `json:"risk_level,omitempty"`
	Status    models.RouteStatus `json:"status,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

// Bus fans route events out to subscribers. The alert policy is the
// primary consumer; the SSE stream endpoint attaches here as well.
type Bus struct {
	subscribers map[uint64]chan RouteEvent
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[uint64]chan RouteEvent),
	}
}

func (b *Bus) Subscribe() (uint64, chan RouteEvent) {
	id := b.nextID.Add(1)
	ch := make(chan RouteEvent, 16)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Bus) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Bus) Publish(ev RouteEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, causing consumers to exit gracefully
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
