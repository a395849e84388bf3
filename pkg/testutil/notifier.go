package testutil

import (
	"context"
	"sync"

	"github.com/questforge/backend/internal/domain/notification"
)

// MockNotifier records every emitted event in memory.
type MockNotifier struct {
	mutex  sync.Mutex
	events []*notification.EventRequest
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) Emit(ctx context.Context, ev *notification.EventRequest) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.events = append(n.events, ev)
}

func (n *MockNotifier) Events() []*notification.EventRequest {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return append([]*notification.EventRequest{}, n.events...)
}

// EventsOf returns the recorded events with the given op, in emission order.
func (n *MockNotifier) EventsOf(op string) []*notification.EventRequest {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	var result []*notification.EventRequest
	for _, ev := range n.events {
		if ev.Op == op {
			result = append(result, ev)
		}
	}
	return result
}
