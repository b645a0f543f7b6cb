package service

import (
	"fmt"

	"github.com/google/uuid"
)

// Subscribe returns a channel receiving the dump of the run after every change. The channel
// is closed by Unsubscribe or when the run finishes. Slow readers miss dumps.
func (m *RunManager) Subscribe(id uuid.UUID) <-chan string {
	m.Lock()
	defer m.Unlock()

	ch := make(chan string, subscriberBuffer)
	if m.subscribers[id] == nil {
		m.subscribers[id] = make(map[chan string]struct{})
	}
	m.subscribers[id][ch] = struct{}{}
	return ch
}

// Unsubscribe stops and closes a subscription.
func (m *RunManager) Unsubscribe(id uuid.UUID, sub <-chan string) {
	m.Lock()
	defer m.Unlock()

	for ch := range m.subscribers[id] {
		if ch == sub {
			delete(m.subscribers[id], ch)
			close(ch)
		}
	}
	if len(m.subscribers[id]) == 0 {
		delete(m.subscribers, id)
	}
}

func (m *RunManager) publish(id uuid.UUID, dump string) {
	m.RLock()
	defer m.RUnlock()

	for ch := range m.subscribers[id] {
		select {
		case ch <- dump:
		default:
			m.logger.Warn(fmt.Sprintf("dropped a dump of run %s for a slow subscriber", id))
		}
	}
}

func (m *RunManager) closeSubscribers(id uuid.UUID) {
	m.Lock()
	defer m.Unlock()

	for ch := range m.subscribers[id] {
		close(ch)
	}
	delete(m.subscribers, id)
}
