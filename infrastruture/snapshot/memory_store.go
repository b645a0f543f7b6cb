package snapshot

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/google/uuid"
)

type memoryEntry struct {
	data      []byte
	updatedAt time.Time
}

// runLock is a one slot semaphore shared by everyone holding or waiting for a run.
type runLock struct {
	sem  chan struct{}
	refs int
}

// MemoryRunStore keeps runs in process. Runs are stored encoded, so callers never share a
// run value with the store.
type MemoryRunStore struct {
	mu     sync.RWMutex
	runs   map[uuid.UUID]memoryEntry
	lockMu sync.Mutex
	locks  map[uuid.UUID]*runLock // dropped when nobody holds or waits
}

func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{
		runs:  make(map[uuid.UUID]memoryEntry),
		locks: make(map[uuid.UUID]*runLock),
	}
}

func (s *MemoryRunStore) Save(_ context.Context, run *dmn.Run) error {
	data, err := encode(run)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = memoryEntry{data: data, updatedAt: run.UpdatedAt}
	return nil
}

func (s *MemoryRunStore) Load(_ context.Context, id uuid.UUID) (*dmn.Run, error) {
	s.mu.RLock()
	entry, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, dmn.ErrRunNotFound
	}
	return decode(entry.data)
}

func (s *MemoryRunStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
	return nil
}

func (s *MemoryRunStore) List(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		return s.runs[ids[a]].updatedAt.After(s.runs[ids[b]].updatedAt)
	})
	return ids, nil
}

// Lock blocks until the run's lock is free. Giving up when ctx is done is dmn.ErrRunLocked.
func (s *MemoryRunStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	l := s.acquireRef(id)
	select {
	case l.sem <- struct{}{}:
		return func() {
			<-l.sem
			s.releaseRef(id, l)
		}, nil
	case <-ctx.Done():
		s.releaseRef(id, l)
		return nil, fmt.Errorf("%w: %w", dmn.ErrRunLocked, ctx.Err())
	}
}

func (s *MemoryRunStore) acquireRef(id uuid.UUID) *runLock {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &runLock{sem: make(chan struct{}, 1)}
		s.locks[id] = l
	}
	l.refs++
	return l
}

func (s *MemoryRunStore) releaseRef(id uuid.UUID, l *runLock) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
}
