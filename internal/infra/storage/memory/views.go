package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	calendarapp "rentcal/internal/app/handlers/calendar"
	domaincalendar "rentcal/internal/domain/calendar"
)

// ViewStore keeps calendar screen states keyed by a random id.
type ViewStore struct {
	mu    sync.Mutex
	items map[string]domaincalendar.ViewState
}

func NewViewStore() *ViewStore {
	return &ViewStore{items: make(map[string]domaincalendar.ViewState)}
}

func (s *ViewStore) Create(ctx context.Context, state domaincalendar.ViewState) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = state
	return id, nil
}

func (s *ViewStore) Get(ctx context.Context, id string) (domaincalendar.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.items[id]
	if !ok {
		return domaincalendar.ViewState{}, calendarapp.ErrViewNotFound
	}
	return state, nil
}

// Update applies fn under the store lock; a failing fn leaves the view unchanged.
func (s *ViewStore) Update(ctx context.Context, id string, fn func(domaincalendar.ViewState) (domaincalendar.ViewState, error)) (domaincalendar.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.items[id]
	if !ok {
		return domaincalendar.ViewState{}, calendarapp.ErrViewNotFound
	}
	next, err := fn(state)
	if err != nil {
		return state, err
	}
	s.items[id] = next
	return next, nil
}

func (s *ViewStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return calendarapp.ErrViewNotFound
	}
	delete(s.items, id)
	return nil
}

var _ calendarapp.ViewRepository = (*ViewStore)(nil)
