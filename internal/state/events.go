package state

import (
	"context"
	"time"

	"github.com/dmitrijs2005/daykeeper/internal/events"
	"github.com/dmitrijs2005/daykeeper/internal/models"
)

// EventsState is the projected calendar view: the signed-in user's events
// plus the date the interface currently focuses on.
type EventsState struct {
	Events       []models.Event
	SelectedDate string
}

// Events projects event store operations into an EventsState.
type Events struct {
	store *events.Store
	proj  *Projection[EventsState]
}

// NewEvents starts with an empty list focused on today.
func NewEvents(store *events.Store) *Events {
	return &Events{
		store: store,
		proj:  NewProjection(EventsState{SelectedDate: models.NormalizeDate(time.Now())}),
	}
}

// Snapshot returns the current calendar view.
func (e *Events) Snapshot() Snapshot[EventsState] {
	return e.proj.Snapshot()
}

// Load replaces the projected list with the user's stored events.
func (e *Events) Load(ctx context.Context, userID string) ([]models.Event, error) {
	st, err := e.proj.Run(ctx, func(ctx context.Context) (EventsState, error) {
		list, err := e.store.List(ctx, userID)
		if err != nil {
			return EventsState{}, err
		}
		st := e.proj.Snapshot().Data
		st.Events = list
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return st.Events, nil
}

// Create stores a new event and appends it to the projected list.
func (e *Events) Create(ctx context.Context, userID string, draft models.EventDraft) (*models.Event, error) {
	var created *models.Event
	_, err := e.proj.Run(ctx, func(ctx context.Context) (EventsState, error) {
		ev, err := e.store.Create(ctx, userID, draft)
		if err != nil {
			return EventsState{}, err
		}
		created = ev
		st := e.proj.Snapshot().Data
		st.Events = append(append([]models.Event(nil), st.Events...), *ev)
		return st, nil
	})
	return created, err
}

// Update edits an event in place in both the store and the projection.
func (e *Events) Update(ctx context.Context, userID, eventID string, draft models.EventDraft) (*models.Event, error) {
	var updated *models.Event
	_, err := e.proj.Run(ctx, func(ctx context.Context) (EventsState, error) {
		ev, err := e.store.Update(ctx, userID, eventID, draft)
		if err != nil {
			return EventsState{}, err
		}
		updated = ev
		st := e.proj.Snapshot().Data
		list := append([]models.Event(nil), st.Events...)
		for i := range list {
			if list[i].ID == ev.ID {
				list[i] = *ev
			}
		}
		st.Events = list
		return st, nil
	})
	return updated, err
}

// Delete removes an event from the store and the projection.
func (e *Events) Delete(ctx context.Context, userID, eventID string) error {
	_, err := e.proj.Run(ctx, func(ctx context.Context) (EventsState, error) {
		if err := e.store.Delete(ctx, userID, eventID); err != nil {
			return EventsState{}, err
		}
		st := e.proj.Snapshot().Data
		kept := make([]models.Event, 0, len(st.Events))
		for _, ev := range st.Events {
			if ev.ID != eventID {
				kept = append(kept, ev)
			}
		}
		st.Events = kept
		return st, nil
	})
	return err
}

// SelectDate changes the focused date. Local-only, never touches storage.
func (e *Events) SelectDate(date string) {
	e.proj.Apply(func(st EventsState) EventsState {
		st.SelectedDate = date
		return st
	})
}

// SelectedDateEvents filters the projected list down to the focused date.
func (e *Events) SelectedDateEvents() []models.Event {
	st := e.proj.Snapshot().Data
	out := make([]models.Event, 0)
	for _, ev := range st.Events {
		if ev.Date == st.SelectedDate {
			out = append(out, ev)
		}
	}
	return out
}

// Reset clears the projected events on sign-out, keeping the focused date.
func (e *Events) Reset() {
	e.proj.Apply(func(st EventsState) EventsState {
		st.Events = nil
		return st
	})
}
