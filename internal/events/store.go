// Package events manages per-user appointment partitions. Each user's events
// are stored as one JSON array under events_<userId>; every mutation re-reads
// the partition, applies the change in memory, and writes the whole value
// back.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/daykeeper/internal/common"
	"github.com/dmitrijs2005/daykeeper/internal/kvstore"
	"github.com/dmitrijs2005/daykeeper/internal/models"
	"github.com/dmitrijs2005/daykeeper/internal/syncx"
)

const keyPrefixEvents = "events_"

func partitionKey(userID string) string {
	return keyPrefixEvents + userID
}

// Store is the event repository. Read-modify-write cycles on a partition are
// serialized behind a per-key mutex, so concurrent mutations of the same
// user's events cannot drop each other's write. The external contracts are
// unchanged by this.
type Store struct {
	kv    kvstore.Store
	locks *syncx.KeyMutex
	now   func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs a Store over the given key-value backend.
func New(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		locks: syncx.NewKeyMutex(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every event in the user's partition, empty when the partition
// does not exist yet.
func (s *Store) List(ctx context.Context, userID string) ([]models.Event, error) {
	return s.readPartition(ctx, userID)
}

// ListByDate filters the partition by exact canonical-date equality.
func (s *Store) ListByDate(ctx context.Context, userID, date string) ([]models.Event, error) {
	all, err := s.readPartition(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]models.Event, 0, len(all))
	for _, e := range all {
		if e.Date == date {
			result = append(result, e)
		}
	}
	return result, nil
}

// Create appends a new event to the partition. The date is normalized to
// YYYY-MM-DD and created/updated timestamps are stamped with the current time.
func (s *Store) Create(ctx context.Context, userID string, draft models.EventDraft) (*models.Event, error) {
	key := partitionKey(userID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	all, err := s.readPartition(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event := models.Event{
		ID:          models.NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		Date:        models.NormalizeDate(draft.Date),
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	all = append(all, event)
	if err := s.writePartition(ctx, userID, all); err != nil {
		return nil, err
	}
	return &event, nil
}

// Update replaces the mutable fields of an existing event. ID, UserID, and
// CreatedAt never change; UpdatedAt is refreshed.
func (s *Store) Update(ctx context.Context, userID, eventID string, draft models.EventDraft) (*models.Event, error) {
	key := partitionKey(userID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	all, err := s.readPartition(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range all {
		if e.ID == eventID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, common.ErrEventNotFound
	}

	updated := all[idx]
	updated.Title = draft.Title
	updated.Description = draft.Description
	updated.Date = models.NormalizeDate(draft.Date)
	updated.StartTime = draft.StartTime
	updated.EndTime = draft.EndTime
	updated.UpdatedAt = s.now().UTC()

	all[idx] = updated
	if err := s.writePartition(ctx, userID, all); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the event if present. A missing id is a no-op, not an error.
func (s *Store) Delete(ctx context.Context, userID, eventID string) error {
	key := partitionKey(userID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	all, err := s.readPartition(ctx, userID)
	if err != nil {
		return err
	}

	filtered := make([]models.Event, 0, len(all))
	for _, e := range all {
		if e.ID != eventID {
			filtered = append(filtered, e)
		}
	}

	return s.writePartition(ctx, userID, filtered)
}

// GetByID returns the event or (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, userID, eventID string) (*models.Event, error) {
	all, err := s.readPartition(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.ID == eventID {
			return &e, nil
		}
	}
	return nil, nil
}

func (s *Store) readPartition(ctx context.Context, userID string) ([]models.Event, error) {
	data, err := s.kv.Get(ctx, partitionKey(userID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []models.Event{}, nil
	}

	var all []models.Event
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode partition %q: %w", partitionKey(userID), err)
	}
	return all, nil
}

func (s *Store) writePartition(ctx context.Context, userID string, all []models.Event) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode partition %q: %w", partitionKey(userID), err)
	}
	return s.kv.Set(ctx, partitionKey(userID), data)
}
