package schedule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oshilog/oshilog/internal/storage"
	log "github.com/sirupsen/logrus"
)

const (
	eventsKey   = "mmScheduleEvents"
	viewModeKey = "mmScheduleViewMode"
)

const (
	ViewModeCalendar = "calendar"
	ViewModeList     = "list"
)

type Repository interface {
	LoadEvents(ctx context.Context) ([]Event, error)
	// SaveEvents persists the slice, truncated to the configured cap, and
	// returns what was actually stored.
	SaveEvents(ctx context.Context, events []Event) ([]Event, error)
	ViewMode(ctx context.Context) (string, error)
	SaveViewMode(ctx context.Context, mode string) error
}

type RepositoryImpl struct {
	store     storage.Store
	maxEvents int
}

func NewRepository(store storage.Store, maxEvents int) *RepositoryImpl {
	return &RepositoryImpl{store: store, maxEvents: maxEvents}
}

// LoadEvents reads the persisted schedule; missing or malformed data yields
// an empty schedule.
func (r *RepositoryImpl) LoadEvents(ctx context.Context) ([]Event, error) {
	raw, ok, err := r.store.Get(ctx, eventsKey)
	if err != nil {
		return nil, fmt.Errorf("could not read schedule: %w", err)
	}
	if !ok {
		return []Event{}, nil
	}

	var events []Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		log.Warnf("Discarding malformed schedule data: %v", err)
		return []Event{}, nil
	}
	return events, nil
}

// SaveEvents drops the oldest events beyond the cap (slice front), then
// persists the remainder. The eviction is silent.
func (r *RepositoryImpl) SaveEvents(ctx context.Context, events []Event) ([]Event, error) {
	if r.maxEvents > 0 && len(events) > r.maxEvents {
		events = events[len(events)-r.maxEvents:]
	}

	raw, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("could not serialize schedule: %w", err)
	}
	if err := r.store.Set(ctx, eventsKey, string(raw)); err != nil {
		return nil, fmt.Errorf("could not persist schedule: %w", err)
	}
	return events, nil
}

// ViewMode returns the stored display mode, "calendar" unless "list" was
// explicitly saved.
func (r *RepositoryImpl) ViewMode(ctx context.Context) (string, error) {
	raw, ok, err := r.store.Get(ctx, viewModeKey)
	if err != nil {
		return "", fmt.Errorf("could not read view mode: %w", err)
	}
	if ok && raw == ViewModeList {
		return ViewModeList, nil
	}
	return ViewModeCalendar, nil
}

func (r *RepositoryImpl) SaveViewMode(ctx context.Context, mode string) error {
	if err := r.store.Set(ctx, viewModeKey, mode); err != nil {
		return fmt.Errorf("could not persist view mode: %w", err)
	}
	return nil
}
