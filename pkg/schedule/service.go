package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oshilog/oshilog/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("schedule event not found")

type Service struct {
	repo Repository
	ids  IDSource
	bus  *event_bus.EventBus
}

func NewService(repo Repository, ids IDSource, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, ids: ids, bus: bus}
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.LoadEvents(ctx)
}

// Create assigns a fresh id, fills a blank group with the default, appends
// the event and persists. The returned event carries the assigned id.
func (s *Service) Create(ctx context.Context, event Event) (Event, error) {
	event.ID = s.ids.NextID()
	event.Group = normalizeGroup(event.Group)

	events, err := s.repo.LoadEvents(ctx)
	if err != nil {
		return Event{}, err
	}

	stored, err := s.repo.SaveEvents(ctx, append(events, event))
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}
	if len(stored) > 0 && stored[len(stored)-1].ID != event.ID {
		// Should not happen: the new event is appended last, so the cap
		// never evicts it.
		log.Warnf("created event %d missing from stored schedule", event.ID)
	}

	s.publish(ctx, event_bus.ScheduleEventSaved, event)
	return event, nil
}

// Update replaces the stored event with the same id. A missing id is an
// explicit error rather than a silent no-op.
func (s *Service) Update(ctx context.Context, event Event) (Event, error) {
	event.Group = normalizeGroup(event.Group)

	events, err := s.repo.LoadEvents(ctx)
	if err != nil {
		return Event{}, err
	}

	found := false
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
			found = true
			break
		}
	}
	if !found {
		return Event{}, fmt.Errorf("updating event %d: %w", event.ID, ErrEventNotFound)
	}

	if _, err := s.repo.SaveEvents(ctx, events); err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	s.publish(ctx, event_bus.ScheduleEventSaved, event)
	return event, nil
}

// Delete removes the event with the given id. Deleting an unknown id leaves
// the schedule unchanged.
func (s *Service) Delete(ctx context.Context, id int64) error {
	events, err := s.repo.LoadEvents(ctx)
	if err != nil {
		return err
	}

	remaining := make([]Event, 0, len(events))
	var deleted *Event
	for _, e := range events {
		if e.ID == id {
			deleted = &e
			continue
		}
		remaining = append(remaining, e)
	}
	if deleted == nil {
		return nil
	}

	if _, err := s.repo.SaveEvents(ctx, remaining); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publish(ctx, event_bus.ScheduleEventDeleted, *deleted)
	return nil
}

// Upcoming is the feed for the list view; see the Upcoming function for the
// filter and ordering rules.
func (s *Service) Upcoming(ctx context.Context, todayStr string, selectedDate string) ([]Event, error) {
	events, err := s.repo.LoadEvents(ctx)
	if err != nil {
		return nil, err
	}
	return Upcoming(events, todayStr, selectedDate), nil
}

func (s *Service) ViewMode(ctx context.Context) (string, error) {
	return s.repo.ViewMode(ctx)
}

// SetViewMode stores the display mode; anything other than "list" is
// normalized to "calendar".
func (s *Service) SetViewMode(ctx context.Context, mode string) error {
	if mode != ViewModeList {
		mode = ViewModeCalendar
	}
	return s.repo.SaveViewMode(ctx, mode)
}

func normalizeGroup(group string) string {
	if strings.TrimSpace(group) == "" {
		return DefaultGroup
	}
	return group
}

func (s *Service) publish(ctx context.Context, eventType event_bus.EventType, e Event) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.ScheduleEventChange{
		ID:    e.ID,
		Group: e.Group,
		Date:  e.Date,
	}))
	if err != nil {
		log.Debugf("publish failed: %v", err)
	}
}
