package cheki

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/oshilog/oshilog/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Service owns all board mutations. Every mutation persists immediately;
// there is no deferred or batched write.
type Service struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) Board(ctx context.Context) (Board, error) {
	return s.repo.LoadBoard(ctx)
}

// Day returns the entry for one date, empty if nothing was tallied yet.
func (s *Service) Day(ctx context.Context, date string) (Entry, error) {
	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return Entry{}, err
	}
	entry, ok := board[date]
	if !ok {
		return Entry{Counts: map[string]int{}}, nil
	}
	return entry, nil
}

// UpsertMember adds a member to the date's tally with a count of zero.
// A blank name or an already-present member is a silent no-op; an existing
// count is never reset.
func (s *Service) UpsertMember(ctx context.Context, date string, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return err
	}

	entry := board[date]
	if entry.Counts == nil {
		entry.Counts = map[string]int{}
	}
	if _, ok := entry.Counts[name]; ok {
		return nil
	}
	entry.Counts[name] = 0
	board[date] = entry

	if err := s.repo.SaveBoard(ctx, board); err != nil {
		return err
	}
	if err := s.rememberMember(ctx, name); err != nil {
		// Suggestions are a convenience; the tally itself is already saved.
		log.Warnf("could not remember member %q: %v", name, err)
	}

	s.publishEntryUpdate(ctx, date, name, 0)
	return nil
}

// AdjustCount moves a member's count by delta, clamped at zero.
func (s *Service) AdjustCount(ctx context.Context, date string, member string, delta int) error {
	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return err
	}

	entry := board[date]
	if entry.Counts == nil {
		entry.Counts = map[string]int{}
	}
	count := entry.Counts[member] + delta
	if count < 0 {
		count = 0
	}
	entry.Counts[member] = count
	board[date] = entry

	if err := s.repo.SaveBoard(ctx, board); err != nil {
		return err
	}

	s.publishEntryUpdate(ctx, date, member, count)
	return nil
}

// RemoveMember deletes the member from the date's tally. Confirming the
// destructive intent is the caller's concern, not enforced here.
func (s *Service) RemoveMember(ctx context.Context, date string, member string) error {
	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return err
	}

	entry, ok := board[date]
	if !ok {
		return nil
	}
	if _, ok := entry.Counts[member]; !ok {
		return nil
	}
	delete(entry.Counts, member)
	board[date] = entry

	if err := s.repo.SaveBoard(ctx, board); err != nil {
		return err
	}

	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ChekiMemberRemoved, event_bus.ChekiEntryChange{
		Date:   date,
		Member: member,
	})); err != nil {
		log.Debugf("publish failed: %v", err)
	}
	return nil
}

// SetEventName labels the date's entry, creating it if absent.
func (s *Service) SetEventName(ctx context.Context, date string, name string) error {
	board, err := s.repo.LoadBoard(ctx)
	if err != nil {
		return err
	}

	entry := board[date]
	if entry.Counts == nil {
		entry.Counts = map[string]int{}
	}
	entry.EventName = name
	board[date] = entry

	return s.repo.SaveBoard(ctx, board)
}

// DayTotal is the sum of all counts on one date.
func (s *Service) DayTotal(ctx context.Context, date string) (int, error) {
	entry, err := s.Day(ctx, date)
	if err != nil {
		return 0, err
	}
	return entry.Total(), nil
}

// Reset wipes the whole tally board and the suggestion list. Confirming the
// destructive intent is the caller's concern, as with RemoveMember.
func (s *Service) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx)
}

// Suggestions filters the remembered member names by a case-insensitive
// substring match.
func (s *Service) Suggestions(ctx context.Context, query string) ([]string, error) {
	members, err := s.repo.LoadMembers(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	suggestions := make([]string, 0, len(members))
	for _, name := range members {
		if strings.Contains(strings.ToLower(name), query) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions, nil
}

func (s *Service) rememberMember(ctx context.Context, name string) error {
	members, err := s.repo.LoadMembers(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(members, name) {
		return nil
	}
	return s.repo.SaveMembers(ctx, append(members, name))
}

func (s *Service) publishEntryUpdate(ctx context.Context, date, member string, count int) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ChekiEntryUpdated, event_bus.ChekiEntryChange{
		Date:   date,
		Member: member,
		Count:  count,
	}))
	if err != nil {
		log.Debugf("publish failed: %v", fmt.Errorf("cheki entry update: %w", err))
	}
}
