package countdown

import (
	"fmt"
	"time"

	"github.com/oshilog/oshilog/internal/utils"
)

// TimeLeft is the remaining time to the birthday, split for display.
type TimeLeft struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Service computes the countdown to a fixed target instant. Clients poll it
// on their own tick; nothing here schedules anything.
type Service struct {
	target time.Time
	clock  utils.Clock
}

// NewService parses the birthday date (YYYY-MM-DD, midnight local time).
func NewService(birthday string, clock utils.Clock) (*Service, error) {
	target, err := utils.ParseDate(birthday)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday date %q: %w", birthday, err)
	}
	return &Service{target: target, clock: clock}, nil
}

// TimeLeft returns the remaining time, or arrived=true once the target has
// passed.
func (s *Service) TimeLeft() (left TimeLeft, arrived bool) {
	diff := s.target.Sub(s.clock.Now())
	if diff <= 0 {
		return TimeLeft{}, true
	}
	return TimeLeft{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff % (24 * time.Hour) / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
		Seconds: int(diff % time.Minute / time.Second),
	}, false
}

// Target is the countdown's target instant.
func (s *Service) Target() time.Time {
	return s.target
}
