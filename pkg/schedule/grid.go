package schedule

import (
	"time"

	"github.com/oshilog/oshilog/internal/utils"
)

// maxMarkers caps the indicator dots shown per day cell.
const maxMarkers = 3

// Cell is one day of the calendar grid. Days from adjacent months are shown
// but not interactive, so they carry no markers.
type Cell struct {
	Date    string   `json:"date"`
	Day     int      `json:"day"`
	InMonth bool     `json:"inMonth"`
	Today   bool     `json:"today"`
	Groups  []string `json:"groups,omitempty"`
}

// GridBuilder derives the month view: whole weeks from the week containing
// the 1st through the week containing the month's last day.
type GridBuilder struct {
	weekStart time.Weekday
}

func NewGridBuilder(weekStart time.Weekday) *GridBuilder {
	return &GridBuilder{weekStart: weekStart}
}

// Build lays out the grid for the month containing the given time. Each
// in-month cell carries up to three distinct event-group markers for that
// date, deduplicated in first-seen order.
func (b *GridBuilder) Build(month time.Time, eventsByDate map[string][]Event, todayStr string) [][]Cell {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)

	day := first.AddDate(0, 0, -daysSinceWeekStart(first.Weekday(), b.weekStart))
	end := last.AddDate(0, 0, 6-daysSinceWeekStart(last.Weekday(), b.weekStart))

	var weeks [][]Cell
	for !day.After(end) {
		week := make([]Cell, 0, 7)
		for i := 0; i < 7; i++ {
			dateStr := day.Format(utils.DateFormat)
			inMonth := day.Month() == first.Month()
			cell := Cell{
				Date:    dateStr,
				Day:     day.Day(),
				InMonth: inMonth,
				Today:   dateStr == todayStr,
			}
			if inMonth {
				cell.Groups = dayMarkers(eventsByDate[dateStr])
			}
			week = append(week, cell)
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func daysSinceWeekStart(day, weekStart time.Weekday) int {
	return (int(day) - int(weekStart) + 7) % 7
}

func dayMarkers(events []Event) []string {
	var groups []string
	seen := make(map[string]bool)
	for _, e := range events {
		if seen[e.Group] {
			continue
		}
		seen[e.Group] = true
		groups = append(groups, e.Group)
		if len(groups) == maxMarkers {
			break
		}
	}
	return groups
}
