package schedule

import (
	"sort"
	"strconv"
	"strings"
)

// Event is one schedule entry. Time ranges are stored as a single
// "HH:MM - HH:MM" string, or empty when either bound is missing.
type Event struct {
	ID        int64  `json:"id"`
	Group     string `json:"group"`
	Date      string `json:"date"`
	StageTime string `json:"stageTime,omitempty"`
	ChekiTime string `json:"chekiTime,omitempty"`
	Note      string `json:"note,omitempty"`
}

// DefaultGroup is substituted when an event is saved with a blank group.
const DefaultGroup = "Other"

const timeRangeSeparator = " - "

// EncodeTimeRange builds the stored form of a time range. Both bounds must be
// present, otherwise the range is stored empty.
func EncodeTimeRange(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	return start + timeRangeSeparator + end
}

// DecodeTimeRange splits a stored time range back into its bounds. Anything
// malformed or missing decodes to two empty strings.
func DecodeTimeRange(s string) (start, end string) {
	parts := strings.SplitN(s, timeRangeSeparator, 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// noStart sorts events without a usable start time after everything else.
const noStart = int(^uint(0) >> 1)

func timeToMinutes(t string) int {
	if t == "" {
		return noStart
	}
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return noStart
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return noStart
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return noStart
	}
	return h*60 + m
}

// StartMinute is the event's earliest start as minute-of-day, used for
// ordering events that share a date.
func StartMinute(e Event) int {
	stageStart, _ := DecodeTimeRange(e.StageTime)
	chekiStart, _ := DecodeTimeRange(e.ChekiTime)
	stage := timeToMinutes(stageStart)
	cheki := timeToMinutes(chekiStart)
	if cheki < stage {
		return cheki
	}
	return stage
}

// Less is the total order of the schedule feed: date ascending, then start
// minute (events without times last), then group name.
func Less(a, b Event) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if am, bm := StartMinute(a), StartMinute(b); am != bm {
		return am < bm
	}
	return a.Group < b.Group
}

// Upcoming filters the feed for the list view: events on the selected date if
// one is set, otherwise everything on or after today, sorted with Less.
func Upcoming(events []Event, todayStr string, selectedDate string) []Event {
	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if selectedDate != "" {
			if e.Date == selectedDate {
				filtered = append(filtered, e)
			}
		} else if e.Date >= todayStr {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return Less(filtered[i], filtered[j])
	})
	return filtered
}

// EventsByDate indexes events by their date string, preserving slice order
// within each day.
func EventsByDate(events []Event) map[string][]Event {
	byDate := make(map[string][]Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	return byDate
}
