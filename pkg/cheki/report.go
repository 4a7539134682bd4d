package cheki

import (
	"sort"

	"github.com/oshilog/oshilog/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Reporting is a pure derivation layer over a Board snapshot: none of these
// functions mutate their input, and the same input always yields the same
// output. Views are recomputed on demand, never cached or persisted.

// EventRecord pairs a date with its entry, the unit all reports work on.
type EventRecord struct {
	Date  string `json:"date"`
	Entry Entry  `json:"entry"`
}

// MemberTotal is one leaderboard row.
type MemberTotal struct {
	Member string `json:"member"`
	Total  int    `json:"total"`
}

// MonthRollup aggregates one YYYY-MM bucket.
type MonthRollup struct {
	Month      string        `json:"month"`
	Total      int           `json:"total"`
	EventCount int           `json:"eventCount"`
	Entries    []EventRecord `json:"entries"`
}

// Overview carries the headline figures of the report.
type Overview struct {
	GrandTotal  int          `json:"grandTotal"`
	EventCount  int          `json:"eventCount"`
	MemberCount int          `json:"memberCount"`
	TopMember   *MemberTotal `json:"topMember,omitempty"`
}

// ListEvents returns all dates with a non-empty tally, newest first. An entry
// with an event name but no counts is not an event. Entries keyed by anything
// other than a well-formed date come from corrupted persisted data and are
// skipped.
func ListEvents(board Board) []EventRecord {
	events := make([]EventRecord, 0, len(board))
	for date, entry := range board {
		if len(entry.Counts) == 0 {
			continue
		}
		if _, err := utils.ParseDate(date); err != nil {
			log.Warnf("Skipping board entry with malformed date %q", date)
			continue
		}
		events = append(events, EventRecord{Date: date, Entry: entry})
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
	return events
}

// MemberLeaderboard totals counts per member across the given events, highest
// first. Ties keep first-appearance order (members of a single entry are
// visited alphabetically to make that order well defined).
func MemberLeaderboard(events []EventRecord) []MemberTotal {
	totals := make(map[string]int)
	var order []string
	for _, event := range events {
		for _, member := range sortedMembers(event.Entry) {
			if _, seen := totals[member]; !seen {
				order = append(order, member)
			}
			totals[member] += event.Entry.Counts[member]
		}
	}

	leaderboard := make([]MemberTotal, 0, len(order))
	for _, member := range order {
		leaderboard = append(leaderboard, MemberTotal{Member: member, Total: totals[member]})
	}
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].Total > leaderboard[j].Total
	})
	return leaderboard
}

// MonthlyRollup buckets events by the YYYY-MM prefix of their date, newest
// month first. Entries within a month keep the order of the input.
func MonthlyRollup(events []EventRecord) []MonthRollup {
	byMonth := make(map[string]*MonthRollup)
	var order []string
	for _, event := range events {
		month := event.Date
		if len(month) > len(utils.MonthFormat) {
			month = month[:len(utils.MonthFormat)]
		}
		rollup, ok := byMonth[month]
		if !ok {
			rollup = &MonthRollup{Month: month}
			byMonth[month] = rollup
			order = append(order, month)
		}
		rollup.Total += event.Entry.Total()
		rollup.EventCount++
		rollup.Entries = append(rollup.Entries, event)
	}

	rollups := make([]MonthRollup, 0, len(order))
	for _, month := range order {
		rollups = append(rollups, *byMonth[month])
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Month > rollups[j].Month
	})
	return rollups
}

// BuildOverview computes the headline figures for the given events.
func BuildOverview(events []EventRecord) Overview {
	grandTotal := 0
	for _, event := range events {
		grandTotal += event.Entry.Total()
	}

	leaderboard := MemberLeaderboard(events)
	overview := Overview{
		GrandTotal:  grandTotal,
		EventCount:  len(events),
		MemberCount: len(leaderboard),
	}
	if len(leaderboard) > 0 {
		top := leaderboard[0]
		overview.TopMember = &top
	}
	return overview
}

// AllMembers is the union of member names across all events, in order of
// first appearance.
func AllMembers(events []EventRecord) []string {
	seen := make(map[string]bool)
	var members []string
	for _, event := range events {
		for _, member := range sortedMembers(event.Entry) {
			if !seen[member] {
				seen[member] = true
				members = append(members, member)
			}
		}
	}
	return members
}

func sortedMembers(entry Entry) []string {
	members := make([]string, 0, len(entry.Counts))
	for member := range entry.Counts {
		members = append(members, member)
	}
	sort.Strings(members)
	return members
}
