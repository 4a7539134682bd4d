package cheki

import (
	"strconv"
	"strings"

	"github.com/oshilog/oshilog/internal/utils"
)

// CSVRenderer serializes a report into the spreadsheet export format:
// a UTF-8 BOM, then a Date,Event,<member columns>,Total header, one row per
// event in the given order. The event name field is always quoted.
type CSVRenderer struct {
}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) Render(events []EventRecord) string {
	members := AllMembers(events)

	header := make([]string, 0, len(members)+3)
	header = append(header, "Date", "Event")
	header = append(header, members...)
	header = append(header, "Total")

	lines := make([]string, 0, len(events)+1)
	lines = append(lines, strings.Join(header, ","))

	for _, event := range events {
		row := make([]string, 0, len(members)+3)
		row = append(row, event.Date, quote(event.Entry.EventName))
		for _, member := range members {
			row = append(row, strconv.Itoa(event.Entry.Counts[member]))
		}
		row = append(row, strconv.Itoa(event.Entry.Total()))
		lines = append(lines, strings.Join(row, ","))
	}

	return "\uFEFF" + strings.Join(lines, "\n")
}

// Filename names the export after the current date, e.g. cheki-report-20260830.csv.
func (r *CSVRenderer) Filename(clock utils.Clock) string {
	return "cheki-report-" + clock.Now().Format("20060102") + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
