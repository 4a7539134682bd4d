package cheki

import (
	"testing"
	"time"

	"github.com/oshilog/oshilog/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestCSVRenderer_Render(t *testing.T) {
	events := []EventRecord{
		{Date: "2024-01-02", Entry: Entry{Counts: map[string]int{"A": 3, "B": 1}}},
		{Date: "2024-01-01", Entry: Entry{Counts: map[string]int{"A": 2}}},
	}

	got := NewCSVRenderer().Render(events)

	want := "\uFEFF" +
		"Date,Event,A,B,Total\n" +
		`2024-01-02,"",3,1,4` + "\n" +
		`2024-01-01,"",2,0,2`
	assert.Equal(t, want, got)
}

func TestCSVRenderer_QuotesEventName(t *testing.T) {
	events := []EventRecord{
		{Date: "2024-01-01", Entry: Entry{
			EventName: `Winter "Best" Live`,
			Counts:    map[string]int{"A": 1},
		}},
	}

	got := NewCSVRenderer().Render(events)

	assert.Contains(t, got, `2024-01-01,"Winter ""Best"" Live",1,1`)
}

func TestCSVRenderer_EmptyReport(t *testing.T) {
	got := NewCSVRenderer().Render(nil)

	assert.Equal(t, "\uFEFFDate,Event,Total", got)
}

func TestCSVRenderer_Filename(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)}

	assert.Equal(t, "cheki-report-20240315.csv", NewCSVRenderer().Filename(clock))
}
