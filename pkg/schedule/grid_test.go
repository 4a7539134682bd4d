package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGridBuilder_WholeWeeks(t *testing.T) {
	builder := NewGridBuilder(time.Sunday)

	// May 2024: 1st is a Wednesday, 31st is a Friday.
	weeks := builder.Build(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), nil, "")

	assert.Len(t, weeks, 5)
	for _, week := range weeks {
		assert.Len(t, week, 7)
	}
	assert.Equal(t, "2024-04-28", weeks[0][0].Date)
	assert.Equal(t, "2024-06-01", weeks[4][6].Date)
}

func TestGridBuilder_FirstCellMatchesWeekStart(t *testing.T) {
	month := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)

	sundayWeeks := NewGridBuilder(time.Sunday).Build(month, nil, "")
	assert.Equal(t, "2024-04-28", sundayWeeks[0][0].Date)

	mondayWeeks := NewGridBuilder(time.Monday).Build(month, nil, "")
	assert.Equal(t, "2024-04-29", mondayWeeks[0][0].Date)
}

func TestGridBuilder_MarksInMonthAndToday(t *testing.T) {
	builder := NewGridBuilder(time.Sunday)

	weeks := builder.Build(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), nil, "2024-05-15")

	var today *Cell
	for _, week := range weeks {
		for i, cell := range week {
			assert.Equal(t, cell.Date[:7] == "2024-05", cell.InMonth, cell.Date)
			if cell.Today {
				today = &week[i]
			}
		}
	}
	assert.NotNil(t, today)
	assert.Equal(t, "2024-05-15", today.Date)
	assert.Equal(t, 15, today.Day)
}

func TestGridBuilder_GroupMarkers(t *testing.T) {
	builder := NewGridBuilder(time.Sunday)
	events := []Event{
		{ID: 1, Group: "A", Date: "2024-05-10"},
		{ID: 2, Group: "B", Date: "2024-05-10"},
		{ID: 3, Group: "A", Date: "2024-05-10"},
		{ID: 4, Group: "C", Date: "2024-05-10"},
		{ID: 5, Group: "D", Date: "2024-05-10"},
	}

	weeks := builder.Build(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), EventsByDate(events), "")

	var cell Cell
	for _, week := range weeks {
		for _, c := range week {
			if c.Date == "2024-05-10" {
				cell = c
			}
		}
	}
	// Deduplicated, first-seen order, capped at three.
	assert.Equal(t, []string{"A", "B", "C"}, cell.Groups)
}

func TestGridBuilder_AdjacentMonthCellsCarryNoMarkers(t *testing.T) {
	builder := NewGridBuilder(time.Sunday)
	events := []Event{{ID: 1, Group: "A", Date: "2024-04-30"}}

	weeks := builder.Build(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), EventsByDate(events), "")

	for _, week := range weeks {
		for _, cell := range week {
			if cell.Date == "2024-04-30" {
				assert.False(t, cell.InMonth)
				assert.Empty(t, cell.Groups)
			}
		}
	}
}
