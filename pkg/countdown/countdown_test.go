package countdown

import (
	"testing"
	"time"

	"github.com/oshilog/oshilog/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestNewService_InvalidDate(t *testing.T) {
	_, err := NewService("06-04-2026", &utils.MockClock{})

	assert.Error(t, err)
}

func TestTimeLeft(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 4, 3, 21, 58, 55, 0, time.Local)}
	service, err := NewService("2026-04-06", clock)
	assert.NoError(t, err)

	left, arrived := service.TimeLeft()

	assert.False(t, arrived)
	assert.Equal(t, TimeLeft{Days: 2, Hours: 2, Minutes: 1, Seconds: 5}, left)
}

func TestTimeLeft_Arrived(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 4, 6, 0, 0, 0, 0, time.Local)}
	service, err := NewService("2026-04-06", clock)
	assert.NoError(t, err)

	left, arrived := service.TimeLeft()

	assert.True(t, arrived)
	assert.Equal(t, TimeLeft{}, left)
}

func TestTarget(t *testing.T) {
	service, err := NewService("2026-04-06", &utils.MockClock{})
	assert.NoError(t, err)

	assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.Local), service.Target())
}
