package countdown

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oshilog/oshilog/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestGetCountdown(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 4, 5, 0, 0, 0, 0, time.Local)}
	service, err := NewService("2026-04-06", clock)
	assert.NoError(t, err)
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/countdown", nil)
	w := httptest.NewRecorder()
	handler.GetCountdown(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var dto CountdownDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.False(t, dto.Arrived)
	assert.Equal(t, &TimeLeft{Days: 1}, dto.TimeLeft)
}

func TestGetCountdown_Arrived(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, 4, 7, 0, 0, 0, 0, time.Local)}
	service, err := NewService("2026-04-06", clock)
	assert.NoError(t, err)
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	handler.GetCountdown(w, httptest.NewRequest(http.MethodGet, "/countdown", nil))

	var dto CountdownDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.True(t, dto.Arrived)
	assert.Nil(t, dto.TimeLeft)
}
