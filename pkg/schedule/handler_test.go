package schedule

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/oshilog/oshilog/internal/event_bus"
	"github.com/oshilog/oshilog/internal/storage"
	"github.com/oshilog/oshilog/internal/utils"
	"github.com/stretchr/testify/assert"
)

func newTestHandler() *Handler {
	repo := NewRepository(storage.NewMemory(), 50)
	service := NewService(repo, &SequenceIDSource{}, event_bus.NewEventBus())
	clock := &utils.MockClock{FixedNow: time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)}
	return NewHandler(service, NewGridBuilder(time.Sunday), clock)
}

func createTestEvent(t *testing.T, handler *Handler, dto EventDTO) EventDTO {
	body, err := json.Marshal(dto)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/schedule/events", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.CreateEvent(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created EventDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestCreateEvent(t *testing.T) {
	handler := newTestHandler()

	created := createTestEvent(t, handler, EventDTO{
		Group:          "MilkShake",
		Date:           "2024-05-20",
		StageTimeStart: "12:00",
		StageTimeEnd:   "12:30",
	})

	assert.NotZero(t, created.ID)
	assert.Equal(t, "MilkShake", created.Group)
	assert.Equal(t, "12:00", created.StageTimeStart)
	assert.Equal(t, "12:30", created.StageTimeEnd)
}

func TestCreateEvent_InvalidDate(t *testing.T) {
	handler := newTestHandler()

	body, _ := json.Marshal(EventDTO{Group: "A", Date: "20/05/2024"})
	req := httptest.NewRequest(http.MethodPost, "/schedule/events", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.CreateEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Error, "Invalid date format")
}

func TestCreateEvent_PartialTimeRangeDropsBothBounds(t *testing.T) {
	handler := newTestHandler()

	created := createTestEvent(t, handler, EventDTO{
		Group:          "A",
		Date:           "2024-05-20",
		StageTimeStart: "12:00",
	})

	assert.Empty(t, created.StageTimeStart)
	assert.Empty(t, created.StageTimeEnd)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	handler := newTestHandler()

	body, _ := json.Marshal(EventDTO{Group: "A", Date: "2024-05-20"})
	req := httptest.NewRequest(http.MethodPut, "/schedule/events/999", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"eventId": "999"})
	w := httptest.NewRecorder()
	handler.UpdateEvent(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateEvent(t *testing.T) {
	handler := newTestHandler()
	created := createTestEvent(t, handler, EventDTO{Group: "A", Date: "2024-05-20"})

	created.Note = "door opens 11:30"
	body, _ := json.Marshal(created)
	req := httptest.NewRequest(http.MethodPut, "/schedule/events/1", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"eventId": "1"})
	w := httptest.NewRecorder()
	handler.UpdateEvent(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var updated EventDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, "door opens 11:30", updated.Note)
}

func TestDeleteEvent(t *testing.T) {
	handler := newTestHandler()
	createTestEvent(t, handler, EventDTO{Group: "A", Date: "2024-05-20"})

	req := httptest.NewRequest(http.MethodDelete, "/schedule/events/1", nil)
	req = mux.SetURLVars(req, map[string]string{"eventId": "1"})
	w := httptest.NewRecorder()
	handler.DeleteEvent(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/schedule/events", nil)
	getW := httptest.NewRecorder()
	handler.GetEvents(getW, getReq)

	var events []EventDTO
	assert.NoError(t, json.NewDecoder(getW.Body).Decode(&events))
	assert.Empty(t, events)
}

func TestGetUpcoming(t *testing.T) {
	handler := newTestHandler()
	createTestEvent(t, handler, EventDTO{Group: "A", Date: "2024-05-10"})
	createTestEvent(t, handler, EventDTO{Group: "A", Date: "2024-05-20"})

	// Clock is fixed to 2024-05-15, so only the later event is upcoming.
	req := httptest.NewRequest(http.MethodGet, "/schedule/upcoming", nil)
	w := httptest.NewRecorder()
	handler.GetUpcoming(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var events []EventDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&events))
	assert.Len(t, events, 1)
	assert.Equal(t, "2024-05-20", events[0].Date)
}

func TestGetUpcoming_InvalidDate(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/schedule/upcoming?date=tomorrow", nil)
	w := httptest.NewRecorder()
	handler.GetUpcoming(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCalendar(t *testing.T) {
	handler := newTestHandler()
	createTestEvent(t, handler, EventDTO{Group: "MilkShake", Date: "2024-05-20"})

	req := httptest.NewRequest(http.MethodGet, "/schedule/calendar?month=2024-05", nil)
	w := httptest.NewRecorder()
	handler.GetCalendar(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var weeks [][]Cell
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&weeks))
	assert.NotEmpty(t, weeks)

	var marked, today *Cell
	for _, week := range weeks {
		assert.Len(t, week, 7)
		for i, cell := range week {
			if cell.Date == "2024-05-20" {
				marked = &week[i]
			}
			if cell.Today {
				today = &week[i]
			}
		}
	}
	assert.NotNil(t, marked)
	assert.Equal(t, []string{"MilkShake"}, marked.Groups)
	assert.NotNil(t, today)
	assert.Equal(t, "2024-05-15", today.Date)
}

func TestGetCalendar_InvalidMonth(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/schedule/calendar?month=May", nil)
	w := httptest.NewRecorder()
	handler.GetCalendar(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewModeRoundTrip(t *testing.T) {
	handler := newTestHandler()

	body, _ := json.Marshal(map[string]string{"viewMode": "list"})
	setReq := httptest.NewRequest(http.MethodPut, "/schedule/view-mode", bytes.NewBuffer(body))
	setW := httptest.NewRecorder()
	handler.SetViewMode(setW, setReq)
	assert.Equal(t, http.StatusNoContent, setW.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/schedule/view-mode", nil)
	getW := httptest.NewRecorder()
	handler.GetViewMode(getW, getReq)
	assert.Equal(t, http.StatusOK, getW.Code)

	var response map[string]string
	assert.NoError(t, json.NewDecoder(getW.Body).Decode(&response))
	assert.Equal(t, "list", response["viewMode"])
}
