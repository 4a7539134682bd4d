package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/oshilog/oshilog/internal/rest"
	"github.com/oshilog/oshilog/internal/utils"
)

type Handler struct {
	service *Service
	grid    *GridBuilder
	clock   utils.Clock
}

// EventDTO is the UI-facing event shape: time ranges travel as separate
// start/end bounds and are folded into the stored form on save.
type EventDTO struct {
	ID             int64  `json:"id,omitempty"`
	Group          string `json:"group"`
	Date           string `json:"date"`
	StageTimeStart string `json:"stageTimeStart,omitempty"`
	StageTimeEnd   string `json:"stageTimeEnd,omitempty"`
	ChekiTimeStart string `json:"chekiTimeStart,omitempty"`
	ChekiTimeEnd   string `json:"chekiTimeEnd,omitempty"`
	Note           string `json:"note,omitempty"`
}

func NewHandler(service *Service, grid *GridBuilder, clock utils.Clock) *Handler {
	return &Handler{service: service, grid: grid, clock: clock}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEventDTOs(w, http.StatusOK, events)
}

// GetUpcoming serves the list-view feed. With ?date= it shows exactly that
// day; otherwise everything from today on.
func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	selectedDate := r.URL.Query().Get("date")
	if selectedDate != "" {
		if _, err := utils.ParseDate(selectedDate); err != nil {
			writeBadDate(w)
			return
		}
	}

	events, err := h.service.Upcoming(r.Context(), utils.Today(h.clock), selectedDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEventDTOs(w, http.StatusOK, events)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := utils.ParseDate(dto.Date); err != nil {
		writeBadDate(w)
		return
	}

	created, err := h.service.Create(r.Context(), dtoToEvent(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := utils.ParseDate(dto.Date); err != nil {
		writeBadDate(w)
		return
	}

	event := dtoToEvent(dto)
	event.ID = id
	updated, err := h.service.Update(r.Context(), event)
	if errors.Is(err, ErrEventNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCalendar serves the month grid, defaulting to the current month.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	month := h.clock.Now()
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := utils.ParseMonth(monthStr)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid month format",
				Details: "month must be in YYYY-MM format",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		month = parsed
	}

	events, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	weeks := h.grid.Build(month, EventsByDate(events), utils.Today(h.clock))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(weeks); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetViewMode(w http.ResponseWriter, r *http.Request) {
	mode, err := h.service.ViewMode(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"viewMode": mode}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ViewMode string `json:"viewMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SetViewMode(r.Context(), body.ViewMode); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func eventToDTO(e Event) EventDTO {
	stageStart, stageEnd := DecodeTimeRange(e.StageTime)
	chekiStart, chekiEnd := DecodeTimeRange(e.ChekiTime)
	return EventDTO{
		ID:             e.ID,
		Group:          e.Group,
		Date:           e.Date,
		StageTimeStart: stageStart,
		StageTimeEnd:   stageEnd,
		ChekiTimeStart: chekiStart,
		ChekiTimeEnd:   chekiEnd,
		Note:           e.Note,
	}
}

func dtoToEvent(dto EventDTO) Event {
	return Event{
		ID:        dto.ID,
		Group:     dto.Group,
		Date:      dto.Date,
		StageTime: EncodeTimeRange(dto.StageTimeStart, dto.StageTimeEnd),
		ChekiTime: EncodeTimeRange(dto.ChekiTimeStart, dto.ChekiTimeEnd),
		Note:      dto.Note,
	}
}

func writeEventDTOs(w http.ResponseWriter, status int, events []Event) {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeBadDate(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   "Invalid date format",
		Details: "date must be in YYYY-MM-DD format",
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
