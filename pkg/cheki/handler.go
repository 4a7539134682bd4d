package cheki

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/oshilog/oshilog/internal/rest"
	"github.com/oshilog/oshilog/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service  *Service
	renderer *CSVRenderer
	clock    utils.Clock
}

type DayDTO struct {
	Date  string `json:"date"`
	Entry Entry  `json:"entry"`
	Total int    `json:"total"`
}

type ReportDTO struct {
	Overview    Overview      `json:"overview"`
	Leaderboard []MemberTotal `json:"leaderboard"`
	Monthly     []MonthRollup `json:"monthly"`
	Events      []EventRecord `json:"events"`
}

func NewHandler(service *Service, renderer *CSVRenderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Board(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(board); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ResetBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateVar(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Day(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(DayDTO{Date: date, Entry: entry, Total: entry.Total()}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateVar(w, r)
	if !ok {
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpsertMember(r.Context(), date, body.Name); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdjustCount(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateVar(w, r)
	if !ok {
		return
	}
	member := mux.Vars(r)["member"]

	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.AdjustCount(r.Context(), date, member, body.Delta); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateVar(w, r)
	if !ok {
		return
	}
	member := mux.Vars(r)["member"]

	if err := h.service.RemoveMember(r.Context(), date, member); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetEventName(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateVar(w, r)
	if !ok {
		return
	}

	var body struct {
		EventName string `json:"eventName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SetEventName(r.Context(), date, body.EventName); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.Suggestions(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(suggestions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Board(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	events := ListEvents(board)
	report := ReportDTO{
		Overview:    BuildOverview(events),
		Leaderboard: MemberLeaderboard(events),
		Monthly:     MonthlyRollup(events),
		Events:      events,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Board(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	csv := h.renderer.Render(ListEvents(board))
	filename := h.renderer.Filename(h.clock)
	log.Debugf("Exporting report as %s", filename)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("could not write CSV response: %v", err)
	}
}

// dateVar extracts and validates the {date} path variable. On failure it
// writes the error response and returns ok=false.
func (h *Handler) dateVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := mux.Vars(r)["date"]
	if _, err := utils.ParseDate(date); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "date must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return "", false
	}
	return date, true
}
