package app

import (
	"github.com/gorilla/mux"
	"github.com/oshilog/oshilog/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Cheki tally
	r.HandleFunc("/api/cheki/board", deps.ChekiHandler.GetBoard).Methods("GET")
	r.HandleFunc("/api/cheki/board", deps.ChekiHandler.ResetBoard).Methods("DELETE")
	r.HandleFunc("/api/cheki/day/{date}", deps.ChekiHandler.GetDay).Methods("GET")
	r.HandleFunc("/api/cheki/day/{date}/member", deps.ChekiHandler.AddMember).Methods("POST")
	r.HandleFunc("/api/cheki/day/{date}/member/{member}", deps.ChekiHandler.AdjustCount).Methods("PATCH")
	r.HandleFunc("/api/cheki/day/{date}/member/{member}", deps.ChekiHandler.RemoveMember).Methods("DELETE")
	r.HandleFunc("/api/cheki/day/{date}/event-name", deps.ChekiHandler.SetEventName).Methods("PUT")
	r.HandleFunc("/api/cheki/members", deps.ChekiHandler.GetSuggestions).Methods("GET")

	// Cheki report
	r.HandleFunc("/api/cheki/report", deps.ChekiHandler.GetReport).Methods("GET")
	r.HandleFunc("/api/cheki/report/csv", deps.ChekiHandler.ExportCSV).Methods("GET")

	// Schedule
	r.HandleFunc("/api/schedule/event", deps.ScheduleHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/schedule/event", deps.ScheduleHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/schedule/event/{eventId}", deps.ScheduleHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/schedule/event/{eventId}", deps.ScheduleHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/schedule/upcoming", deps.ScheduleHandler.GetUpcoming).Methods("GET")
	r.HandleFunc("/api/schedule/calendar", deps.ScheduleHandler.GetCalendar).Methods("GET")
	r.HandleFunc("/api/schedule/view-mode", deps.ScheduleHandler.GetViewMode).Methods("GET")
	r.HandleFunc("/api/schedule/view-mode", deps.ScheduleHandler.SetViewMode).Methods("PUT")

	// Birthday countdown
	r.HandleFunc("/api/countdown", deps.CountdownHandler.GetCountdown).Methods("GET")

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
