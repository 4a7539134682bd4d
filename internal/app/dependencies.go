package app

import (
	"github.com/oshilog/oshilog/internal/config"
	"github.com/oshilog/oshilog/internal/event_bus"
	"github.com/oshilog/oshilog/internal/storage"
	"github.com/oshilog/oshilog/internal/utils"
	"github.com/oshilog/oshilog/pkg/cheki"
	"github.com/oshilog/oshilog/pkg/countdown"
	"github.com/oshilog/oshilog/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus   *event_bus.EventBus
	Clock utils.Clock

	ChekiRepo     cheki.Repository
	ChekiService  *cheki.Service
	ChekiRenderer *cheki.CSVRenderer
	ChekiHandler  *cheki.Handler

	ScheduleRepo    schedule.Repository
	ScheduleService *schedule.Service
	GridBuilder     *schedule.GridBuilder
	ScheduleHandler *schedule.Handler

	CountdownService *countdown.Service
	CountdownHandler *countdown.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store storage.Store, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.ChekiRepo = cheki.NewRepository(store)
	deps.ChekiService = cheki.NewService(deps.ChekiRepo, deps.Bus)
	deps.ChekiRenderer = cheki.NewCSVRenderer()
	deps.ChekiHandler = cheki.NewHandler(deps.ChekiService, deps.ChekiRenderer, deps.Clock)

	deps.ScheduleRepo = schedule.NewRepository(store, cfg.Schedule.MaxEvents)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, schedule.ClockIDSource{Clock: deps.Clock}, deps.Bus)
	deps.GridBuilder = schedule.NewGridBuilder(cfg.Calendar.WeekStartDay())
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService, deps.GridBuilder, deps.Clock)

	countdownService, err := countdown.NewService(cfg.Countdown.Birthday, deps.Clock)
	if err != nil {
		return nil, err
	}
	deps.CountdownService = countdownService
	deps.CountdownHandler = countdown.NewHandler(deps.CountdownService)

	subscribeChangeLog(deps.Bus)

	return deps, nil
}

// subscribeChangeLog traces every store mutation; useful when chasing what a
// widget actually wrote.
func subscribeChangeLog(bus *event_bus.EventBus) {
	for _, eventType := range []event_bus.EventType{
		event_bus.ChekiEntryUpdated,
		event_bus.ChekiMemberRemoved,
		event_bus.ScheduleEventSaved,
		event_bus.ScheduleEventDeleted,
	} {
		bus.Subscribe(eventType, func(e event_bus.Event) error {
			log.Debugf("%s: %+v", e.Type, e.Data)
			return nil
		})
	}
}
