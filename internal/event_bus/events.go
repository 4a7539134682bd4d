package event_bus

const (
	ChekiEntryUpdated    EventType = "cheki.entry.updated"
	ChekiMemberRemoved   EventType = "cheki.member.removed"
	ScheduleEventSaved   EventType = "schedule.event.saved"
	ScheduleEventDeleted EventType = "schedule.event.deleted"
)

// ChekiEntryChange describes a mutation of one day's tally.
type ChekiEntryChange struct {
	Date   string
	Member string
	Count  int
}

// ScheduleEventChange describes a saved or deleted schedule event.
type ScheduleEventChange struct {
	ID    int64
	Group string
	Date  string
}
