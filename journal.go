package equity

import (
	"slices"

	"github.com/google/uuid"
)

// Event is an immutable record of something that happened to a lot.
type Event struct {
	Action Action
	Ticker string
	Price  Money    // Strike price for grants and exercises, sale price for sales.
	Units  Quantity // Units actually granted, exercised or sold.
	Date   Date
	FMV    Money     // Fair market value per unit, zero when unknown.
	Lot    uuid.UUID // Lifecycle the event applies to.
}

// journal is the append-only list of events.
type journal struct {
	events []Event
}

func (j *journal) append(e Event) { j.events = append(j.events, e) }

// sorted returns the events in chronological order. Events on the same day
// keep the order they were recorded in.
func (j *journal) sorted() []Event {
	events := slices.Clone(j.events)
	slices.SortStableFunc(events, func(a, b Event) int { return a.Date.Compare(b.Date) })
	return events
}
