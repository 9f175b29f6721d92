package renderer

import (
	"github.com/etnz/equity"
)

// EventsMarkdown renders the journal of events, in the given order.
func EventsMarkdown(events []equity.Event) string {
	r := newRenderer()
	r.Printf("# Log\n\n")
	if len(events) == 0 {
		r.Printf("Nothing happened yet.\n")
		return r.String()
	}

	r.Printf("| Date | Action | Ticker | Units | Price | FMV |\n")
	r.Printf("|:---|:---|:---|---:|---:|---:|\n")
	for _, e := range events {
		r.Printf("| %s | %s | %s | %s | %s | %s |\n",
			e.Date,
			e.Action,
			e.Ticker,
			e.Units,
			e.Price,
			cell(e.FMV, !e.FMV.IsZero()),
		)
	}
	return r.String()
}
