package equity

import (
	"iter"
	"maps"
	"slices"
)

// Ledger owns all the lots of equity of a single person, and the journal of
// everything that happened to them.
//
// A Ledger is not safe for concurrent use. Lot selection and splitting read
// and write the same collection, so a service exposing a Ledger must make
// sure that a single goroutine writes to it at a time.
type Ledger struct {
	lifecycles []*Lifecycle // in insertion order
	journal    journal
	vested     map[scheduleKey]Date // last date granted by each schedule
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		lifecycles: make([]*Lifecycle, 0),
		vested:     make(map[scheduleKey]Date),
	}
}

// Grant records a new lot of options.
func (l *Ledger) Grant(ticker string, price Money, units Quantity, on Date) error {
	if ticker == "" {
		return invalid("ticker", "missing")
	}
	if price.IsNegative() {
		return invalid("price", "must not be negative, got %s", price)
	}
	if !units.isWhole() {
		return invalid("units", "must be a positive whole number, got %s", units)
	}
	if on.IsZero() {
		return invalid("date", "missing")
	}

	lot := newLifecycle(ticker, Asset{Price: price, Units: units, Date: on})
	l.lifecycles = append(l.lifecycles, lot)
	l.journal.append(Event{
		Action: GrantOption,
		Ticker: ticker,
		Price:  price,
		Units:  units,
		Date:   on,
		Lot:    lot.id,
	})
	return nil
}

// Lifecycles returns all lots sorted by the date of their latest transition.
// Lots with the same date keep their insertion order.
func (l *Ledger) Lifecycles() []*Lifecycle {
	lots := slices.Clone(l.lifecycles)
	slices.SortStableFunc(lots, func(a, b *Lifecycle) int { return a.date.Compare(b.date) })
	return lots
}

// Events returns all events in chronological order.
func (l *Ledger) Events() []Event { return l.journal.sorted() }

// Tickers returns the sorted list of tickers ever granted.
func (l *Ledger) Tickers() []string {
	set := make(map[string]struct{})
	for _, lot := range l.lifecycles {
		set[lot.ticker] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// lots iterates over the lots of a ticker currently at a given stage, in insertion order.
func (l *Ledger) lots(ticker string, stage Stage) iter.Seq[*Lifecycle] {
	return func(yield func(*Lifecycle) bool) {
		for _, lot := range l.lifecycles {
			if lot.ticker != ticker || lot.stage != stage {
				continue
			}
			if !yield(lot) {
				return
			}
		}
	}
}

// Units returns the number of units of ticker currently held at a stage:
// unexercised options, unsold stock or sold stock.
func (l *Ledger) Units(ticker string, stage Stage) Quantity {
	var total Quantity
	for lot := range l.lots(ticker, stage) {
		total = total.Add(lot.Current().Units)
	}
	return total
}

// Granted returns the total number of options ever granted for ticker.
func (l *Ledger) Granted(ticker string) Quantity {
	var total Quantity
	for _, e := range l.journal.events {
		if e.Action == GrantOption && e.Ticker == ticker {
			total = total.Add(e.Units)
		}
	}
	return total
}
