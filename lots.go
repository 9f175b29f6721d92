package equity

import (
	"slices"
)

// Evolution describes an exercise of options or a sale of stock.
type Evolution struct {
	Action Action          // ExerciseOption or SellStock.
	Ticker string          // Ticker of the lots to evolve.
	Units  Quantity        // Units requested.
	Date   Date            // Date of the operation, today if zero.
	Price  Money           // Sale price per unit. Ignored on exercise, the strike price becomes the cost basis.
	FMV    Money           // Fair market value per unit on Date, if known.
	Policy SelectionPolicy // Order in which lots are consumed.
}

// Evolve advances lots from one stage to the next: options to stock for an
// exercise, stock to sale for a sale.
//
// Lots are consumed in the order given by the Policy. A lot larger than what
// remains to evolve is split: one part evolves, the other stays behind as a
// new lot in the ledger.
//
// If fewer units are available than requested, everything available evolves
// and no error is returned. Evolve returns the units that actually evolved,
// callers compare it to the request to detect a shortfall.
func (l *Ledger) Evolve(e Evolution) (Quantity, error) {
	source, _, err := e.Action.stages()
	if err != nil {
		return Quantity{}, err
	}
	if e.Ticker == "" {
		return Quantity{}, invalid("ticker", "missing")
	}
	if !e.Units.isWhole() {
		return Quantity{}, invalid("units", "must be a positive whole number, got %s", e.Units)
	}
	if e.Price.IsNegative() {
		return Quantity{}, invalid("price", "must not be negative, got %s", e.Price)
	}
	if e.FMV.IsNegative() {
		return Quantity{}, invalid("fmv", "must not be negative, got %s", e.FMV)
	}
	on := e.Date
	if on.IsZero() {
		on = Today()
	}

	evolvable := slices.Collect(l.lots(e.Ticker, source))
	switch e.Policy {
	case ByDate:
		slices.SortStableFunc(evolvable, func(a, b *Lifecycle) int {
			return a.Current().Date.Compare(b.Current().Date)
		})
	case ByPrice:
		slices.SortStableFunc(evolvable, func(a, b *Lifecycle) int {
			// highest price first
			return b.Current().Price.Decimal().Cmp(a.Current().Price.Decimal())
		})
	default:
		return Quantity{}, invalid("policy", "unknown selection policy %v", e.Policy)
	}

	remaining := e.Units
	for _, lot := range evolvable {
		if remaining.IsZero() {
			break
		}
		src := lot.Current()
		price := e.Price
		if e.Action == ExerciseOption {
			price = src.Price
		}

		units := src.Units
		if remaining.LessThan(units) {
			// Only part of this lot evolves.
			rest := lot.split(remaining)
			l.lifecycles = append(l.lifecycles, rest)
			units = remaining
		}

		lot.advance(Asset{Price: price, Units: units, Date: on, FMV: e.FMV})
		remaining = remaining.Sub(units)
		l.journal.append(Event{
			Action: e.Action,
			Ticker: e.Ticker,
			Price:  price,
			Units:  units,
			Date:   on,
			FMV:    e.FMV,
			Lot:    lot.id,
		})
	}
	return e.Units.Sub(remaining), nil
}
