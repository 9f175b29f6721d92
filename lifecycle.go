package equity

import (
	"github.com/google/uuid"
)

// Asset is a quantity of value held at one stage of a lot.
type Asset struct {
	Price Money    // Price per unit: strike price for options, cost basis for stock, sale price for a sale.
	Units Quantity // Units held at this stage.
	Date  Date     // Date the stage was reached.
	FMV   Money    // Fair market value per unit on Date, zero when unknown.
}

// FairMarketValue returns the fair market value per unit, if known.
func (a Asset) FairMarketValue() (Money, bool) { return a.FMV, !a.FMV.IsZero() }

// Value returns Price * Units.
func (a Asset) Value() Money { return a.Price.Mul(a.Units) }

// Lifecycle is a single traceable lot of equity moving through the
// option, stock and sale stages.
//
// A Lifecycle is owned by the Ledger that created it, it is only changed
// through the Ledger's operations.
type Lifecycle struct {
	id     uuid.UUID
	ticker string
	stage  Stage
	option Asset
	stock  Asset // set when stage >= Exercised
	sale   Asset // set when stage == Sold
	date   Date  // date of the most recent stage transition
}

func newLifecycle(ticker string, option Asset) *Lifecycle {
	return &Lifecycle{
		id:     uuid.New(),
		ticker: ticker,
		stage:  Granted,
		option: option,
		date:   option.Date,
	}
}

func (l *Lifecycle) ID() uuid.UUID  { return l.id }
func (l *Lifecycle) Ticker() string { return l.ticker }
func (l *Lifecycle) Stage() Stage   { return l.stage }
func (l *Lifecycle) Date() Date     { return l.date }
func (l *Lifecycle) Option() Asset  { return l.option }

// Stock returns the stock stage, if the option has been exercised.
func (l *Lifecycle) Stock() (Asset, bool) { return l.Asset(Exercised) }

// Sale returns the sale stage, if the stock has been sold.
func (l *Lifecycle) Sale() (Asset, bool) { return l.Asset(Sold) }

// Asset returns the asset held at stage s, if the lot has reached it.
func (l *Lifecycle) Asset(s Stage) (Asset, bool) {
	if s > l.stage {
		return Asset{}, false
	}
	switch s {
	case Granted:
		return l.option, true
	case Exercised:
		return l.stock, true
	case Sold:
		return l.sale, true
	}
	return Asset{}, false
}

// Current returns the asset at the lot's current stage.
func (l *Lifecycle) Current() Asset {
	a, _ := l.Asset(l.stage)
	return a
}

// advance moves the lot to the next stage.
func (l *Lifecycle) advance(a Asset) {
	switch l.stage {
	case Granted:
		l.stock = a
	case Exercised:
		l.sale = a
	default:
		panic("cannot advance a sold lot")
	}
	l.stage++
	l.date = a.Date
}

// split shrinks l to units and returns a new lot holding the rest.
//
// Every stage reached so far is split the same way, so both lots keep the
// same history. The returned lot has a new identity.
func (l *Lifecycle) split(units Quantity) *Lifecycle {
	rest := *l
	rest.id = uuid.New()

	base := l.option.Units
	l.option.Units, rest.option.Units = units, base.Sub(units)
	if l.stage >= Exercised {
		l.stock.Units, rest.stock.Units = units, base.Sub(units)
	}
	return &rest
}

// HoldingDays returns the days from the option grant, and from the exercise,
// up to the sale. ok is false if the lot is not sold.
func (l *Lifecycle) HoldingDays() (sinceGrant, sinceExercise int, ok bool) {
	if l.stage != Sold {
		return 0, 0, false
	}
	return l.sale.Date.DaysSince(l.option.Date), l.sale.Date.DaysSince(l.stock.Date), true
}

// IsLongTerm reports whether the sale qualifies for long term capital gains:
// the option was granted at least two years before the sale, and exercised at
// least one year before it.
func (l *Lifecycle) IsLongTerm() bool {
	sinceGrant, sinceExercise, ok := l.HoldingDays()
	return ok && sinceGrant >= 730 && sinceExercise >= 365
}

// Gain returns the sale proceeds minus the exercise cost, zero if not sold.
func (l *Lifecycle) Gain() Money {
	if l.stage != Sold {
		return Money{}
	}
	return l.sale.Value().Sub(l.stock.Value())
}

// Spread returns the exercise spread: (fair market value - strike price) * units.
// It is zero if the lot has not been exercised or if the fair market value
// at exercise is unknown.
func (l *Lifecycle) Spread() Money {
	if l.stage < Exercised {
		return Money{}
	}
	fmv, ok := l.stock.FairMarketValue()
	if !ok {
		return Money{}
	}
	return fmv.Mul(l.stock.Units).Sub(l.option.Price.Mul(l.stock.Units))
}
