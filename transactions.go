package equity

import (
	"fmt"
)

// CommandType is a typed string for identifying ledger commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdGrant    CommandType = "grant"
	CmdVest     CommandType = "vest"
	CmdExercise CommandType = "exercise"
	CmdSell     CommandType = "sell"
)

// Transaction is a command recorded in the ledger file. Replaying all the
// transactions in date order rebuilds the Ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "grant", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	// Apply performs the transaction on the ledger and returns the units it
	// granted, exercised or sold.
	Apply(ledger *Ledger) (Quantity, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "grant", "sell").
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional note for the transaction.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// Rationale returns the memo associated with the transaction.
func (t baseCmd) Rationale() string { return t.Memo }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Grant is a single grant of options.
type Grant struct {
	baseCmd
	Ticker string   `json:"ticker"`
	Units  Quantity `json:"units"`
	Price  Money    `json:"price"` // Strike price.
}

// NewGrant creates a new Grant transaction.
func NewGrant(day Date, memo, ticker string, units Quantity, price Money) Grant {
	return Grant{
		baseCmd: baseCmd{Command: CmdGrant, Date: day, Memo: memo},
		Ticker:  ticker,
		Units:   units,
		Price:   price,
	}
}

// MarshalJSON implements the json.Marshaler interface for Grant.
func (t Grant) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	w.Append("units", t.Units)
	w.Append("price", t.Price)
	return w.MarshalJSON()
}

func (t Grant) Apply(ledger *Ledger) (Quantity, error) {
	if err := ledger.Grant(t.Ticker, t.Price, t.Units, t.Date); err != nil {
		return Quantity{}, fmt.Errorf("on %s, cannot grant %s %s: %w", t.Date, t.Units, t.Ticker, err)
	}
	return t.Units, nil
}

// Vest grants the options of a vesting schedule up to its date.
//
// The same schedule can be recorded again later with a more recent date, only
// the units vested in between are granted.
type Vest struct {
	baseCmd
	Ticker string   `json:"ticker"`
	Units  Quantity `json:"units"` // Total units of the schedule.
	Price  Money    `json:"price"`
	Begin  Date     `json:"begin"`
	Cliff  Date     `json:"cliff"`
	Months int      `json:"months,omitempty"`
}

// NewVest creates a new Vest transaction for the schedule s, up to the date
// day.
func NewVest(day Date, memo string, s Schedule) Vest {
	return Vest{
		baseCmd: baseCmd{Command: CmdVest, Date: day, Memo: memo},
		Ticker:  s.Ticker,
		Units:   s.Units,
		Price:   s.Price,
		Begin:   s.Begin,
		Cliff:   s.Cliff,
		Months:  s.Months,
	}
}

// Schedule returns the vesting schedule up to the transaction's date.
func (t Vest) Schedule() Schedule {
	return Schedule{
		Ticker: t.Ticker,
		Price:  t.Price,
		Units:  t.Units,
		Begin:  t.Begin,
		Cliff:  t.Cliff,
		Cutoff: t.Date,
		Months: t.Months,
	}
}

// MarshalJSON implements the json.Marshaler interface for Vest.
func (t Vest) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	w.Append("units", t.Units)
	w.Append("price", t.Price)
	w.Append("begin", t.Begin)
	w.Optional("cliff", t.Cliff)
	w.Optional("months", t.Months)
	return w.MarshalJSON()
}

func (t Vest) Apply(ledger *Ledger) (Quantity, error) {
	units, err := ledger.GrantSchedule(t.Schedule())
	if err != nil {
		return units, fmt.Errorf("on %s, cannot vest %s: %w", t.Date, t.Ticker, err)
	}
	return units, nil
}

// Exercise exercises options into stock.
type Exercise struct {
	baseCmd
	Ticker string          `json:"ticker"`
	Units  Quantity        `json:"units"`
	FMV    Money           `json:"fmv"`    // Fair market value per unit, zero if unknown.
	Policy SelectionPolicy `json:"policy"` // Order in which option lots are exercised.
}

// NewExercise creates a new Exercise transaction.
func NewExercise(day Date, memo, ticker string, units Quantity, fmv Money, policy SelectionPolicy) Exercise {
	return Exercise{
		baseCmd: baseCmd{Command: CmdExercise, Date: day, Memo: memo},
		Ticker:  ticker,
		Units:   units,
		FMV:     fmv,
		Policy:  policy,
	}
}

// MarshalJSON implements the json.Marshaler interface for Exercise.
func (t Exercise) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	w.Append("units", t.Units)
	if !t.FMV.IsZero() {
		w.Append("fmv", t.FMV)
	}
	w.Optional("policy", t.Policy)
	return w.MarshalJSON()
}

func (t Exercise) Apply(ledger *Ledger) (Quantity, error) {
	units, err := ledger.Evolve(Evolution{
		Action: ExerciseOption,
		Ticker: t.Ticker,
		Units:  t.Units,
		Date:   t.Date,
		FMV:    t.FMV,
		Policy: t.Policy,
	})
	if err != nil {
		return units, fmt.Errorf("on %s, cannot exercise %s %s: %w", t.Date, t.Units, t.Ticker, err)
	}
	return units, nil
}

// Sell sells stock.
type Sell struct {
	baseCmd
	Ticker string          `json:"ticker"`
	Units  Quantity        `json:"units"`
	Price  Money           `json:"price"`  // Sale price per unit.
	Policy SelectionPolicy `json:"policy"` // Order in which stock lots are sold.
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, memo, ticker string, units Quantity, price Money, policy SelectionPolicy) Sell {
	return Sell{
		baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo},
		Ticker:  ticker,
		Units:   units,
		Price:   price,
		Policy:  policy,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	w.Append("units", t.Units)
	w.Append("price", t.Price)
	w.Optional("policy", t.Policy)
	return w.MarshalJSON()
}

func (t Sell) Apply(ledger *Ledger) (Quantity, error) {
	units, err := ledger.Evolve(Evolution{
		Action: SellStock,
		Ticker: t.Ticker,
		Units:  t.Units,
		Date:   t.Date,
		Price:  t.Price,
		Policy: t.Policy,
	})
	if err != nil {
		return units, fmt.Errorf("on %s, cannot sell %s %s: %w", t.Date, t.Units, t.Ticker, err)
	}
	return units, nil
}
