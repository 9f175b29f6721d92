package equity

import (
	"errors"
	"testing"
)

// jeff is the ticker used by the fixtures.
const jeff = "JEFF"

// jeffSchedule vests 8000 options at 2.18 over four years with a one year cliff.
func jeffSchedule(cutoff Date) Schedule {
	return Schedule{
		Ticker: jeff,
		Price:  M(2.18),
		Units:  Q(8000),
		Begin:  NewDate(2019, 1, 30),
		Cliff:  NewDate(2020, 1, 30),
		Cutoff: cutoff,
		Months: 48,
	}
}

// fullyVested returns a ledger where the whole jeffSchedule has vested.
func fullyVested(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	if _, err := l.GrantSchedule(jeffSchedule(NewDate(2023, 1, 30))); err != nil {
		t.Fatalf("GrantSchedule() unexpected error: %v", err)
	}
	return l
}

func mustGrant(t *testing.T, l *Ledger, ticker string, price float64, units int, on Date) {
	t.Helper()
	if err := l.Grant(ticker, M(price), Q(units), on); err != nil {
		t.Fatalf("Grant(%s, %v, %d, %s) unexpected error: %v", ticker, price, units, on, err)
	}
}

func mustEvolve(t *testing.T, l *Ledger, e Evolution) Quantity {
	t.Helper()
	done, err := l.Evolve(e)
	if err != nil {
		t.Fatalf("Evolve(%v %s %s) unexpected error: %v", e.Action, e.Units, e.Ticker, err)
	}
	return done
}

// tableKey identifies a table in fakeTables.
type tableKey struct {
	year         int
	jurisdiction string
	capitalGains bool
}

// fakeTables is an in memory TaxTableProvider, filing status is ignored.
type fakeTables map[tableKey]TaxTable

func (f fakeTables) TaxTable(year int, jurisdiction string, status FilingStatus, capitalGains bool) (TaxTable, error) {
	t, ok := f[tableKey{year, jurisdiction, capitalGains}]
	if !ok {
		return TaxTable{}, &TaxDataUnavailableError{Year: year, Jurisdiction: jurisdiction, Status: status, Err: errors.New("not in fake")}
	}
	return t, nil
}

func flat(rate float64) Brackets {
	return Brackets{{IncomeLevel: M(0), MarginalRate: R(rate)}}
}

// flatTables are simple 2021 tables: 10% federal after a 12550 deduction,
// 5% in california after a 5000 deduction, 15% on long term gains.
func flatTables() fakeTables {
	return fakeTables{
		{2021, Federal, false}:      {Deduction: M(12550), Brackets: flat(0.10)},
		{2021, "california", false}: {Deduction: M(5000), Brackets: flat(0.05)},
		{2021, Federal, true}:       {Brackets: flat(0.15)},
	}
}

// filing2021 has an adjusted gross income of 130800.
func filing2021() Filing {
	return Filing{
		Year:         2021,
		GrossIncome:  M(150000),
		Withholdings: M(19200),
		State:        "california",
		Status:       Single,
	}
}

func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got.Decimal(), want.Decimal())
	}
}

func assertUnits(t *testing.T, name string, got, want Quantity) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
