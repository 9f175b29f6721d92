package equity

import (
	"errors"
	"fmt"
)

// Federal is the jurisdiction of federal taxes.
const Federal = "federal"

// TaxTable is the standard deduction and the brackets of a jurisdiction for
// a year and filing status.
type TaxTable struct {
	Deduction Money
	Brackets  Brackets
}

// TaxTableProvider looks up tax tables.
//
// TaxTable must return a *TaxDataUnavailableError when the year or the
// jurisdiction is unknown. capitalGains selects the long term capital gains
// rates instead of the ordinary income rates, they only exist for Federal.
type TaxTableProvider interface {
	TaxTable(year int, jurisdiction string, status FilingStatus, capitalGains bool) (TaxTable, error)
}

// AMTRules are the parameters of the alternative minimum tax.
type AMTRules struct {
	Exemption Money
	Rate      Rate
}

// DefaultAMT is the exemption and flat rate used for the alternative minimum tax.
var DefaultAMT = AMTRules{Exemption: M(72900), Rate: R(0.26)}

// PayrollRules are the parameters of payroll taxes.
type PayrollRules struct {
	SocialSecurity Brackets // Applied to the gross income, the wage base is a zero rate bracket.
	Medicare       Rate
}

// DefaultPayroll are the 2021 social security and medicare rates.
var DefaultPayroll = PayrollRules{
	SocialSecurity: Brackets{
		{IncomeLevel: M(0), MarginalRate: R(0.062)},
		{IncomeLevel: M(142800), MarginalRate: R(0)},
	},
	Medicare: R(0.0145),
}

// Calculator computes the taxes of a year from a Filing and the lots of a
// Ledger.
type Calculator struct {
	Tables  TaxTableProvider
	AMT     AMTRules
	Payroll PayrollRules
}

// NewCalculator returns a Calculator with the default AMT and payroll rules.
func NewCalculator(tables TaxTableProvider) *Calculator {
	return &Calculator{Tables: tables, AMT: DefaultAMT, Payroll: DefaultPayroll}
}

// IncomeTax is the income tax split by jurisdiction.
type IncomeTax struct {
	Federal Money
	State   Money
}

// Total returns the federal plus the state tax.
func (t IncomeTax) Total() Money { return t.Federal.Add(t.State) }

// tables returns the tax tables for a filing, with the filing's deductions
// overriding the standard ones.
func (c *Calculator) tables(f Filing) (federal, state TaxTable, err error) {
	if c.Tables == nil {
		return federal, state, errors.New("no tax table provider")
	}
	federal, err = c.Tables.TaxTable(f.Year, Federal, f.Status, false)
	if err != nil {
		return federal, state, fmt.Errorf("federal tax table: %w", err)
	}
	state, err = c.Tables.TaxTable(f.Year, f.State, f.Status, false)
	if err != nil {
		return federal, state, fmt.Errorf("%s tax table: %w", f.State, err)
	}
	if f.FederalDeduction != nil {
		federal.Deduction = *f.FederalDeduction
	}
	if f.StateDeduction != nil {
		state.Deduction = *f.StateDeduction
	}
	return federal, state, nil
}

// IncomeTax returns the ordinary income tax of a filing.
func (c *Calculator) IncomeTax(f Filing) (IncomeTax, error) {
	federal, state, err := c.tables(f)
	if err != nil {
		return IncomeTax{}, err
	}
	agi := f.AGI()
	return IncomeTax{
		Federal: federal.Brackets.Tax(agi.Sub(federal.Deduction)),
		State:   state.Brackets.Tax(agi.Sub(state.Deduction)),
	}, nil
}

// IncomeTaxOnGains returns the additional income tax due when gains are
// added on top of the filing's ordinary income.
func (c *Calculator) IncomeTaxOnGains(f Filing, gains Money) (IncomeTax, error) {
	federal, state, err := c.tables(f)
	if err != nil {
		return IncomeTax{}, err
	}
	fed := f.AGI().Sub(federal.Deduction)
	st := f.AGI().Sub(state.Deduction)
	return IncomeTax{
		Federal: federal.Brackets.Tax(fed.Add(gains)).Sub(federal.Brackets.Tax(fed)).NonNegative(),
		State:   state.Brackets.Tax(st.Add(gains)).Sub(state.Brackets.Tax(st)).NonNegative(),
	}, nil
}

// CapitalGainsTax is the tax on the stock sold during a year.
type CapitalGainsTax struct {
	ShortTermGains Money
	LongTermGains  Money
	ShortTerm      IncomeTax // Short term gains are taxed as ordinary income.
	LongTerm       Money     // Federal long term capital gains tax.
}

// Total returns the short and long term taxes.
func (t CapitalGainsTax) Total() Money { return t.ShortTerm.Total().Add(t.LongTerm) }

// CapitalGainsTax returns the tax on the lots sold during the filing's year.
//
// A sale is long term when the option was granted at least two years before,
// and exercised at least one year before. Short term gains are added to the
// ordinary income, long term gains are taxed at the federal capital gains
// rates only.
func (c *Calculator) CapitalGainsTax(f Filing, lots []*Lifecycle) (CapitalGainsTax, error) {
	var t CapitalGainsTax
	for _, lot := range lots {
		sale, ok := lot.Sale()
		if !ok || sale.Date.Year() != f.Year {
			continue
		}
		if lot.IsLongTerm() {
			t.LongTermGains = t.LongTermGains.Add(lot.Gain())
		} else {
			t.ShortTermGains = t.ShortTermGains.Add(lot.Gain())
		}
	}

	var err error
	t.ShortTerm, err = c.IncomeTaxOnGains(f, t.ShortTermGains)
	if err != nil {
		return CapitalGainsTax{}, err
	}
	table, err := c.Tables.TaxTable(f.Year, Federal, f.Status, true)
	if err != nil {
		return CapitalGainsTax{}, fmt.Errorf("federal capital gains table: %w", err)
	}
	t.LongTerm = table.Brackets.Tax(t.LongTermGains)
	return t, nil
}

// AMT is the alternative minimum tax of a year.
type AMT struct {
	Spread    Money // Exercise spread of the options exercised during the year.
	Base      Money // AGI + Spread - exemption.
	Tentative Money // Tentative minimum tax.
	Federal   Money // Ordinary federal income tax.
	Owed      Money // Tentative minimum tax in excess of the federal tax.
}

// AMTTax returns the alternative minimum tax caused by the options exercised
// during the filing's year. Lots exercised without a known fair market value
// add no spread.
func (c *Calculator) AMTTax(f Filing, lots []*Lifecycle) (AMT, error) {
	var t AMT
	for _, lot := range lots {
		stock, ok := lot.Stock()
		if !ok || stock.Date.Year() != f.Year {
			continue
		}
		t.Spread = t.Spread.Add(lot.Spread())
	}
	income, err := c.IncomeTax(f)
	if err != nil {
		return AMT{}, err
	}
	t.Federal = income.Federal
	t.Base = f.AGI().Add(t.Spread).Sub(c.AMT.Exemption)
	t.Tentative = t.Base.MulRate(c.AMT.Rate).NonNegative()
	t.Owed = t.Tentative.Sub(t.Federal).NonNegative()
	return t, nil
}

// PayrollTax is the social security and medicare tax withheld on wages.
type PayrollTax struct {
	SocialSecurity Money
	Medicare       Money
}

// Total returns the social security plus the medicare tax.
func (t PayrollTax) Total() Money { return t.SocialSecurity.Add(t.Medicare) }

// PayrollTax returns the payroll taxes on the filing's gross income.
func (c *Calculator) PayrollTax(f Filing) PayrollTax {
	return PayrollTax{
		SocialSecurity: c.Payroll.SocialSecurity.Tax(f.GrossIncome),
		Medicare:       f.GrossIncome.MulRate(c.Payroll.Medicare).NonNegative(),
	}
}

// TaxReport gathers all the taxes of a year.
type TaxReport struct {
	Filing       Filing
	Income       IncomeTax
	CapitalGains CapitalGainsTax
	AMT          AMT
	Payroll      PayrollTax
}

// Total returns the sum of all the taxes in the report.
func (r TaxReport) Total() Money {
	return r.Income.Total().
		Add(r.CapitalGains.Total()).
		Add(r.AMT.Owed).
		Add(r.Payroll.Total())
}

// Report computes every tax of the filing's year.
func (c *Calculator) Report(f Filing, lots []*Lifecycle) (*TaxReport, error) {
	var errs []error
	r := &TaxReport{Filing: f, Payroll: c.PayrollTax(f)}

	var err error
	if r.Income, err = c.IncomeTax(f); err != nil {
		errs = append(errs, fmt.Errorf("income tax: %w", err))
	}
	if r.CapitalGains, err = c.CapitalGainsTax(f, lots); err != nil {
		errs = append(errs, fmt.Errorf("capital gains tax: %w", err))
	}
	if r.AMT, err = c.AMTTax(f, lots); err != nil {
		errs = append(errs, fmt.Errorf("alternative minimum tax: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}
