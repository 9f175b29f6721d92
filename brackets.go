package equity

import "fmt"

// TaxBracket is the marginal rate applied to the income above IncomeLevel,
// up to the next bracket.
type TaxBracket struct {
	IncomeLevel  Money
	MarginalRate Rate
}

// Brackets is a progressive tax table, sorted by increasing IncomeLevel.
type Brackets []TaxBracket

// Validate checks that brackets are strictly increasing and rates are
// within [0, 1].
func (b Brackets) Validate() error {
	for i, br := range b {
		if !br.MarginalRate.valid() {
			return fmt.Errorf("bracket %d: rate %s is out of [0, 1]", i, br.MarginalRate)
		}
		if i > 0 && !b[i-1].IncomeLevel.LessThan(br.IncomeLevel) {
			return fmt.Errorf("bracket %d: income level %s is not above %s", i, br.IncomeLevel, b[i-1].IncomeLevel)
		}
	}
	return nil
}

// Tax returns the tax due on income.
//
// Each bracket taxes the band of income up to the next bracket's level, the
// last bracket taxes everything left. Zero or negative income pays no tax.
func (b Brackets) Tax(income Money) Money {
	var tax Money
	if !income.IsPositive() || len(b) == 0 {
		return tax
	}

	// the first bracket's level is not subtracted: its band is the distance
	// to the next level, whatever the floor.
	remaining := income
	for i, br := range b {
		if !remaining.IsPositive() {
			break
		}
		portion := remaining
		if i < len(b)-1 {
			portion = remaining.Min(b[i+1].IncomeLevel.Sub(br.IncomeLevel))
		}
		tax = tax.Add(portion.MulRate(br.MarginalRate))
		remaining = remaining.Sub(portion)
	}
	return tax.NonNegative()
}

// ApplyBrackets returns the tax due on taxable income.
func ApplyBrackets(income Money, brackets Brackets) Money { return brackets.Tax(income) }
