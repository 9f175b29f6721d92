package equity

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FilingStatus is the filing status of a tax return.
type FilingStatus string

const (
	Single            FilingStatus = "single"
	MarriedJointly    FilingStatus = "married"
	MarriedSeparately FilingStatus = "married_separately"
	HeadOfHousehold   FilingStatus = "head_of_household"

	DefaultFilingStatus = Single
	defaultFilingState  = "california"
)

// ParseFilingStatus parses a filing status, empty means single.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch st := FilingStatus(s); st {
	case "":
		return DefaultFilingStatus, nil
	case Single, MarriedJointly, MarriedSeparately, HeadOfHousehold:
		return st, nil
	default:
		return "", fmt.Errorf("unknown filing status: %q", s)
	}
}

// Filing holds the inputs of one year's tax return.
type Filing struct {
	Year             int
	GrossIncome      Money
	Withholdings     Money // Pre-tax contributions, deducted from the gross income.
	State            string
	Status           FilingStatus
	FederalDeduction *Money // Overrides the federal standard deduction when set.
	StateDeduction   *Money // Overrides the state standard deduction when set.
}

// AGI returns the adjusted gross income.
func (f Filing) AGI() Money { return f.GrossIncome.Sub(f.Withholdings) }

// Filings are the tax returns of a taxpayer, by year.
type Filings map[int]Filing

// Get returns the filing for year.
func (fs Filings) Get(year int) (Filing, error) {
	f, ok := fs[year]
	if !ok {
		return Filing{}, fmt.Errorf("no filing for %d", year)
	}
	return f, nil
}

// Years returns the sorted years with a filing.
func (fs Filings) Years() []int {
	years := make([]int, 0, len(fs))
	for y := range fs {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// amount reads a decimal number from YAML without going through float64.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalYAML(n *yaml.Node) error {
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", n.Line, n.Value, err)
	}
	a.Decimal = d
	return nil
}

func (a amount) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: a.Decimal.String()}, nil
}

// filingDoc is the YAML representation of a Filing.
type filingDoc struct {
	GrossIncome      amount  `yaml:"gross_income"`
	Withholdings     amount  `yaml:"withholdings,omitempty"`
	State            string  `yaml:"state,omitempty"`
	Status           string  `yaml:"status,omitempty"`
	FederalDeduction *amount `yaml:"federal_deduction,omitempty"`
	StateDeduction   *amount `yaml:"state_deduction,omitempty"`
}

func optional(a *amount) *Money {
	if a == nil {
		return nil
	}
	m := M(a.Decimal)
	return &m
}

// DecodeFilings reads filings from a YAML document keyed by year:
//
//	2021:
//	  gross_income: 150000
//	  withholdings: 19200
//	  state: california
//	  status: single
//
// State defaults to california and status to single.
func DecodeFilings(r io.Reader) (Filings, error) {
	var docs map[int]filingDoc
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil {
		if errors.Is(err, io.EOF) {
			return Filings{}, nil
		}
		return nil, fmt.Errorf("could not decode filings: %w", err)
	}

	filings := make(Filings, len(docs))
	for year, doc := range docs {
		status, err := ParseFilingStatus(doc.Status)
		if err != nil {
			return nil, fmt.Errorf("filing %d: %w", year, err)
		}
		state := doc.State
		if state == "" {
			state = defaultFilingState
		}
		f := Filing{
			Year:             year,
			GrossIncome:      M(doc.GrossIncome.Decimal),
			Withholdings:     M(doc.Withholdings.Decimal),
			State:            state,
			Status:           status,
			FederalDeduction: optional(doc.FederalDeduction),
			StateDeduction:   optional(doc.StateDeduction),
		}
		if f.GrossIncome.IsNegative() || f.Withholdings.IsNegative() {
			return nil, fmt.Errorf("filing %d: amounts must not be negative", year)
		}
		filings[year] = f
	}
	return filings, nil
}

// EncodeFilings writes filings in the format read by DecodeFilings.
func EncodeFilings(w io.Writer, filings Filings) error {
	docs := make(map[int]filingDoc, len(filings))
	for year, f := range filings {
		doc := filingDoc{
			GrossIncome:  amount{f.GrossIncome.Decimal()},
			Withholdings: amount{f.Withholdings.Decimal()},
			State:        f.State,
			Status:       string(f.Status),
		}
		if f.FederalDeduction != nil {
			doc.FederalDeduction = &amount{f.FederalDeduction.Decimal()}
		}
		if f.StateDeduction != nil {
			doc.StateDeduction = &amount{f.StateDeduction.Decimal()}
		}
		docs[year] = doc
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("could not encode filings: %w", err)
	}
	return enc.Close()
}
