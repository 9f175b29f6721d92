// Package taxee provides US income tax tables from the taxee-tax-statistics
// data set.
//
// The data set has one JSON document per year and region: "federal" or a
// state like "california". Federal tables are found under
// tax_withholding_percentage_method_tables.annual.<status>, state tables
// directly under <status>. Each table has a list of deductions, the first one
// being the standard deduction, and a list of brackets whose rates are in
// percent.
//
// A copy of the 2020 and 2021 federal and california tables is embedded.
// Other regions and years can be read from the original repository with
// NewRemote.
package taxee

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/equity"
	"github.com/shopspring/decimal"
)

// Source opens the taxee document of a year and region.
//
// Open must return an error wrapping fs.ErrNotExist when there is no such
// document.
type Source interface {
	Open(year int, region string) (io.ReadCloser, error)
}

type docKey struct {
	year   int
	region string
}

// Provider implements equity.TaxTableProvider on top of a Source.
// Documents are parsed once and kept in memory. It is safe for concurrent use.
type Provider struct {
	source Source

	mu   sync.Mutex
	docs map[docKey]any
}

var _ equity.TaxTableProvider = (*Provider)(nil)

// New returns a Provider reading documents from source.
func New(source Source) *Provider {
	return &Provider{source: source, docs: make(map[docKey]any)}
}

// NewEmbedded returns a Provider of the embedded tables.
func NewEmbedded() *Provider { return New(Embedded()) }

// Region returns the region name used by taxee for a jurisdiction:
// "New York" is "new_york".
func Region(jurisdiction string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(jurisdiction)), " ", "_")
}

// document returns the parsed document of a year and region.
func (p *Provider) document(year int, region string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := docKey{year, region}
	if doc, ok := p.docs[key]; ok {
		return doc, nil
	}

	r, err := p.source.Open(year, region)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid taxee document %d/%s: %w", year, region, err)
	}
	p.docs[key] = doc
	return doc, nil
}

// TaxTable returns the standard deduction and the brackets for a year,
// jurisdiction and filing status.
//
// Capital gains brackets are only available for equity.Federal.
func (p *Provider) TaxTable(year int, jurisdiction string, status equity.FilingStatus, capitalGains bool) (equity.TaxTable, error) {
	region := Region(jurisdiction)
	if capitalGains && region != equity.Federal {
		return equity.TaxTable{}, fmt.Errorf("capital gains rates only exist for %s, not %s", equity.Federal, jurisdiction)
	}
	unavailable := func(err error) error {
		return &equity.TaxDataUnavailableError{Year: year, Jurisdiction: jurisdiction, Status: status, Err: err}
	}

	doc, err := p.document(year, region)
	if errors.Is(err, fs.ErrNotExist) {
		return equity.TaxTable{}, unavailable(err)
	}
	if err != nil {
		return equity.TaxTable{}, err
	}

	path := "$." + string(status)
	if region == equity.Federal {
		path = "$.tax_withholding_percentage_method_tables.annual." + string(status)
	}
	table, err := jsonpath.Get(path, doc)
	if err != nil {
		return equity.TaxTable{}, unavailable(fmt.Errorf("no %s table", status))
	}

	rateKey := "marginal_rate"
	if capitalGains {
		rateKey = "marginal_capital_gain_rate"
	}
	brackets, err := parseBrackets(table, rateKey)
	if err != nil {
		return equity.TaxTable{}, fmt.Errorf("%d %s %s: %w", year, region, status, err)
	}

	var deduction decimal.Decimal
	if !capitalGains {
		// states without income tax have no deductions.
		if v, err := jsonpath.Get("$.deductions[0].deduction_amount", table); err == nil {
			if deduction, err = toDecimal(v); err != nil {
				return equity.TaxTable{}, fmt.Errorf("%d %s %s deduction: %w", year, region, status, err)
			}
		}
	}
	return equity.TaxTable{Deduction: equity.M(deduction), Brackets: brackets}, nil
}

// parseBrackets reads the income_tax_brackets of a table.
func parseBrackets(table any, rateKey string) (equity.Brackets, error) {
	v, err := jsonpath.Get("$.income_tax_brackets", table)
	if err != nil || v == nil {
		// no income tax.
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("income_tax_brackets is not a list: %T", v)
	}

	brackets := make(equity.Brackets, 0, len(list))
	for i, item := range list {
		level, err := jsonpath.Get("$.bracket", item)
		if err != nil {
			return nil, fmt.Errorf("bracket %d: %w", i, err)
		}
		rate, err := jsonpath.Get("$."+rateKey, item)
		if err != nil {
			return nil, fmt.Errorf("bracket %d: %w", i, err)
		}
		l, err := toDecimal(level)
		if err != nil {
			return nil, fmt.Errorf("bracket %d: %w", i, err)
		}
		r, err := toDecimal(rate)
		if err != nil {
			return nil, fmt.Errorf("bracket %d rate: %w", i, err)
		}
		brackets = append(brackets, equity.TaxBracket{IncomeLevel: equity.M(l), MarginalRate: equity.Percent(r)})
	}
	if err := brackets.Validate(); err != nil {
		return nil, err
	}
	return brackets, nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(n)
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %v", v)
	}
}
