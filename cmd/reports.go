package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/equity"
	"github.com/etnz/equity/renderer"
	"github.com/google/subcommands"
)

// --- Lots Command ---

type lotsCmd struct {
	ticker string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list every lot of options and stock" }
func (*lotsCmd) Usage() string {
	return `eqt lots [-t <ticker>]

  Lists the lots with their stage (option, stock or sold), the grant, the
  exercise and the sale.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only show the lots of this ticker")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var lots []*equity.Lifecycle
	for _, lot := range ledger.Lifecycles() {
		if c.ticker == "" || lot.Ticker() == c.ticker {
			lots = append(lots, lot)
		}
	}
	printMarkdown(renderer.LifecyclesMarkdown(lots))
	return subcommands.ExitSuccess
}

// --- Log Command ---

type logCmd struct {
	ticker string
	year   int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "show the grants, exercises and sales" }
func (*logCmd) Usage() string {
	return `eqt log [-t <ticker>] [-y <year>]

  Shows every grant, exercise and sale in chronological order. Partial
  exercises and sales appear once per lot.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only show the events of this ticker")
	f.IntVar(&c.year, "y", 0, "Only show the events of this year")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var events []equity.Event
	for _, e := range ledger.Events() {
		if c.ticker != "" && e.Ticker != c.ticker {
			continue
		}
		if c.year != 0 && e.Date.Year() != c.year {
			continue
		}
		events = append(events, e)
	}
	printMarkdown(renderer.EventsMarkdown(events))
	return subcommands.ExitSuccess
}

// --- Holdings Command ---

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show the units held at each stage" }
func (*holdingsCmd) Usage() string {
	return `eqt holdings

  Shows, for each ticker, the units granted, still options, held as stock and sold.
`
}

func (*holdingsCmd) SetFlags(*flag.FlagSet) {}

func (*holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(ledger))
	return subcommands.ExitSuccess
}

// --- Tax Command ---

type taxCmd struct {
	year int
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "compute the taxes of a year" }
func (*taxCmd) Usage() string {
	return `eqt tax [-year <year>]

  Computes the income tax, capital gains tax, AMT and payroll taxes of a year,
  from its filing and the ledger. Without -year, every filed year is reported.
  See 'eqt topic taxes' and 'eqt topic filings'.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Tax year")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	filings, err := decodeFilings(*filingsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	years := filings.Years()
	if c.year != 0 {
		years = []int{c.year}
	}
	if len(years) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no filings in %q, see 'eqt topic filings'\n", *filingsFile)
		return subcommands.ExitFailure
	}

	calc := calculator()
	var reports []string
	for _, year := range years {
		filing, err := filings.Get(year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		report, err := calc.Report(filing, ledger.Lifecycles())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing %d taxes: %v\n", year, err)
			return subcommands.ExitFailure
		}
		reports = append(reports, renderer.TaxMarkdown(report))
	}
	printMarkdown(strings.Join(reports, "\n"))
	return subcommands.ExitSuccess
}
