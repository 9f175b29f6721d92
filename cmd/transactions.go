package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// record appends tx to the ledger file.
func record(tx equity.Transaction) subcommands.ExitStatus {
	if err := appendTransaction(*ledgerFile, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended %s to %s\n", tx.What(), *ledgerFile)
	return subcommands.ExitSuccess
}

// parseDates parses dates, an empty string is a zero date.
func parseDates(dates ...string) ([]equity.Date, error) {
	parsed := make([]equity.Date, len(dates))
	for i, s := range dates {
		if s == "" {
			continue
		}
		on, err := equity.ParseDate(s)
		if err != nil {
			return nil, err
		}
		parsed[i] = on
	}
	return parsed, nil
}

// --- Grant Command ---

type grantCmd struct {
	date   string
	ticker string
	units  int
	price  float64
	memo   string
}

func (*grantCmd) Name() string     { return "grant" }
func (*grantCmd) Synopsis() string { return "record a grant of stock options" }
func (*grantCmd) Usage() string {
	return `eqt grant -t <ticker> -u <units> -p <strike price> [-d <date>] [-m <memo>]

  Records a lot of options, granted all at once. Use vest for a vesting schedule.
`
}

func (c *grantCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Grant date. See 'eqt topic dates' for supported formats.")
	f.StringVar(&c.ticker, "t", "", "Ticker of the stock")
	f.IntVar(&c.units, "u", 0, "Number of options")
	f.Float64Var(&c.price, "p", 0, "Strike price per option")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *grantCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.units <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	dates, err := parseDates(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	day := dates[0]
	return record(equity.NewGrant(day, c.memo, c.ticker, equity.Q(c.units), equity.M(c.price)))
}

// --- Vest Command ---

type vestCmd struct {
	date   string
	ticker string
	units  int
	price  float64
	begin  string
	cliff  string
	months int
	memo   string
}

func (*vestCmd) Name() string     { return "vest" }
func (*vestCmd) Synopsis() string { return "record the options vested by a vesting schedule" }
func (*vestCmd) Usage() string {
	return `eqt vest -t <ticker> -u <total units> -p <strike price> -begin <date> [-cliff <date>] [-months <n>] [-d <date>] [-m <memo>]

  Grants the options vested by a schedule up to the date. Record the same
  schedule again later to grant the options vested in between.
  See 'eqt topic vesting'.
`
}

func (c *vestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Grant the options vested up to this date.")
	f.StringVar(&c.ticker, "t", "", "Ticker of the stock")
	f.IntVar(&c.units, "u", 0, "Total number of options of the schedule")
	f.Float64Var(&c.price, "p", 0, "Strike price per option")
	f.StringVar(&c.begin, "begin", "", "Vesting start date")
	f.StringVar(&c.cliff, "cliff", "", "Optional cliff date")
	f.IntVar(&c.months, "months", equity.DefaultVestingMonths, "Vesting duration in months")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *vestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.units <= 0 || c.price < 0 || c.begin == "" || c.months <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	dates, err := parseDates(c.date, c.begin, c.cliff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	day, begin, cliff := dates[0], dates[1], dates[2]
	months := c.months
	if months == equity.DefaultVestingMonths {
		months = 0 // default is implied.
	}
	return record(equity.NewVest(day, c.memo, equity.Schedule{
		Ticker: c.ticker,
		Price:  equity.M(c.price),
		Units:  equity.Q(c.units),
		Begin:  begin,
		Cliff:  cliff,
		Months: months,
	}))
}

// --- Exercise Command ---

type exerciseCmd struct {
	date   string
	ticker string
	units  int
	fmv    float64
	policy string
	memo   string
}

func (*exerciseCmd) Name() string     { return "exercise" }
func (*exerciseCmd) Synopsis() string { return "exercise options into stock" }
func (*exerciseCmd) Usage() string {
	return `eqt exercise -t <ticker> -u <units> [-fmv <fair market value>] [-policy date|price] [-d <date>] [-m <memo>]

  Exercises options into stock, picking the option lots in the policy order.
  The fair market value per unit is used to compute the AMT.
  See 'eqt topic evolution'.
`
}

func (c *exerciseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Exercise date")
	f.StringVar(&c.ticker, "t", "", "Ticker of the stock")
	f.IntVar(&c.units, "u", 0, "Number of options to exercise")
	f.Float64Var(&c.fmv, "fmv", 0, "Fair market value per unit on the exercise date")
	f.StringVar(&c.policy, "policy", equity.ByDate.String(), "Lot selection policy: date or price")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *exerciseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.units <= 0 || c.fmv < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	policy, err := equity.ParseSelectionPolicy(c.policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	dates, err := parseDates(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	day := dates[0]
	return record(equity.NewExercise(day, c.memo, c.ticker, equity.Q(c.units), equity.M(c.fmv), policy))
}

// --- Sell Command ---

type sellCmd struct {
	date   string
	ticker string
	units  int
	price  float64
	policy string
	memo   string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell stock" }
func (*sellCmd) Usage() string {
	return `eqt sell -t <ticker> -u <units> -p <price> [-policy date|price] [-d <date>] [-m <memo>]

  Sells stock, picking the stock lots in the policy order.
  See 'eqt topic evolution'.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Sale date")
	f.StringVar(&c.ticker, "t", "", "Ticker of the stock")
	f.IntVar(&c.units, "u", 0, "Number of shares to sell")
	f.Float64Var(&c.price, "p", 0, "Sale price per share")
	f.StringVar(&c.policy, "policy", equity.ByDate.String(), "Lot selection policy: date or price")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.units <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	policy, err := equity.ParseSelectionPolicy(c.policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	dates, err := parseDates(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	day := dates[0]
	return record(equity.NewSell(day, c.memo, c.ticker, equity.Q(c.units), equity.M(c.price), policy))
}
