package renderer

import (
	"github.com/etnz/equity"
)

// HoldingsMarkdown renders, for each ticker, the units granted and where
// they are now: still options, held as stock, or sold.
func HoldingsMarkdown(l *equity.Ledger) string {
	r := newRenderer()
	r.Printf("# Holdings\n\n")
	tickers := l.Tickers()
	if len(tickers) == 0 {
		r.Printf("No grants.\n")
		return r.String()
	}

	r.Printf("| Ticker | Granted | Options | Stock | Sold |\n")
	r.Printf("|:---|---:|---:|---:|---:|\n")
	for _, ticker := range tickers {
		r.Printf("| %s | %s | %s | %s | %s |\n",
			ticker,
			l.Granted(ticker),
			l.Units(ticker, equity.Granted),
			l.Units(ticker, equity.Exercised),
			l.Units(ticker, equity.Sold),
		)
	}
	return r.String()
}
