package renderer

import (
	"github.com/etnz/equity"
)

// LifecyclesMarkdown renders every lot with the stages it went through.
func LifecyclesMarkdown(lots []*equity.Lifecycle) string {
	r := newRenderer()
	r.Printf("# Lots\n\n")
	if len(lots) == 0 {
		r.Printf("No lots.\n")
		return r.String()
	}

	r.Printf("| Ticker | Stage | Units | Granted | Strike | Exercised | FMV | Sold | Sale Price | Gain |\n")
	r.Printf("|:---|:---|---:|:---|---:|:---|---:|:---|---:|---:|\n")
	for _, lot := range lots {
		option := lot.Option()
		current := lot.Current()
		var exercised, stockFMV, sold, salePrice, gain string
		if stock, ok := lot.Stock(); ok {
			exercised = stock.Date.String()
			stockFMV = fmv(stock)
		}
		if sale, ok := lot.Sale(); ok {
			sold = sale.Date.String()
			salePrice = sale.Price.String()
			gain = lot.Gain().SignedString()
		}
		r.Printf("| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			lot.Ticker(),
			lot.Stage(),
			current.Units,
			option.Date,
			option.Price,
			exercised,
			stockFMV,
			sold,
			salePrice,
			gain,
		)
	}
	return r.String()
}
