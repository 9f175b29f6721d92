package renderer

import "github.com/etnz/equity"

// TaxMarkdown renders the taxes of a year.
//
// Capital gains and AMT sections are omitted when there is nothing to report.
func TaxMarkdown(t *equity.TaxReport) string {
	r := newRenderer()
	f := t.Filing
	r.Printf("# Taxes %d\n\n", f.Year)

	r.Printf("| Filing | |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Status | %s |\n", f.Status)
	r.Printf("| State | %s |\n", f.State)
	r.Printf("| Gross Income | %s |\n", f.GrossIncome)
	r.Printf("| Withholdings | %s |\n", f.Withholdings)
	r.Printf("| AGI | %s |\n", f.AGI())
	r.Printf("\n")

	r.Printf("## Income Tax\n\n")
	r.Printf("| | Tax |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Federal | %s |\n", t.Income.Federal)
	r.Printf("| %s | %s |\n", f.State, t.Income.State)
	r.Printf("| Total | %s |\n", t.Income.Total())
	r.Printf("\n")

	r.section(func(s *renderer) bool {
		cg := t.CapitalGains
		s.Printf("## Capital Gains\n\n")
		s.Printf("| | Gains | Tax |\n")
		s.Printf("|:---|---:|---:|\n")
		s.Printf("| Short Term | %s | %s |\n", cg.ShortTermGains.SignedString(), cg.ShortTerm.Total())
		s.Printf("| Long Term | %s | %s |\n", cg.LongTermGains.SignedString(), cg.LongTerm)
		s.Printf("| Total | | %s |\n", cg.Total())
		s.Printf("\n")
		return !cg.ShortTermGains.IsZero() || !cg.LongTermGains.IsZero()
	})

	r.section(func(s *renderer) bool {
		amt := t.AMT
		s.Printf("## Alternative Minimum Tax\n\n")
		s.Printf("| | |\n")
		s.Printf("|:---|---:|\n")
		s.Printf("| Exercise Spread | %s |\n", amt.Spread)
		s.Printf("| AMT Base | %s |\n", amt.Base)
		s.Printf("| Tentative Minimum Tax | %s |\n", amt.Tentative)
		s.Printf("| Federal Income Tax | %s |\n", amt.Federal)
		s.Printf("| Owed | %s |\n", amt.Owed)
		s.Printf("\n")
		return !amt.Spread.IsZero() || amt.Owed.IsPositive()
	})

	r.Printf("## Payroll\n\n")
	r.Printf("| | Tax |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Social Security | %s |\n", t.Payroll.SocialSecurity)
	r.Printf("| Medicare | %s |\n", t.Payroll.Medicare)
	r.Printf("\n")

	r.Printf("**Total Tax: %s**\n", t.Total())
	return r.String()
}
