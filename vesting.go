package equity

// DefaultVestingMonths is the duration of a schedule that does not set one.
const DefaultVestingMonths = 48

// Schedule describes options that vest monthly over a period of time, with
// an optional cliff.
type Schedule struct {
	Ticker string
	Price  Money    // Strike price of every vested lot.
	Units  Quantity // Total units of the grant.
	Begin  Date     // Vesting start.
	Cliff  Date     // Nothing vests before the cliff. Zero means no cliff.
	Cutoff Date     // Last date to consider. Zero means today.
	Months int      // Duration of the schedule in months. Zero means DefaultVestingMonths.
}

// Tranche is a number of units vesting on a date.
type Tranche struct {
	Units Quantity
	Date  Date
}

// normalize returns s with defaults applied, or an error if s is invalid.
func (s Schedule) normalize() (Schedule, error) {
	if s.Ticker == "" {
		return s, invalid("ticker", "missing")
	}
	if s.Price.IsNegative() {
		return s, invalid("price", "must not be negative, got %s", s.Price)
	}
	if !s.Units.isWhole() {
		return s, invalid("units", "must be a positive whole number, got %s", s.Units)
	}
	if s.Begin.IsZero() {
		return s, invalid("begin", "missing")
	}
	if s.Months == 0 {
		s.Months = DefaultVestingMonths
	}
	if s.Months < 0 {
		return s, invalid("months", "must be positive, got %d", s.Months)
	}
	if s.Cutoff.IsZero() {
		s.Cutoff = Today()
	}
	if !s.Cliff.IsZero() {
		if s.Cliff.Before(s.Begin) {
			return s, invalid("cliff", "%s is before the vesting start %s", s.Cliff, s.Begin)
		}
		if m := s.Cliff.MonthsSince(s.Begin); m > s.Months {
			return s, invalid("cliff", "%d months after the start, longer than the %d months schedule", m, s.Months)
		}
	}
	return s, nil
}

// Tranches returns the units vested by the schedule up to its cutoff, in
// chronological order.
//
// At the cliff, all the units that would have vested monthly since the
// beginning vest at once. The rest vests monthly, starting at the cliff.
// Monthly units are whole numbers, the first months get one more unit until
// the total is reached exactly. Tranches after the cutoff are not returned.
func (s Schedule) Tranches() ([]Tranche, error) {
	s, err := s.normalize()
	if err != nil {
		return nil, err
	}
	if !s.Cliff.IsZero() && s.Cutoff.Before(s.Cliff) {
		return nil, nil
	}

	total := s.Units.IntPart()
	start, months, remaining := s.Begin, s.Months, total
	var tranches []Tranche

	if !s.Cliff.IsZero() && s.Cliff != s.Begin {
		m := s.Cliff.MonthsSince(s.Begin)
		cliff := total * int64(m) / int64(s.Months)
		if cliff > 0 {
			tranches = append(tranches, Tranche{Units: Q(cliff), Date: s.Cliff})
		}
		start, months, remaining = s.Cliff, s.Months-m, total-cliff
	}
	if months == 0 {
		return tranches, nil
	}

	base, rem := remaining/int64(months), remaining%int64(months)
	for i := range months {
		units := base
		if int64(i) < rem {
			units++
		}
		on := start.AddMonth(i)
		if units == 0 || on.After(s.Cutoff) {
			continue
		}
		if !s.Cliff.IsZero() && on.Before(s.Cliff) {
			continue
		}
		tranches = append(tranches, Tranche{Units: Q(units), Date: on})
	}
	return tranches, nil
}

// scheduleKey identifies a schedule independently of its cutoff.
type scheduleKey struct {
	ticker string
	price  string
	units  string
	begin  Date
	cliff  Date
	months int
}

func (s Schedule) key() scheduleKey {
	return scheduleKey{
		ticker: s.Ticker,
		price:  s.Price.Decimal().String(),
		units:  s.Units.String(),
		begin:  s.Begin,
		cliff:  s.Cliff,
		months: s.Months,
	}
}

// GrantSchedule grants the lots vested by s.
//
// The ledger remembers how far each schedule has been granted: calling it
// again with the same schedule and a later cutoff only grants the months
// vested since. It returns the units granted by this call.
func (l *Ledger) GrantSchedule(s Schedule) (Quantity, error) {
	s, err := s.normalize()
	if err != nil {
		return Quantity{}, err
	}
	tranches, err := s.Tranches()
	if err != nil {
		return Quantity{}, err
	}

	key := s.key()
	through, seen := l.vested[key]
	var granted Quantity
	for _, t := range tranches {
		if seen && !t.Date.After(through) {
			continue
		}
		if err := l.Grant(s.Ticker, s.Price, t.Units, t.Date); err != nil {
			return granted, err
		}
		granted = granted.Add(t.Units)
		if t.Date.After(l.vested[key]) {
			l.vested[key] = t.Date
		}
	}
	return granted, nil
}
