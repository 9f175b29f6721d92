package equity

import (
	"errors"
	"testing"
)

func sumTranches(tranches []Tranche) Quantity {
	var total Quantity
	for _, t := range tranches {
		total = total.Add(t.Units)
	}
	return total
}

func TestSchedule_Tranches_Cliff(t *testing.T) {
	tranches, err := jeffSchedule(NewDate(2023, 1, 30)).Tranches()
	if err != nil {
		t.Fatalf("Tranches() unexpected error: %v", err)
	}

	if got, want := len(tranches), 37; got != want {
		t.Fatalf("len(Tranches()) = %d, want %d", got, want)
	}
	// the cliff vests twelve months at once.
	if got, want := tranches[0], (Tranche{Units: Q(2000), Date: NewDate(2020, 1, 30)}); got.Date != want.Date || !got.Units.Equal(want.Units) {
		t.Errorf("cliff tranche = %v, want %v", got, want)
	}
	// then 6000 units over 36 months, starting at the cliff.
	tests := []struct {
		i     int
		units int
		date  Date
	}{
		{1, 167, NewDate(2020, 1, 30)},
		{2, 167, NewDate(2020, 2, 29)},
		{3, 167, NewDate(2020, 3, 30)},
		{24, 167, NewDate(2021, 12, 30)},
		{25, 166, NewDate(2022, 1, 30)},
		{36, 166, NewDate(2022, 12, 30)},
	}
	for _, tt := range tests {
		got := tranches[tt.i]
		if got.Date != tt.date || !got.Units.Equal(Q(tt.units)) {
			t.Errorf("tranche %d = {%s %s}, want {%d %s}", tt.i, got.Units, got.Date, tt.units, tt.date)
		}
	}
	assertUnits(t, "total", sumTranches(tranches), Q(8000))

	for i := 1; i < len(tranches); i++ {
		if tranches[i].Date.Before(tranches[i-1].Date) {
			t.Errorf("tranche %d on %s is before tranche %d on %s", i, tranches[i].Date, i-1, tranches[i-1].Date)
		}
	}
}

func TestSchedule_Tranches(t *testing.T) {
	cliff := NewDate(2020, 1, 30)
	tests := []struct {
		name     string
		schedule Schedule
		want     []int // units of each tranche
	}{
		{
			name:     "cutoff 100 days after the cliff",
			schedule: jeffSchedule(cliff.Add(100)),
			want:     []int{2000, 167, 167, 167, 167},
		},
		{
			name:     "cutoff on the cliff",
			schedule: jeffSchedule(cliff),
			want:     []int{2000, 167},
		},
		{
			name:     "cutoff before the cliff",
			schedule: jeffSchedule(cliff.Add(-1)),
			want:     nil,
		},
		{
			name: "no cliff",
			schedule: Schedule{
				Ticker: jeff, Price: M(3.08), Units: Q(4800),
				Begin: NewDate(2020, 6, 1), Cutoff: NewDate(2020, 8, 15),
			},
			want: []int{100, 100, 100},
		},
		{
			name: "cliff on the first day",
			schedule: Schedule{
				Ticker: jeff, Price: M(3.08), Units: Q(4800),
				Begin: NewDate(2020, 6, 1), Cliff: NewDate(2020, 6, 1), Cutoff: NewDate(2020, 8, 15),
			},
			want: []int{100, 100, 100},
		},
		{
			name: "remainder goes to the first months",
			schedule: Schedule{
				Ticker: jeff, Price: M(1), Units: Q(10),
				Begin: NewDate(2020, 1, 1), Cutoff: NewDate(2021, 1, 1), Months: 4,
			},
			want: []int{3, 3, 2, 2},
		},
		{
			name: "less units than months",
			schedule: Schedule{
				Ticker: jeff, Price: M(1), Units: Q(2),
				Begin: NewDate(2020, 1, 1), Cutoff: NewDate(2021, 1, 1), Months: 4,
			},
			want: []int{1, 1},
		},
		{
			name: "cliff at the end",
			schedule: Schedule{
				Ticker: jeff, Price: M(1), Units: Q(1000),
				Begin: NewDate(2020, 1, 1), Cliff: NewDate(2021, 1, 1), Cutoff: NewDate(2022, 1, 1), Months: 12,
			},
			want: []int{1000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tranches, err := tt.schedule.Tranches()
			if err != nil {
				t.Fatalf("Tranches() unexpected error: %v", err)
			}
			if got, want := len(tranches), len(tt.want); got != want {
				t.Fatalf("len(Tranches()) = %d, want %d: %v", got, want, tranches)
			}
			for i, units := range tt.want {
				if !tranches[i].Units.Equal(Q(units)) {
					t.Errorf("tranche %d = %s units, want %d", i, tranches[i].Units, units)
				}
			}
			if total := sumTranches(tranches); total.GreaterThan(tt.schedule.Units) {
				t.Errorf("total %s exceeds the schedule's %s units", total, tt.schedule.Units)
			}
		})
	}
}

func TestSchedule_Tranches_Invalid(t *testing.T) {
	valid := jeffSchedule(NewDate(2023, 1, 30))
	tests := []struct {
		name   string
		modify func(*Schedule)
	}{
		{"missing ticker", func(s *Schedule) { s.Ticker = "" }},
		{"zero units", func(s *Schedule) { s.Units = Q(0) }},
		{"negative units", func(s *Schedule) { s.Units = Q(-10) }},
		{"fractional units", func(s *Schedule) { s.Units = Q(10.5) }},
		{"negative price", func(s *Schedule) { s.Price = M(-1) }},
		{"missing begin", func(s *Schedule) { s.Begin = Date{} }},
		{"negative months", func(s *Schedule) { s.Months = -12 }},
		{"cliff before begin", func(s *Schedule) { s.Cliff = s.Begin.Add(-1) }},
		{"cliff after the end", func(s *Schedule) { s.Cliff = s.Begin.AddMonth(49) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.modify(&s)
			_, err := s.Tranches()
			var invalid *InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Errorf("Tranches() error = %v, want an InvalidArgumentError", err)
			}
		})
	}
}

func TestLedger_GrantSchedule(t *testing.T) {
	l := NewLedger()
	cliff := NewDate(2020, 1, 30)

	steps := []struct {
		cutoff Date
		want   int
	}{
		{cliff.Add(-1), 0},
		{cliff.Add(100), 2668},
		{cliff.Add(100), 0}, // same cutoff again
		{cliff.Add(50), 0},  // earlier cutoff
		{NewDate(2023, 1, 30), 8000 - 2668},
		{NewDate(2024, 1, 30), 0},
	}
	for i, step := range steps {
		got, err := l.GrantSchedule(jeffSchedule(step.cutoff))
		if err != nil {
			t.Fatalf("step %d: GrantSchedule() unexpected error: %v", i, err)
		}
		assertUnits(t, "granted", got, Q(step.want))
	}

	assertUnits(t, "Granted()", l.Granted(jeff), Q(8000))
	if got, want := len(l.Lifecycles()), 37; got != want {
		t.Errorf("len(Lifecycles()) = %d, want %d", got, want)
	}

	// another schedule for the same ticker is tracked separately.
	other := Schedule{Ticker: jeff, Price: M(3.08), Units: Q(5000), Begin: NewDate(2020, 6, 1), Cutoff: NewDate(2020, 6, 1)}
	got, err := l.GrantSchedule(other)
	if err != nil {
		t.Fatalf("GrantSchedule() unexpected error: %v", err)
	}
	// 5000 / 48 = 104 rem 8
	assertUnits(t, "granted", got, Q(105))
}
