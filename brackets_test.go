package equity

import "testing"

// federal2021 are the 2021 federal brackets for a single filer.
var federal2021 = Brackets{
	{M(0), R(0.10)},
	{M(9950), R(0.12)},
	{M(40525), R(0.22)},
	{M(86375), R(0.24)},
	{M(164925), R(0.32)},
	{M(209425), R(0.35)},
	{M(523600), R(0.37)},
}

func TestBrackets_Tax(t *testing.T) {
	tests := []struct {
		name     string
		brackets Brackets
		income   Money
		want     Money
	}{
		{"flat", flat(0.1), M(1000), M(100)},
		{"flat zero", flat(0.1), M(0), M(0)},
		{"flat negative", flat(0.1), M(-1000), M(0)},
		{"no brackets", nil, M(1000), M(0)},
		{"first bracket", federal2021, M(5000), M(500)},
		{"on a boundary", federal2021, M(9950), M(995)},
		{"third bracket", federal2021, M(50000), M(995 + 3669 + 2084.5)},
		{"last bracket is uncapped", federal2021, M(1000000), M(
			995 + // 10% of 9950
				3669 + // 12% of 30575
				10087 + // 22% of 45850
				18852 + // 24% of 78550
				14240 + // 32% of 44500
				109961.25 + // 35% of 314175
				176268, // 37% of 476400
		)},
		{"single bracket with a floor", Brackets{{M(1000), R(0.1)}}, M(500), M(50)},
		// 10% of the 4000 band, 20% of the 2000 left.
		{"bands from a floor", Brackets{{M(1000), R(0.1)}, {M(5000), R(0.2)}}, M(6000), M(800)},
		{"within the first band", Brackets{{M(1000), R(0.1)}, {M(5000), R(0.2)}}, M(3000), M(300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMoney(t, "Tax()", tt.brackets.Tax(tt.income), tt.want)
			assertMoney(t, "ApplyBrackets()", ApplyBrackets(tt.income, tt.brackets), tt.want)
		})
	}
}

func TestBrackets_Tax_Monotonic(t *testing.T) {
	prev := federal2021.Tax(M(-100))
	for income := -100.0; income < 700000; income += 1234.5 {
		got := federal2021.Tax(M(income))
		if got.LessThan(prev) {
			t.Fatalf("Tax(%v) = %s is less than the tax on a lower income %s", income, got, prev)
		}
		if got.IsNegative() {
			t.Fatalf("Tax(%v) = %s is negative", income, got)
		}
		prev = got
	}
}

func TestBrackets_Validate(t *testing.T) {
	tests := []struct {
		name     string
		brackets Brackets
		wantErr  bool
	}{
		{"federal", federal2021, false},
		{"empty", nil, false},
		{"not increasing", Brackets{{M(0), R(0.1)}, {M(100), R(0.2)}, {M(100), R(0.3)}}, true},
		{"decreasing", Brackets{{M(100), R(0.1)}, {M(0), R(0.2)}}, true},
		{"negative rate", Brackets{{M(0), R(-0.1)}}, true},
		{"rate above one", Brackets{{M(0), R(1.5)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.brackets.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
