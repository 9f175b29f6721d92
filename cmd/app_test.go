package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/equity"
)

func TestAppendTransaction(t *testing.T) {
	file := filepath.Join(t.TempDir(), "equity.jsonl")

	grant := equity.NewGrant(equity.NewDate(2019, 1, 30), "", "JEFF", equity.Q(500), equity.M(1.5))
	exercise := equity.NewExercise(equity.NewDate(2020, 3, 1), "", "JEFF", equity.Q(800), equity.M(4), equity.ByDate)
	for _, tx := range []equity.Transaction{grant, exercise} {
		if err := appendTransaction(file, tx); err != nil {
			t.Fatalf("appendTransaction(%s) unexpected error: %v", tx.What(), err)
		}
	}

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.Count(string(content), "\n"), 2; got != want {
		t.Errorf("got %d lines, want %d:\n%s", got, want, content)
	}

	ledger, err := decodeLedger(file)
	if err != nil {
		t.Fatal(err)
	}
	// the exercise was short of 300 options.
	if got := ledger.Units("JEFF", equity.Exercised); !got.Equal(equity.Q(500)) {
		t.Errorf("got %s exercised, want 500", got)
	}
}

func TestAppendTransaction_LateVest(t *testing.T) {
	file := filepath.Join(t.TempDir(), "equity.jsonl")

	vest := equity.NewVest(equity.NewDate(2023, 1, 30), "", equity.Schedule{
		Ticker: "JEFF",
		Price:  equity.M(2.18),
		Units:  equity.Q(8000),
		Begin:  equity.NewDate(2019, 1, 30),
		Cliff:  equity.NewDate(2020, 1, 30),
	})
	exercise := equity.NewExercise(equity.NewDate(2020, 12, 30), "", "JEFF", equity.Q(2400), equity.M(15), equity.ByDate)
	for _, tx := range []equity.Transaction{vest, exercise} {
		if err := appendTransaction(file, tx); err != nil {
			t.Fatalf("appendTransaction(%s) unexpected error: %v", tx.What(), err)
		}
	}

	ledger, err := decodeLedger(file)
	if err != nil {
		t.Fatal(err)
	}
	if got := ledger.Units("JEFF", equity.Exercised); !got.Equal(equity.Q(2400)) {
		t.Errorf("got %s exercised, want 2400", got)
	}
	if got := ledger.Units("JEFF", equity.Granted); !got.Equal(equity.Q(8000 - 2400)) {
		t.Errorf("got %s options, want 5600", got)
	}
}

func TestAppendTransaction_Invalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "equity.jsonl")

	bad := equity.NewVest(equity.NewDate(2021, 1, 1), "", equity.Schedule{
		Ticker: "JEFF",
		Price:  equity.M(2.18),
		Units:  equity.Q(8000),
		Begin:  equity.NewDate(2020, 1, 30),
		Cliff:  equity.NewDate(2019, 1, 30), // before begin.
	})
	if err := appendTransaction(file, bad); err == nil {
		t.Fatal("expected an error for a cliff before the vesting start")
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Errorf("an invalid transaction must not be written, stat: %v", err)
	}
}

func TestDecode_Missing(t *testing.T) {
	dir := t.TempDir()

	ledger, err := decodeLedger(filepath.Join(dir, "none.jsonl"))
	if err != nil {
		t.Fatalf("decodeLedger() unexpected error: %v", err)
	}
	if n := len(ledger.Lifecycles()); n != 0 {
		t.Errorf("got %d lots, want 0", n)
	}

	filings, err := decodeFilings(filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatalf("decodeFilings() unexpected error: %v", err)
	}
	if len(filings) != 0 {
		t.Errorf("got %d filings, want 0", len(filings))
	}
}

func TestDecodeFilings(t *testing.T) {
	file := filepath.Join(t.TempDir(), "filings.yaml")
	yaml := "2021:\n  gross_income: 150000\n  withholdings: 19200\n"
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	filings, err := decodeFilings(file)
	if err != nil {
		t.Fatal(err)
	}
	f, err := filings.Get(2021)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.AGI(), equity.M(130800); !got.Equal(want) {
		t.Errorf("AGI = %s, want %s", got, want)
	}
}

func TestParseDates(t *testing.T) {
	dates, err := parseDates("2021-01-31", "", "2021-01-31")
	if err != nil {
		t.Fatal(err)
	}
	want := []equity.Date{equity.NewDate(2021, 1, 31), {}, equity.NewDate(2021, 1, 31)}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("date #%d = %s, want %s", i, dates[i], want[i])
		}
	}
	if _, err := parseDates("yesterday"); err == nil {
		t.Error("expected an error")
	}
}
