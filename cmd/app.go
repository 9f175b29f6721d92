// Package cmd implements the eqt command line tool.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"slices"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/equity"
	"github.com/etnz/equity/taxee"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "equity.jsonl", "Path to the ledger file (JSONL format)")
var filingsFile = flag.String("filings-file", "filings.yaml", "Path to the yearly filings file (YAML format)")
var taxeeURL = flag.String("taxee-url", "", "Base URL of the taxee tax statistics, like "+taxee.DefaultURL+". Built-in tables are used when empty.")

// group of a command, in the help.
type group struct {
	name     string
	commands []subcommands.Command
}

func groups() []group {
	return []group{
		{"ledger", []subcommands.Command{&grantCmd{}, &vestCmd{}, &exerciseCmd{}, &sellCmd{}}},
		{"reports", []subcommands.Command{&lotsCmd{}, &logCmd{}, &holdingsCmd{}, &taxCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}, &assistCmd{}}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups() {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// decodeTransactions reads the ledger file. A missing file is an empty ledger.
func decodeTransactions(filename string) ([]equity.Transaction, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger %q does not exist, starting with an empty ledger", filename)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", filename, err)
	}
	defer f.Close()

	txs, err := equity.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", filename, err)
	}
	return txs, nil
}

// replay applies transactions to a new ledger, warning about the exercises
// and sales that could not be done in full.
func replay(txs []equity.Transaction) (*equity.Ledger, error) {
	return equity.Replay(txs, func(tx equity.Transaction, done equity.Quantity) {
		log.Printf("warning: on %s, %s done for %s units only", tx.When(), tx.What(), done)
	})
}

// decodeLedger reads and replays the ledger file.
func decodeLedger(filename string) (*equity.Ledger, error) {
	txs, err := decodeTransactions(filename)
	if err != nil {
		return nil, err
	}
	return replay(txs)
}

// appendTransaction appends tx to the ledger file, if the ledger with tx can be replayed.
func appendTransaction(filename string, tx equity.Transaction) error {
	txs, err := decodeTransactions(filename)
	if err != nil {
		return err
	}
	if _, err := replay(append(slices.Clone(txs), tx)); err != nil {
		return err
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q: %w", filename, err)
	}
	defer f.Close()

	if err := equity.EncodeTransaction(f, tx); err != nil {
		return fmt.Errorf("could not write to ledger file %q: %w", filename, err)
	}
	return nil
}

// decodeFilings reads the filings file. A missing file has no filings.
func decodeFilings(filename string) (equity.Filings, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, filings %q do not exist", filename)
		return equity.Filings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open filings file %q: %w", filename, err)
	}
	defer f.Close()

	filings, err := equity.DecodeFilings(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode filings file %q: %w", filename, err)
	}
	return filings, nil
}

// calculator returns the tax calculator reading the tax tables from -taxee-url.
func calculator() *equity.Calculator {
	if *taxeeURL == "" {
		return equity.NewCalculator(taxee.NewEmbedded())
	}
	return equity.NewCalculator(taxee.New(taxee.NewRemote(*taxeeURL)))
}

// printMarkdown prints markdown to the terminal, raw if it cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
