package equity

import (
	"bufio"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeTransactions decodes transactions from a stream of JSONL data, one
// command per line. Transactions are returned in file order.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var transactions []Transaction
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify command in %q: %w", line, string(lineBytes), err)
		}

		var decodedTx Transaction
		var err error
		switch identifier.Command {
		case CmdGrant:
			var tx Grant
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdVest:
			var tx Vest
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdExercise:
			var tx Exercise
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdSell:
			var tx Sell
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		default:
			err = fmt.Errorf("unknown transaction command: %q", identifier.Command)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, decodedTx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return transactions, nil
}

// EncodeTransaction writes a single transaction as a line of JSON.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode %s transaction: %w", tx.What(), err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("could not write %s transaction: %w", tx.What(), err)
	}
	return nil
}

// EncodeTransactions writes transactions as JSONL, sorted by date.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	for _, tx := range sortTransactions(transactions) {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// sortTransactions returns a copy of transactions sorted by date.
// Transactions on the same day keep their relative order.
func sortTransactions(transactions []Transaction) []Transaction {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int { return a.When().Compare(b.When()) })
	return sorted
}

// replayOrder returns the steps applied by Replay.
//
// A vest is split into one step per tranche, dated on the tranche, so that
// its lots exist before any later exercise whatever the date the vest was
// recorded on. Steps are sorted by date, grants first on the same day.
func replayOrder(transactions []Transaction) []Transaction {
	steps := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		vest, ok := tx.(Vest)
		if !ok {
			steps = append(steps, tx)
			continue
		}
		tranches, err := vest.Schedule().Tranches()
		if err != nil || len(tranches) == 0 {
			steps = append(steps, tx) // Apply reports the error.
			continue
		}
		for _, t := range tranches {
			step := vest
			step.Date = t.Date
			steps = append(steps, step)
		}
	}
	rank := func(tx Transaction) int {
		switch tx.What() {
		case CmdGrant, CmdVest:
			return 0
		default:
			return 1
		}
	}
	slices.SortStableFunc(steps, func(a, b Transaction) int {
		if c := a.When().Compare(b.When()); c != 0 {
			return c
		}
		return cmp.Compare(rank(a), rank(b))
	})
	return steps
}

// Replay applies transactions in date order to a new Ledger.
//
// Lots vested by a vest command are granted on their vesting date, not on
// the date of the command.
//
// A transaction that could not be applied in full (an exercise or a sale
// larger than what is available) is not an error, it is reported through
// shortfall when not nil.
func Replay(transactions []Transaction, shortfall func(tx Transaction, done Quantity)) (*Ledger, error) {
	ledger := NewLedger()
	for _, tx := range replayOrder(transactions) {
		done, err := tx.Apply(ledger)
		if err != nil {
			return nil, err
		}
		if shortfall == nil {
			continue
		}
		switch tx := tx.(type) {
		case Exercise:
			if done.LessThan(tx.Units) {
				shortfall(tx, done)
			}
		case Sell:
			if done.LessThan(tx.Units) {
				shortfall(tx, done)
			}
		}
	}
	return ledger, nil
}

// DecodeLedger reads a JSONL command log and replays it into a Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	transactions, err := DecodeTransactions(r)
	if err != nil {
		return nil, err
	}
	return Replay(transactions, nil)
}
