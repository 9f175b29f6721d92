package equity

import "fmt"

// SelectionPolicy defines the order in which lots are picked when only part
// of a position is exercised or sold.
type SelectionPolicy int

const (
	// ByDate picks the oldest lots first (First-In, First-Out).
	ByDate SelectionPolicy = iota
	// ByPrice picks the lots with the highest price first, it minimizes the
	// spread on exercise and the gain on sale.
	ByPrice
)

func (p SelectionPolicy) String() string {
	switch p {
	case ByDate:
		return "date"
	case ByPrice:
		return "price"
	default:
		return "unknown"
	}
}

// ParseSelectionPolicy parses a string into a SelectionPolicy.
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch s {
	case "date", "fifo", "":
		return ByDate, nil
	case "price":
		return ByPrice, nil
	default:
		return 0, fmt.Errorf("unknown selection policy: %q", s)
	}
}

func (p SelectionPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *SelectionPolicy) UnmarshalText(text []byte) (err error) {
	*p, err = ParseSelectionPolicy(string(text))
	return err
}
