package equity

import "fmt"

// Action is what happened to a lot.
type Action int

const (
	GrantOption Action = iota + 1
	ExerciseOption
	SellStock
)

func (a Action) String() string {
	switch a {
	case GrantOption:
		return "option grant"
	case ExerciseOption:
		return "option exercise"
	case SellStock:
		return "stock sale"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction parses either the short ("grant", "exercise", "sell") or the
// long name of an action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "grant", "option grant":
		return GrantOption, nil
	case "exercise", "option exercise":
		return ExerciseOption, nil
	case "sell", "stock sale":
		return SellStock, nil
	default:
		return 0, fmt.Errorf("unknown action: %q", s)
	}
}

// stages returns the stage a lot must be in to be evolved by a, and the
// stage it ends up in.
func (a Action) stages() (source, destination Stage, err error) {
	switch a {
	case ExerciseOption:
		return Granted, Exercised, nil
	case SellStock:
		return Exercised, Sold, nil
	default:
		return 0, 0, &InvalidActionError{Action: a}
	}
}

// Stage is the most advanced step a lot has reached.
type Stage int

const (
	Granted Stage = iota + 1
	Exercised
	Sold
)

func (s Stage) String() string {
	switch s {
	case Granted:
		return "option"
	case Exercised:
		return "stock"
	case Sold:
		return "sold"
	default:
		return "unknown"
	}
}
