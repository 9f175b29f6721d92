package equity

import "fmt"

// InvalidActionError is returned when a lot is asked to evolve with an action
// that is not an evolution (exercise or sale).
type InvalidActionError struct {
	Action Action
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid evolution action %v", e.Action)
}

// InvalidArgumentError reports a caller contract violation, like a negative
// number of units.
type InvalidArgumentError struct {
	Name   string // Name of the offending argument.
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
}

func invalid(name, format string, args ...any) error {
	return &InvalidArgumentError{Name: name, Reason: fmt.Sprintf(format, args...)}
}

// TaxDataUnavailableError is returned when no tax table is known for a year
// and jurisdiction. Taxes are never silently computed as zero.
type TaxDataUnavailableError struct {
	Year         int
	Jurisdiction string
	Status       FilingStatus
	Err          error // underlying cause, if any
}

func (e *TaxDataUnavailableError) Error() string {
	msg := fmt.Sprintf("no tax data for %s in %d", e.Jurisdiction, e.Year)
	if e.Status != "" {
		msg += fmt.Sprintf(" (%s)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TaxDataUnavailableError) Unwrap() error { return e.Err }
