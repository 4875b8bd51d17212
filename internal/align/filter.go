package align

import "fmt"

// Defaults for Filter thresholds.
const (
	DefaultThreshold = 90.0
	DefaultMinLength = 1000
)

// MissPolicy decides what happens to a record naming a sequence that is not
// on its axis.
type MissPolicy int

const (
	// MissSkip excludes the record and counts it.
	MissSkip MissPolicy = iota
	// MissFail aborts the parse with an *UnknownSequenceError.
	MissFail
)

// Lookup is the view of an offset index the filter needs.
type Lookup interface {
	Lookup(name string) (int, bool)
}

// Filter is the retain predicate shared by every Source.
type Filter struct {
	Threshold float64 // identity must be strictly greater
	MinLength int     // |query_end - query_start| must be >= this
	X, Y      Lookup
	Miss      MissPolicy
}

// Reason says why a record was dropped; Kept means it was not.
type Reason int

const (
	Kept Reason = iota
	LowIdentity
	UnknownQuery
	UnknownSubject
	Short
)

func (r Reason) String() string {
	switch r {
	case Kept:
		return "kept"
	case LowIdentity:
		return "low-identity"
	case UnknownQuery:
		return "unknown-query"
	case UnknownSubject:
		return "unknown-subject"
	case Short:
		return "short"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Verdict is the outcome of Filter.Check. The offsets are valid when the
// corresponding name was found.
type Verdict struct {
	Reason  Reason
	QOffset int
	SOffset int
}

// Check evaluates every clause of the predicate; none has side effects, so the
// result does not depend on clause order. The reported Reason is the first
// failing clause in the order identity, query, subject, length.
func (f Filter) Check(identity float64, qName, sName string, qStart, qEnd int) Verdict {
	qOff, qOK := f.X.Lookup(qName)
	sOff, sOK := f.Y.Lookup(sName)
	idOK := identity > f.Threshold
	lenOK := (Interval{qStart, qEnd}).Len() >= f.MinLength

	v := Verdict{QOffset: qOff, SOffset: sOff}
	switch {
	case !idOK:
		v.Reason = LowIdentity
	case !qOK:
		v.Reason = UnknownQuery
	case !sOK:
		v.Reason = UnknownSubject
	case !lenOK:
		v.Reason = Short
	default:
		v.Reason = Kept
	}
	return v
}

// UnknownSequenceError is returned under MissFail.
type UnknownSequenceError struct {
	Axis string // "x" or "y"
	Name string
}

func (e *UnknownSequenceError) Error() string {
	return fmt.Sprintf("sequence %q is not in the %s-axis index", e.Name, e.Axis)
}

// missError returns the strict-mode error for a verdict, or nil. A record that
// already fails on identity is excluded for that reason and never escalates.
func (f Filter) missError(v Verdict, qName, sName string) error {
	if f.Miss != MissFail {
		return nil
	}
	switch v.Reason {
	case UnknownQuery:
		return &UnknownSequenceError{Axis: "x", Name: qName}
	case UnknownSubject:
		return &UnknownSequenceError{Axis: "y", Name: sName}
	}
	return nil
}
