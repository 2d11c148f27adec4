package projects

import "fmt"

// Outcome classifies a normalization result.
type Outcome int

const (
	// OK means the record was normalized.
	OK Outcome = iota
	// Skipped means the record lacks required data and is left out.
	Skipped
	// Fatal means the record could not be read or interpreted.
	Fatal
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Skipped:
		return "skipped"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of normalizing one record. Fatal is scoped to the
// record: callers log it and move on.
type Result[T any] struct {
	Source  string  // File name or other diagnostic label
	Outcome Outcome // ok, skipped or fatal
	Value   T       // Set only when Outcome is OK
	Reason  string  // Why the record was skipped
	Err     error   // Why the record failed
}

func ok[T any](source string, v T) Result[T] {
	return Result[T]{Source: source, Outcome: OK, Value: v}
}

func skipped[T any](source, reason string) Result[T] {
	return Result[T]{Source: source, Outcome: Skipped, Reason: reason}
}

func fatal[T any](source string, err error) Result[T] {
	return Result[T]{Source: source, Outcome: Fatal, Err: err}
}

// Values returns the normalized values of the OK results, in order.
func Values[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Outcome == OK {
			out = append(out, r.Value)
		}
	}
	return out
}

// Tally counts results by outcome.
type Tally struct {
	OK      int
	Skipped int
	Fatal   int
}

// Count tallies results by outcome.
func Count[T any](results []Result[T]) Tally {
	var t Tally
	for _, r := range results {
		switch r.Outcome {
		case OK:
			t.OK++
		case Skipped:
			t.Skipped++
		case Fatal:
			t.Fatal++
		}
	}
	return t
}
