package intent

import (
	"errors"
	"fmt"
)

// Kind classifies where a failure happened.
type Kind int

const (
	KindUnknown Kind = iota
	// AttachFailure: the runtime could not be reached or the thread attached.
	AttachFailure
	// ConstructionFailure: resolving or invoking something while building an Intent.
	ConstructionFailure
	// QueryFailure: reading a value from an existing Intent failed or it was absent.
	QueryFailure
	// DispatchFailure: startActivity was rejected.
	DispatchFailure
)

func (k Kind) String() string {
	switch k {
	case AttachFailure:
		return "attach failure"
	case ConstructionFailure:
		return "construction failure"
	case QueryFailure:
		return "query failure"
	case DispatchFailure:
		return "dispatch failure"
	}
	return "unknown failure"
}

var (
	ErrNullObject  = errors.New("null object")
	ErrAbsent      = errors.New("value absent")
	ErrConsumed    = errors.New("builder already consumed")
	ErrFrameFull   = errors.New("local reference frame full")
	ErrUnsupported = errors.New("no java runtime on this platform")
)

// Kind sentinels, for errors.Is.
var (
	ErrAttach       = &Error{Kind: AttachFailure}
	ErrConstruction = &Error{Kind: ConstructionFailure}
	ErrQuery        = &Error{Kind: QueryFailure}
	ErrDispatch     = &Error{Kind: DispatchFailure}
)

// Error is a foreign call failure tagged with its kind and operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrQuery) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// wrap tags err with kind and op. An err that already carries a kind keeps it.
func wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
