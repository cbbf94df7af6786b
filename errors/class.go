package errors

// Class groups root errors by the kind of failure they describe, so that a
// caller can decide how to react without knowing every error code.
type Class uint8

const (
	// Internal is the class of errors caused by the system itself, for
	// example a storage failure or a bug.
	Internal Class = iota
	// InputValidation is the class of errors caused by malformed or
	// forbidden input. Resubmitting the same input always fails.
	InputValidation
	// StateConflict is the class of errors caused by the current state
	// not allowing an operation, for example a duplicate registration.
	StateConflict
	// AuthorizationDenied is the class of errors returned when the
	// caller lacks the capability for an operation.
	AuthorizationDenied
	// EconomicPrecondition is the class of errors returned when funds,
	// allowances or generated interest are not sufficient.
	EconomicPrecondition
	// ExternalFailure is the class of errors returned when a collaborator
	// (token ledger, money market) refused to complete a transfer.
	ExternalFailure
)

func (c Class) String() string {
	switch c {
	case Internal:
		return "internal"
	case InputValidation:
		return "input validation"
	case StateConflict:
		return "state conflict"
	case AuthorizationDenied:
		return "authorization denied"
	case EconomicPrecondition:
		return "economic precondition"
	case ExternalFailure:
		return "external failure"
	default:
		return "unknown"
	}
}

// ClassOf returns the class of the root error that given error wraps. For a
// group of errors the first one decides. Errors that do not wrap any
// registered error are internal.
func ClassOf(err error) Class {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.class
		}
		if u, ok := err.(unpacker); ok {
			if errs := u.Unpack(); len(errs) > 0 {
				return ClassOf(errs[0])
			}
			return Internal
		}
		c, ok := err.(causer)
		if !ok {
			return Internal
		}
		err = c.Cause()
	}
	return Internal
}
