package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is used whenever an operation protected by an
	// administrator capability is requested by anyone else.
	ErrUnauthorized = Register(2, "unauthorized").In(AuthorizationDenied)

	// ErrNotFound is used when a requested record was never registered.
	ErrNotFound = Register(3, "not found").In(StateConflict)

	// ErrDuplicate is returned when there is a record already that has the
	// same unique key.
	ErrDuplicate = Register(4, "already exists").In(StateConflict)

	// ErrState is returned when an object is in an invalid state.
	ErrState = Register(5, "invalid state").In(StateConflict)

	// ErrInput stands for general input problems indication.
	ErrInput = Register(6, "invalid input").In(InputValidation)

	// ErrInvalidAmount stands for an amount that is negative or not a
	// whole number of base units.
	ErrInvalidAmount = Register(7, "invalid amount").In(InputValidation)

	// ErrEmptyName is returned when a beneficiary is registered without a
	// name.
	ErrEmptyName = Register(8, "name cannot be empty").In(InputValidation)

	// ErrZeroAddress is returned when the null identity is used where a
	// real address is required.
	ErrZeroAddress = Register(9, "address cannot be zero").In(InputValidation)

	// ErrInvalidToken is returned for a token symbol that is not one of
	// the supported tokens.
	ErrInvalidToken = Register(10, "invalid token symbol").In(InputValidation)

	// ErrNoBeneficiaries is returned when a distribution names nobody.
	ErrNoBeneficiaries = Register(11, "there must be at least one beneficiary").In(InputValidation)

	// ErrUntrustedBeneficiary is returned when a distribution names an
	// address that is not registered or is disabled.
	ErrUntrustedBeneficiary = Register(12, "only trusted beneficiaries are valid").In(InputValidation)

	// ErrPercentageOutOfRange is returned for a split percentage outside
	// of 1..100.
	ErrPercentageOutOfRange = Register(13, "percentage must be between 1-100").In(InputValidation)

	// ErrPercentageSum is returned when split percentages do not sum up
	// to exactly 100.
	ErrPercentageSum = Register(14, "total percentage must be 100").In(InputValidation)

	// ErrNoInterestGenerated is returned when none of the pools generated
	// any interest that could be distributed.
	ErrNoInterestGenerated = Register(15, "no generated interest").In(EconomicPrecondition)

	// ErrInsufficientAmount is returned when an amount of currency is
	// insufficient, e.g. funds or generated interest.
	ErrInsufficientAmount = Register(16, "insufficient amount").In(EconomicPrecondition)

	// ErrTransfer is returned when moving funds to a beneficiary failed.
	ErrTransfer = Register(17, "transfer failed").In(ExternalFailure)

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(18, "an operation cannot be completed due to value overflow").In(InputValidation)

	// ErrModel is returned whenever a model is invalid and cannot be
	// persisted.
	ErrModel = Register(19, "invalid model")

	// ErrDatabase is returned when the underlying storage fails.
	ErrDatabase = Register(20, "database")

	// ErrIteratorDone is returned by an iterator when it has no more
	// elements.
	ErrIteratorDone = Register(21, "iterator done")

	// ErrHuman is returned when application reaches a code path which
	// should not ever be reached if the code was written as expected.
	ErrHuman = Register(22, "coding error")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Register returns an error instance that should be used as the base for
// creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may want to
// declare custom codes. This function ensures that no error code is used
// twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code:  code,
		desc:  description,
		class: Internal,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness. No two
// error instances should share the same error code.
var usedCodes = map[uint32]*Error{}

// Error represents a root error.
//
// Root errors categorize issues. Each instance created during the runtime
// should wrap one of the declared root errors, so that callers can branch
// deterministically on the reason of a failure.
type Error struct {
	code  uint32
	desc  string
	class Class
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the unique code this error was registered with.
func (e Error) Code() uint32 {
	return e.code
}

// Class returns the category this error belongs to.
func (e Error) Class() Class {
	return e.class
}

// In assigns this root error to given class. It is meant to be chained with
// Register during declaration.
func (e *Error) In(c Class) *Error {
	e.class = c
	return e
}

// New returns a new error. Returned instance is having the root cause set to
// this error. Below two lines are equal
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is check if given error instance is of a given kind/type. This involves
// unwrapping given error using the Cause method if available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with
	// a nil implementation of an error.
	if kind == nil {
		return isNilErr(err)
	}

	for {
		if err == kind {
			return true
		}

		// If this is a collection of errors, this function must return
		// true if at least one from the group match.
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				if kind.Is(e) {
					return true
				}
			}
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	switch v := reflect.ValueOf(err); v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// Wrap extends given error with an additional information.
//
// If err is nil, this returns nil, avoiding the need for an if statement when
// wrapping a error returned at the end of a function
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information.
//
// This function works like Wrap function with additional funtionality of
// formatting the input as specified.
func Wrapf(err error, format string, args ...interface{}) error {
	desc := fmt.Sprintf(format, args...)
	return Wrap(err, desc)
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the wrapped error with its stack trace when formatted with %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover captures a panic and stop its propagation. If panic happens it is
// transformed into a ErrPanic instance and assigned to given error. Call this
// function using defer in order to work as expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Redact replaces the description of a panic error with a generic message so
// that no internal details are shown to a caller.
func Redact(err error) error {
	if ErrPanic.Is(err) {
		return ErrPanic
	}
	return err
}

// causer is an interface implemented by an error that supports wrapping. Use
// it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}

// unpacker is implemented by errors that group more than one error.
type unpacker interface {
	Unpack() []error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}
