/*
Package errors implements the error taxonomy of the donation engine.

Every failure returned by an extension wraps one of the root errors declared
in this package (or registered by an extension with Register). Root errors
carry a unique code and belong to a Class, so that callers can tell input
validation problems apart from state conflicts, missing authorization,
economic preconditions and external transfer failures.

Use ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation to
attach a stack trace. If you wrap multiple times, only the first wrap records
the stack trace. Do not declare `var ErrFoo = errors.ErrInput.New("foo")` as
a global, or you will get a useless stack trace.

Test for a reason with the Is method of the root error:

	if errors.ErrNotFound.Is(err) {
		...
	}

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
