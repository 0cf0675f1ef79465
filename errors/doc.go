/*
Package errors implements the error handling used by piggybank.

Every error returned to a client wraps a registered root error. The root
error carries the ABCI code, so a client can tell an invalid amount from a
passed deadline without parsing messages.

Reuse the root errors declared in this package where they fit. Extensions
declare their own with Register(code, description) in a package level var
block, for example the goal and vault errors in x/goal and x/timelock.

Create errors with ErrXyz.New("...") or errors.Wrap(err, "...") at the point
of failure so that a stack trace is attached. Only the innermost wrap records
it.

	%s  prints the error message
	%+v prints the message followed by the stack trace
*/
package errors
