package rebel

import "errors"

// ErrMixedArguments is returned when a statement receives positional and named arguments together.
var ErrMixedArguments = errors.New("rebel: cannot mix positional and named arguments in query")

// ErrUnknownParameter is returned when a named placeholder has no value.
// The returned error names the placeholder, use errors.Is to match it.
var ErrUnknownParameter = errors.New("rebel: unknown parameter")

// ErrNotInsideTransaction is returned by Commit and Rollback when no transaction is open.
var ErrNotInsideTransaction = errors.New("rebel: trying to perform an operation that needs to be inside transaction")
