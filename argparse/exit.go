package argparse

import "errors"

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success         int // default: 0
	GeneralError    int // default: 1
	MisusageError   int // default: 2
	ValidationError int // default: 3
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ValidationError: 3}
}

// ExitCodes maps parse errors to process exit codes.
type ExitCodes struct {
	byKind   map[ErrorKind]int
	defaults ExitCodeDefaults
}

// NewExitCodes returns a mapping with value errors on ValidationError,
// declaration errors on GeneralError and every other command line error on
// MisusageError.
func NewExitCodes() *ExitCodes {
	e := &ExitCodes{byKind: make(map[ErrorKind]int), defaults: defaultExitDefaults()}
	e.Default(e.defaults)
	return e
}

// Define overrides the code for one error kind.
func (e *ExitCodes) Define(kind ErrorKind, code int) *ExitCodes {
	e.byKind[kind] = code
	return e
}

// Default replaces the default codes and re-derives the per-kind mapping.
// Overrides made with Define before this call are lost.
func (e *ExitCodes) Default(d ExitCodeDefaults) *ExitCodes {
	e.defaults = d
	for _, kind := range []ErrorKind{
		ErrorKindTooFewArguments, ErrorKindTooManyArguments, ErrorKindUnknownOption,
		ErrorKindUnknownFlags, ErrorKindOptionDeclaredMultipleTimes, ErrorKindRequiredOptionMissing,
	} {
		e.byKind[kind] = d.MisusageError
	}
	e.byKind[ErrorKindParse] = d.ValidationError
	e.byKind[ErrorKindOverflow] = d.ValidationError
	e.byKind[ErrorKindValidation] = d.ValidationError
	e.byKind[ErrorKindDesign] = d.GeneralError
	return e
}

// Resolve converts an error to an exit code. Errors that are not *Error map
// to GeneralError.
func (e *ExitCodes) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}
	var perr *Error
	if errors.As(err, &perr) {
		if code, ok := e.byKind[perr.Kind]; ok {
			return code
		}
	}
	return e.defaults.GeneralError
}

var defaultExitCodes = NewExitCodes()

// ExitCode resolves err with the default mapping.
func ExitCode(err error) int {
	return defaultExitCodes.Resolve(err)
}
