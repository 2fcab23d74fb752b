package argparse

import (
	"fmt"
	"strings"
)

// ErrorKind represents error categories produced while declaring or parsing.
// The kinds drive exit-code mapping (see ExitCode).
type ErrorKind string

const (
	ErrorKindTooFewArguments             ErrorKind = "too_few_arguments"
	ErrorKindTooManyArguments            ErrorKind = "too_many_arguments"
	ErrorKindUnknownOption               ErrorKind = "unknown_option"
	ErrorKindUnknownFlags                ErrorKind = "unknown_flags"
	ErrorKindOptionDeclaredMultipleTimes ErrorKind = "option_declared_multiple_times"
	ErrorKindRequiredOptionMissing       ErrorKind = "required_option_missing"
	ErrorKindParse                       ErrorKind = "parse_error"
	ErrorKindOverflow                    ErrorKind = "overflow_error"
	ErrorKindValidation                  ErrorKind = "validation_error"
	ErrorKindDesign                      ErrorKind = "design_error"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrTooFewArguments             = &Error{Kind: ErrorKindTooFewArguments}
	ErrTooManyArguments            = &Error{Kind: ErrorKindTooManyArguments}
	ErrUnknownOption               = &Error{Kind: ErrorKindUnknownOption}
	ErrUnknownFlags                = &Error{Kind: ErrorKindUnknownFlags}
	ErrOptionDeclaredMultipleTimes = &Error{Kind: ErrorKindOptionDeclaredMultipleTimes}
	ErrRequiredOptionMissing       = &Error{Kind: ErrorKindRequiredOptionMissing}
	ErrParse                       = &Error{Kind: ErrorKindParse}
	ErrOverflow                    = &Error{Kind: ErrorKindOverflow}
	ErrValidation                  = &Error{Kind: ErrorKindValidation}
	ErrDesign                      = &Error{Kind: ErrorKindDesign}
)

// Error is returned by declaration and parsing.
type Error struct {
	Kind       ErrorKind
	Message    string
	Option     string // Identifier or positional name involved, if any
	Suggestion string // Closest declared long identifier for unknown options
	Cause      error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause (a *ConversionError or a validator error).
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsUserError reports whether the error was caused by the command line rather
// than by the declarations.
func (e *Error) IsUserError() bool {
	return e.Kind != ErrorKindDesign
}

// newError creates a new Error with the given kind and message
func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func designError(format string, args ...any) *Error {
	return newError(ErrorKindDesign, fmt.Sprintf(format, args...))
}

// ConversionReason tells why a raw token could not be converted.
type ConversionReason int

const (
	// ConversionInvalid means the token is not a value of the target type.
	ConversionInvalid ConversionReason = iota
	// ConversionOverflow means the token is numeric but out of the target's range.
	ConversionOverflow
)

// ConversionError is the result of a failed coercion. It never escapes a parse
// on its own; the parser wraps it into an *Error naming the option.
type ConversionError struct {
	Reason   ConversionReason
	Input    string
	TypeName string
	Min, Max string // Representable range, set for overflow
	Detail   string // Full replacement text, used by enumerations
}

func (e *ConversionError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Reason == ConversionOverflow:
		return "Numeric argument " + e.Input + " is not in the valid range [" + e.Min + "," + e.Max + "]."
	default:
		return "Argument " + e.Input + " could not be parsed as type " + e.TypeName + "."
	}
}

// conversionFailed wraps a coercion failure for the named option or positional.
func conversionFailed(name string, cerr *ConversionError) *Error {
	kind := ErrorKindParse
	if cerr.Reason == ConversionOverflow {
		kind = ErrorKindOverflow
	}
	return &Error{
		Kind:    kind,
		Message: "Value parse failed for " + name + ": " + cerr.Error(),
		Option:  name,
		Cause:   cerr,
	}
}

// validationFailed wraps a validator failure; subject is e.g. "option -i/--int".
func validationFailed(subject, name string, err error) *Error {
	return &Error{
		Kind:    ErrorKindValidation,
		Message: "Validation failed for " + subject + ": " + err.Error(),
		Option:  name,
		Cause:   err,
	}
}

const escapeHint = ". In case this is meant to be a non-option/argument/parameter, "

func unknownFlagsError(token string) *Error {
	var b strings.Builder
	b.WriteString("Unknown flags ")
	b.WriteString(token)
	b.WriteString(escapeHint)
	b.WriteString("please specify the start of arguments with '--'. See -h/--help for program information.")
	return &Error{Kind: ErrorKindUnknownFlags, Message: b.String(), Option: token}
}

func unknownOptionError(token string) *Error {
	var b strings.Builder
	b.WriteString("Unknown option ")
	b.WriteString(token)
	b.WriteString(escapeHint)
	b.WriteString("please specify the start of non-options with '--'. See -h/--help for program information.")
	return &Error{Kind: ErrorKindUnknownOption, Message: b.String(), Option: token}
}
