package argparse

import (
	"slices"
	"unicode"
)

// Config is the declaration record of an option, flag or positional.
// Positionals must leave ShortID and LongID empty.
type Config struct {
	ShortID     rune
	LongID      string
	Description string
	Required    bool
	Validator   Validator
}

// ID returns the identifier pair of the declaration.
func (c Config) ID() ID {
	return ID{Short: c.ShortID, Long: c.LongID}
}

// Identifiers owned by the help/version layer around the parser.
var (
	reservedShort = []rune{'h'}
	reservedLong  = []string{"help", "hh", "advanced-help", "export-help", "version", "copyright"}
)

// checkIdentifiers verifies the identifiers of a new option or flag.
func (p *Parser) checkIdentifiers(cfg Config) error {
	id := cfg.ID()
	if id.Empty() {
		return designError("Option Identifiers cannot both be empty.")
	}
	if id.HasShort() {
		if !validShort(id.Short) {
			return designError("Option identifiers may only contain alphanumeric characters, '_', '-', or '@', but %q is not valid.", id.Short)
		}
		if slices.Contains(reservedShort, id.Short) {
			return designError("Option identifier '%c' was already used before.", id.Short)
		}
	}
	if id.HasLong() {
		if len([]rune(id.Long)) == 1 {
			return designError("Long IDs must be either empty, or longer than one character.")
		}
		if !validLong(id.Long) {
			return designError("Option identifiers may only contain alphanumeric characters, '_', '-', or '@', but %q is not valid.", id.Long)
		}
		if slices.Contains(reservedLong, id.Long) {
			return designError("Option identifier '%s' was already used before.", id.Long)
		}
	}
	for _, used := range p.used {
		if used.HasShort() && id.HasShort() && used.Short == id.Short {
			return designError("Option identifier '%c' was already used before.", id.Short)
		}
		if used.HasLong() && id.HasLong() && used.Long == id.Long {
			return designError("Option identifier '%s' was already used before.", id.Long)
		}
	}
	return nil
}

func validIDRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '@'
}

func validShort(r rune) bool {
	return r != '-' && validIDRune(r)
}

func validLong(name string) bool {
	if name[0] == '-' {
		return false
	}
	for _, r := range name {
		if !validIDRune(r) {
			return false
		}
	}
	return true
}

// checkPositional verifies a new positional declaration.
func (p *Parser) checkPositional(cfg Config) error {
	if !cfg.ID().Empty() {
		return designError("Positional options are identified by their position on the command line. Do not set their short or long ids.")
	}
	if n := len(p.positionals); n > 0 && p.positionals[n-1].kind == opContainerPositional {
		return designError("You added a positional option with a list value before so you cannot add any other positional options.")
	}
	return nil
}

// checkOpen rejects declarations once parsing has started.
func (p *Parser) checkOpen(what string) error {
	if p.state != StateInit {
		return designError("You cannot add %s after parse() has been called.", what)
	}
	return nil
}
