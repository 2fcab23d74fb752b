// Package argparse parses a command line against declared options, flags and
// positional parameters.
//
// Declarations bind a Config to a target; Parse then resolves the tokens in a
// fixed order (options, flags, unknown identifiers, positionals, leftovers)
// so that "-g4" is read as option g with value 4 before "-rGv" is read as
// three grouped flags. The first violation aborts the parse.
package argparse

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dzonerzy/go-argparse/internal/fuzzy"
)

// ParseState represents the current state of the parser state machine
type ParseState int

const (
	StateInit ParseState = iota
	StateOptions
	StateFlags
	StateUnknownCheck
	StateEndMarker
	StatePositionals
	StateLeftoverCheck
	StateComplete
	StateError
)

func (s ParseState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateOptions:
		return "options"
	case StateFlags:
		return "flags"
	case StateUnknownCheck:
		return "unknown-check"
	case StateEndMarker:
		return "end-marker"
	case StatePositionals:
		return "positionals"
	case StateLeftoverCheck:
		return "leftover-check"
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Parser holds the declarations and the token buffer of a single parse.
type Parser struct {
	args []string
	buf  *tokens

	options     []*operation
	flags       []*operation
	positionals []*operation
	used        []ID

	state           ParseState
	positionalCount int

	logger      *slog.Logger
	suggestions bool
	maxDistance int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger traces phases and consumed tokens at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSuggestions fills Error.Suggestion for unknown long options with the
// closest declared long identifier within maxDistance edits.
func WithSuggestions(maxDistance int) Option {
	return func(p *Parser) {
		p.suggestions = true
		p.maxDistance = maxDistance
	}
}

// New creates a parser for args, the command line without the program name.
func New(args []string, opts ...Option) *Parser {
	p := &Parser{
		args:        args,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDistance: 2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current parse state.
func (p *Parser) State() ParseState { return p.state }

// AddOption declares an option bound to value. Container values make a list
// option that may be repeated.
func (p *Parser) AddOption(value *Value, cfg Config) error {
	if err := p.checkOpen("options"); err != nil {
		return err
	}
	if err := p.checkIdentifiers(cfg); err != nil {
		return err
	}
	kind := opScalarOption
	if value.IsContainer() {
		kind = opContainerOption
	}
	p.options = append(p.options, &operation{kind: kind, cfg: cfg, value: value})
	p.used = append(p.used, cfg.ID())
	return nil
}

// AddFlag declares a boolean flag. A flag that is already true stays true.
func (p *Parser) AddFlag(value *bool, cfg Config) error {
	if err := p.checkOpen("flags"); err != nil {
		return err
	}
	if err := p.checkIdentifiers(cfg); err != nil {
		return err
	}
	p.flags = append(p.flags, &operation{kind: opFlag, cfg: cfg, flag: value})
	p.used = append(p.used, cfg.ID())
	return nil
}

// AddPositional declares the next positional parameter. Positionals are
// always required; a container positional takes all remaining tokens and
// must be declared last.
func (p *Parser) AddPositional(value *Value, cfg Config) error {
	if err := p.checkOpen("positional options"); err != nil {
		return err
	}
	if err := p.checkPositional(cfg); err != nil {
		return err
	}
	kind := opScalarPositional
	if value.IsContainer() {
		kind = opContainerPositional
	}
	p.positionals = append(p.positionals, &operation{kind: kind, cfg: cfg, value: value})
	return nil
}

// Parse resolves the command line into the declared targets.
//
// Targets touched before a failure keep the values written so far; callers
// must not rely on them when Parse returns an error.
func (p *Parser) Parse() error {
	if p.state != StateInit {
		return designError("The function parse() must only be called once!")
	}
	p.buf = newTokens(p.args)
	defer func() {
		p.buf.release()
		p.buf = nil
	}()

	phases := []struct {
		state ParseState
		run   func() error
	}{
		{StateOptions, func() error { return p.runAll(p.options) }},
		{StateFlags, func() error { return p.runAll(p.flags) }},
		{StateUnknownCheck, p.checkUnknown},
		{StateEndMarker, p.stripEndMarker},
		{StatePositionals, func() error { return p.runAll(p.positionals) }},
		{StateLeftoverCheck, p.checkLeftover},
	}

	for _, phase := range phases {
		p.state = phase.state
		p.logger.Debug("parse phase", "state", phase.state.String())
		if err := phase.run(); err != nil {
			p.state = StateError
			p.logger.Debug("parse failed", "error", err.Error())
			return err
		}
	}
	p.state = StateComplete
	return nil
}

func (p *Parser) runAll(ops []*operation) error {
	for _, op := range ops {
		if err := p.run(op); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) checkUnknown() error {
	err := p.buf.unknownIdentifier()
	if err == nil {
		return nil
	}
	if p.suggestions && strings.HasPrefix(err.Option, "--") {
		err.Suggestion = p.suggest(err.Option)
	}
	return err
}

func (p *Parser) suggest(token string) string {
	name, _, _ := strings.Cut(strings.TrimPrefix(token, "--"), "=")
	candidates := make([]string, 0, len(p.used))
	for _, id := range p.used {
		if id.HasLong() {
			candidates = append(candidates, id.Long)
		}
	}
	best := fuzzy.FindBest(name, candidates, p.maxDistance)
	if best == "" {
		return ""
	}
	return "Did you mean '--" + best + "'?"
}

func (p *Parser) stripEndMarker() error {
	if p.buf.stripEndOfOptions() {
		p.logger.Debug("end of options removed", "index", p.buf.end)
	}
	return nil
}

func (p *Parser) checkLeftover() error {
	if rest := p.buf.remaining(); len(rest) > 0 {
		return &Error{
			Kind:    ErrorKindTooManyArguments,
			Message: "Too many arguments provided. Please see -h/--help for more information.",
			Option:  rest[0],
		}
	}
	return nil
}

// IsSet reports whether id occurred on the command line before "--". The id
// must be one that was declared, and Parse must have been called.
func (p *Parser) IsSet(id ID) (bool, error) {
	if p.state == StateInit {
		return false, designError("You can only ask which options have been set after calling the function `parse()`.")
	}
	if id.HasLong() && len([]rune(id.Long)) == 1 {
		return false, designError("Long option identifiers must be longer than one character! If %q is meant to be a short identifier, please pass it as a rune.", id.Long)
	}
	full, ok := p.declared(id)
	if id.Empty() || !ok {
		return false, designError("You can only ask for option identifiers that you added with AddOption() or AddFlag() before.")
	}

	// Either form of the declaration counts: asking for "loo" is true after "-l".
	for _, arg := range p.args {
		if arg == endOfOptions {
			break
		}
		if full.Matches(arg) {
			return true, nil
		}
	}
	return false, nil
}

// declared returns the full declared ID sharing a form with id.
func (p *Parser) declared(id ID) (ID, bool) {
	for _, used := range p.used {
		if used.Overlaps(id) {
			return used, true
		}
	}
	return ID{}, false
}

// Entity is the read-only metadata of one declaration, for help renderers.
type Entity struct {
	ID          ID
	Description string
	Required    bool
	TypeName    string
	Container   bool
	Flag        bool
	Position    int // 1-based for positionals, 0 otherwise
}

// Metadata lists declarations: options, then flags, then positionals, each in
// declaration order.
func (p *Parser) Metadata() []Entity {
	out := make([]Entity, 0, len(p.options)+len(p.flags)+len(p.positionals))
	for _, op := range p.options {
		out = append(out, Entity{
			ID:          op.cfg.ID(),
			Description: op.cfg.Description,
			Required:    op.cfg.Required,
			TypeName:    op.value.Kind().Name(),
			Container:   op.value.IsContainer(),
		})
	}
	for _, op := range p.flags {
		out = append(out, Entity{
			ID:          op.cfg.ID(),
			Description: op.cfg.Description,
			TypeName:    "bool",
			Flag:        true,
		})
	}
	for i, op := range p.positionals {
		out = append(out, Entity{
			Description: op.cfg.Description,
			Required:    true,
			TypeName:    op.value.Kind().Name(),
			Container:   op.value.IsContainer(),
			Position:    i + 1,
		})
	}
	return out
}
