package argparse

import (
	"strconv"
	"strings"
)

// opKind tags a deferred retrieval operation.
type opKind int

const (
	opScalarOption opKind = iota
	opContainerOption
	opFlag
	opScalarPositional
	opContainerPositional
)

func (k opKind) String() string {
	switch k {
	case opScalarOption:
		return "scalar option"
	case opContainerOption:
		return "container option"
	case opFlag:
		return "flag"
	case opScalarPositional:
		return "scalar positional"
	case opContainerPositional:
		return "container positional"
	default:
		return "unknown"
	}
}

// operation binds a declaration to its target. Flags use flag, everything
// else uses value.
type operation struct {
	kind   opKind
	cfg    Config
	value  *Value
	flag   *bool
	preset bool // a preset value satisfies Required
}

// run dispatches one retrieval against the parser's token buffer.
func (p *Parser) run(op *operation) error {
	switch op.kind {
	case opScalarOption:
		return p.scalarOption(op)
	case opContainerOption:
		return p.containerOption(op)
	case opFlag:
		p.flagValue(op)
		return nil
	case opScalarPositional:
		return p.scalarPositional(op)
	case opContainerPositional:
		return p.containerPositional(op)
	default:
		return designError("unknown operation %d", op.kind)
	}
}

// scalarOption retrieves an option that may be given once, by either form.
func (p *Parser) scalarOption(op *operation) error {
	id := op.cfg.ID()

	shortSet, err := p.optionByForm(op, id.shortOnly())
	if err != nil {
		return err
	}
	longSet, err := p.optionByForm(op, id.longOnly())
	if err != nil {
		return err
	}

	if shortSet && longSet {
		return &Error{
			Kind:    ErrorKindOptionDeclaredMultipleTimes,
			Message: "Option " + id.String() + " is no list/container but specified multiple times",
			Option:  id.String(),
		}
	}
	if !shortSet && !longSet {
		return p.missing(op)
	}
	return p.validateOption(op)
}

// optionByForm retrieves the value given with one spelling of the identifier
// and rejects a second occurrence of that same spelling.
func (p *Parser) optionByForm(op *operation, f form) (bool, error) {
	if f.id.Empty() {
		return false, nil
	}
	i := p.buf.find(0, f.id)
	if i == p.buf.end {
		return false, nil
	}

	raw, last, err := p.buf.extract(i, f)
	if err != nil {
		return true, err
	}
	if _, cerr := op.value.set(raw); cerr != nil {
		return true, conversionFailed(f.prefix, cerr)
	}
	p.logger.Debug("option consumed", "option", f.prefix, "value", raw)

	if p.buf.find(last, f.id) != p.buf.end {
		return true, &Error{
			Kind:    ErrorKindOptionDeclaredMultipleTimes,
			Message: "Option " + f.prefix + " is no list/container but declared multiple times.",
			Option:  f.prefix,
		}
	}
	return true, nil
}

// containerOption collects every occurrence, by either form, in token order.
func (p *Parser) containerOption(op *operation) error {
	id := op.cfg.ID()
	seen := false

	for i := p.buf.find(0, id); i != p.buf.end; {
		f := id.longOnly()
		if id.HasShort() && strings.HasPrefix(p.buf.args[i], id.ShortForm()) {
			f = id.shortOnly()
		}
		if !seen {
			op.value.reset()
			seen = true
		}

		raw, last, err := p.buf.extract(i, f)
		if err != nil {
			return err
		}
		if _, cerr := op.value.set(raw); cerr != nil {
			return conversionFailed(f.prefix, cerr)
		}
		p.logger.Debug("option consumed", "option", f.prefix, "value", raw)
		i = p.buf.find(last, id)
	}

	if !seen {
		return p.missing(op)
	}
	return p.validateOption(op)
}

func (p *Parser) missing(op *operation) error {
	if !op.cfg.Required || op.preset {
		return nil
	}
	name := op.cfg.ID().String()
	return &Error{
		Kind:    ErrorKindRequiredOptionMissing,
		Message: "Option " + name + " is required but not set.",
		Option:  name,
	}
}

func (p *Parser) validateOption(op *operation) error {
	if op.cfg.Validator == nil {
		return nil
	}
	name := op.cfg.ID().String()
	for _, v := range op.value.elements() {
		if err := op.cfg.Validator.Validate(v); err != nil {
			return validationFailed("option "+name, name, err)
		}
	}
	return nil
}

// flagValue ORs the flag's short form, long form and current value. Both
// forms are always looked up so "-v --verbose" leaves nothing behind.
func (p *Parser) flagValue(op *operation) {
	id := op.cfg.ID()
	short := p.buf.takeShortFlag(id.Short)
	long := p.buf.takeLongFlag(id.Long)
	if short || long {
		p.logger.Debug("flag consumed", "flag", id.String())
	}
	*op.flag = short || long || *op.flag
}

func positionalName(n int) string {
	return "positional option " + strconv.Itoa(n)
}

func (p *Parser) notEnoughPositionals() *Error {
	return &Error{
		Kind: ErrorKindTooFewArguments,
		Message: "Not enough positional arguments provided (Need at least " +
			strconv.Itoa(len(p.positionals)) + "). See -h/--help for more information.",
	}
}

// scalarPositional consumes the first remaining token.
func (p *Parser) scalarPositional(op *operation) error {
	p.positionalCount++
	i := p.buf.nextLive(0)
	if i < 0 {
		return p.notEnoughPositionals()
	}
	return p.consumePositional(op, i)
}

// containerPositional consumes every remaining token, one element at a time.
func (p *Parser) containerPositional(op *operation) error {
	p.positionalCount++
	i := p.buf.nextLive(0)
	if i < 0 {
		return p.notEnoughPositionals()
	}

	op.value.reset()
	for {
		if err := p.consumePositional(op, i); err != nil {
			return err
		}
		if i = p.buf.nextLive(i + 1); i < 0 {
			return nil
		}
		p.positionalCount++
	}
}

func (p *Parser) consumePositional(op *operation, i int) error {
	name := positionalName(p.positionalCount)
	raw := p.buf.args[i]

	v, cerr := op.value.set(raw)
	if cerr != nil {
		return conversionFailed(name, cerr)
	}
	p.buf.consume(i)
	p.logger.Debug("positional consumed", "position", p.positionalCount, "value", raw)

	if op.cfg.Validator != nil {
		if err := op.cfg.Validator.Validate(v); err != nil {
			return validationFailed(name, name, err)
		}
	}
	return nil
}
