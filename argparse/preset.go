package argparse

import (
	"sort"
	"strings"
)

// Preset seeds declared options and flags with values from another source,
// typically a config file, before the command line is parsed. Keys are long
// identifiers. Values go through the same conversion and validation as the
// command line; occurrences on the command line later override them.
func (p *Parser) Preset(values map[string][]string) error {
	if p.state != StateInit {
		return designError("Presets must be applied before parse() is called.")
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := p.presetOne(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) presetOne(key string, raw []string) error {
	name := "--" + key
	if op := findByLong(p.flags, key); op != nil {
		if len(raw) != 1 {
			return presetCount(name)
		}
		v, cerr := coerce(Kind{Tag: KindBool}, raw[0])
		if cerr != nil {
			return conversionFailed(name, cerr)
		}
		*op.flag = v.(bool)
		return nil
	}

	op := findByLong(p.options, key)
	if op == nil {
		return &Error{
			Kind:    ErrorKindUnknownOption,
			Message: "Unknown option " + name + " in preset. Known options: " + p.longIDs() + ".",
			Option:  name,
		}
	}
	if op.kind == opScalarOption && len(raw) != 1 {
		return presetCount(name)
	}

	op.value.reset()
	for _, r := range raw {
		if _, cerr := op.value.set(r); cerr != nil {
			return conversionFailed(name, cerr)
		}
	}
	op.preset = true
	p.logger.Debug("preset applied", "option", name, "values", len(raw))
	return p.validateOption(op)
}

func presetCount(name string) *Error {
	return &Error{
		Kind:    ErrorKindOptionDeclaredMultipleTimes,
		Message: "Option " + name + " is no list/container but the preset holds a number of values other than one.",
		Option:  name,
	}
}

func findByLong(ops []*operation, long string) *operation {
	if long == "" {
		return nil
	}
	for _, op := range ops {
		if op.cfg.LongID == long {
			return op
		}
	}
	return nil
}

func (p *Parser) longIDs() string {
	var names []string
	for _, id := range p.used {
		if id.HasLong() {
			names = append(names, "--"+id.Long)
		}
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}
