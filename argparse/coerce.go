package argparse

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// KindTag selects the coercion applied to a raw token.
type KindTag int

const (
	KindString KindTag = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindEnum
)

// Kind describes the value type of a target. Container targets carry the Kind
// of their element and set Container.
type Kind struct {
	Tag       KindTag
	Bits      int // Width for KindInt, KindUint and KindFloat
	Container bool
	enum      *enumTable
}

// Name returns the human readable type name used in diagnostics.
func (k Kind) Name() string {
	var name string
	switch k.Tag {
	case KindString:
		name = "string"
	case KindBool:
		name = "bool"
	case KindInt:
		name = fmt.Sprintf("signed %d bit integer", k.Bits)
	case KindUint:
		name = fmt.Sprintf("unsigned %d bit integer", k.Bits)
	case KindFloat:
		if k.Bits == 32 {
			name = "float"
		} else {
			name = "double"
		}
	case KindEnum:
		name = "enumeration"
	default:
		name = "unknown"
	}
	if k.Container {
		return "list of " + name
	}
	return name
}

// element returns the Kind of a single value for containers.
func (k Kind) element() Kind {
	k.Container = false
	return k
}

// coerce converts raw into a value of k's element type. Integers come back as
// int64 or uint64, floats as float64, enumerations as their mapped value.
// coerce never touches the token buffer.
func coerce(k Kind, raw string) (any, *ConversionError) {
	switch k.Tag {
	case KindString:
		return raw, nil
	case KindBool:
		return coerceBool(k, raw)
	case KindInt:
		return coerceInt(k, raw)
	case KindUint:
		return coerceUint(k, raw)
	case KindFloat:
		return coerceFloat(k, raw)
	case KindEnum:
		return coerceEnum(k, raw)
	default:
		return nil, invalid(k, raw)
	}
}

func invalid(k Kind, raw string) *ConversionError {
	return &ConversionError{Reason: ConversionInvalid, Input: raw, TypeName: k.element().Name()}
}

func overflow(k Kind, raw, lo, hi string) *ConversionError {
	return &ConversionError{
		Reason:   ConversionOverflow,
		Input:    raw,
		TypeName: k.element().Name(),
		Min:      lo,
		Max:      hi,
	}
}

func coerceBool(k Kind, raw string) (any, *ConversionError) {
	switch raw {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return nil, invalid(k, raw)
}

// plainDecimal rejects the forms strconv accepts beyond an optional minus
// sign followed by digits.
func plainDecimal(raw string, signed bool) bool {
	if signed && strings.HasPrefix(raw, "-") {
		raw = raw[1:]
	}
	if raw == "" {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

func coerceInt(k Kind, raw string) (any, *ConversionError) {
	if !plainDecimal(raw, true) {
		return nil, invalid(k, raw)
	}
	v, err := strconv.ParseInt(raw, 10, k.Bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			lo := int64(-1) << (k.Bits - 1)
			hi := int64(uint64(1)<<(k.Bits-1) - 1)
			return nil, overflow(k, raw, strconv.FormatInt(lo, 10), strconv.FormatInt(hi, 10))
		}
		return nil, invalid(k, raw)
	}
	return v, nil
}

func coerceUint(k Kind, raw string) (any, *ConversionError) {
	if !plainDecimal(raw, false) {
		return nil, invalid(k, raw)
	}
	v, err := strconv.ParseUint(raw, 10, k.Bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			hi := uint64(math.MaxUint64) >> (64 - k.Bits)
			return nil, overflow(k, raw, "0", strconv.FormatUint(hi, 10))
		}
		return nil, invalid(k, raw)
	}
	return v, nil
}

// plainFloat accepts an optional minus sign followed by inf, infinity, nan or
// a decimal mantissa with an optional exponent. It reports whether the
// mantissa has a non-zero digit.
func plainFloat(raw string) (ok, nonZero bool) {
	raw = strings.TrimPrefix(raw, "-")
	switch strings.ToLower(raw) {
	case "inf", "infinity", "nan":
		return true, false
	}

	i, digits, dot := 0, 0, false
scan:
	for ; i < len(raw); i++ {
		switch c := raw[i]; {
		case c >= '0' && c <= '9':
			digits++
			if c != '0' {
				nonZero = true
			}
		case c == '.' && !dot:
			dot = true
		default:
			break scan
		}
	}
	if digits == 0 {
		return false, false
	}
	if i == len(raw) {
		return true, nonZero
	}
	if raw[i] != 'e' && raw[i] != 'E' {
		return false, false
	}
	exp := raw[i+1:]
	if strings.HasPrefix(exp, "+") || strings.HasPrefix(exp, "-") {
		exp = exp[1:]
	}
	return plainDecimal(exp, false), nonZero
}

func coerceFloat(k Kind, raw string) (any, *ConversionError) {
	ok, nonZero := plainFloat(raw)
	if !ok {
		return nil, invalid(k, raw)
	}
	v, err := strconv.ParseFloat(raw, k.Bits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, invalid(k, raw)
	}
	// Underflow to zero is out of range as well.
	if err != nil || (v == 0 && nonZero) {
		hi := math.MaxFloat64
		if k.Bits == 32 {
			hi = math.MaxFloat32
		}
		return nil, overflow(k, raw,
			strconv.FormatFloat(-hi, 'g', -1, k.Bits), strconv.FormatFloat(hi, 'g', -1, k.Bits))
	}
	return v, nil
}

func coerceEnum(k Kind, raw string) (any, *ConversionError) {
	if v, ok := k.enum.lookup(raw); ok {
		return v.Interface(), nil
	}
	return nil, &ConversionError{
		Reason:   ConversionInvalid,
		Input:    raw,
		TypeName: k.element().Name(),
		Detail:   "You have chosen an invalid input value: " + raw + ". Please use one of: " + k.enum.keys(),
	}
}

type enumEntry struct {
	name  string
	value reflect.Value
}

// enumTable is a name to value mapping with a fixed, reproducible key order:
// by value when the value type is ordered, then by name.
type enumTable struct {
	entries []enumEntry
}

func newEnumTable(names map[string]reflect.Value) *enumTable {
	t := &enumTable{entries: make([]enumEntry, 0, len(names))}
	for name, v := range names {
		t.entries = append(t.entries, enumEntry{name: name, value: v})
	}
	sort.Slice(t.entries, func(i, j int) bool {
		a, b := t.entries[i], t.entries[j]
		if c, ok := compareOrdered(a.value, b.value); ok && c != 0 {
			return c < 0
		}
		return a.name < b.name
	})
	return t
}

func (t *enumTable) lookup(name string) (reflect.Value, bool) {
	for _, e := range t.entries {
		if e.name == name {
			return e.value, true
		}
	}
	return reflect.Value{}, false
}

// keys renders "[a, b, c]".
func (t *enumTable) keys() string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// compareOrdered compares two values of an ordered basic kind. ok is false for
// kinds without a total order.
func compareOrdered(a, b reflect.Value) (c int, ok bool) {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp3(a.Int() < b.Int(), a.Int() > b.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp3(a.Uint() < b.Uint(), a.Uint() > b.Uint()), true
	case reflect.Float32, reflect.Float64:
		return cmp3(a.Float() < b.Float(), a.Float() > b.Float()), true
	case reflect.String:
		return strings.Compare(a.String(), b.String()), true
	default:
		return 0, false
	}
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	default:
		return 0
	}
}
