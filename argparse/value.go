package argparse

import (
	"fmt"
	"reflect"
)

// Scalar is the set of types a target can be bound to with Var and Slice.
type Scalar interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Value is a bound target: the storage parsed values are written to and the
// Kind used to convert them.
type Value struct {
	kind Kind
	dst  reflect.Value
}

// Var binds a scalar target.
func Var[T Scalar](ptr *T) *Value {
	dst := reflect.ValueOf(ptr).Elem()
	return &Value{kind: kindOf(dst.Type()), dst: dst}
}

// Slice binds a container target. Every occurrence appends one element.
func Slice[T Scalar](ptr *[]T) *Value {
	dst := reflect.ValueOf(ptr).Elem()
	k := kindOf(dst.Type().Elem())
	k.Container = true
	return &Value{kind: k, dst: dst}
}

// Enum binds a scalar target whose values are looked up by name.
func Enum[T comparable](ptr *T, names map[string]T) *Value {
	return &Value{kind: enumKind(names, false), dst: reflect.ValueOf(ptr).Elem()}
}

// EnumSlice binds a container target whose elements are looked up by name.
func EnumSlice[T comparable](ptr *[]T, names map[string]T) *Value {
	return &Value{kind: enumKind(names, true), dst: reflect.ValueOf(ptr).Elem()}
}

func enumKind[T comparable](names map[string]T, container bool) Kind {
	table := make(map[string]reflect.Value, len(names))
	for name, v := range names {
		table[name] = reflect.ValueOf(v)
	}
	return Kind{Tag: KindEnum, Container: container, enum: newEnumTable(table)}
}

func kindOf(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.String:
		return Kind{Tag: KindString}
	case reflect.Bool:
		return Kind{Tag: KindBool}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Kind{Tag: KindInt, Bits: t.Bits()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Kind{Tag: KindUint, Bits: t.Bits()}
	case reflect.Float32, reflect.Float64:
		return Kind{Tag: KindFloat, Bits: t.Bits()}
	}
	panic(fmt.Sprintf("argparse: unsupported target type %s", t))
}

// Kind returns the value kind of the target.
func (v *Value) Kind() Kind { return v.kind }

// IsContainer reports whether the target accumulates values.
func (v *Value) IsContainer() bool { return v.kind.Container }

// Get returns the current content of the target.
func (v *Value) Get() any { return v.dst.Interface() }

func (v *Value) elemType() reflect.Type {
	if v.kind.Container {
		return v.dst.Type().Elem()
	}
	return v.dst.Type()
}

// set converts raw and stores it, appending for containers. It returns the
// stored element for validation.
func (v *Value) set(raw string) (any, *ConversionError) {
	parsed, cerr := coerce(v.kind, raw)
	if cerr != nil {
		return nil, cerr
	}
	rv := reflect.ValueOf(parsed).Convert(v.elemType())
	if v.kind.Container {
		v.dst.Set(reflect.Append(v.dst, rv))
	} else {
		v.dst.Set(rv)
	}
	return rv.Interface(), nil
}

// reset empties a container. The previous backing array is left untouched so
// a pre-seeded default slice shared with the caller is not overwritten.
func (v *Value) reset() {
	if v.kind.Container {
		v.dst.Set(reflect.Zero(v.dst.Type()))
	}
}

// elements returns the stored values one by one; a scalar yields itself.
func (v *Value) elements() []any {
	if !v.kind.Container {
		return []any{v.dst.Interface()}
	}
	out := make([]any, v.dst.Len())
	for i := range out {
		out[i] = v.dst.Index(i).Interface()
	}
	return out
}
