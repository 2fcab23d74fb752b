package argparse

import (
	"cmp"
	"fmt"
	"os"
	"regexp"
)

// Validator checks a parsed value. For container targets it is called once
// per element. A non-nil error rejects the value; the parser prefixes the
// message with the option or positional name.
type Validator interface {
	Validate(value any) error
}

// ValidatorFunc adapts a typed function to a Validator.
type ValidatorFunc[T any] func(T) error

// Validate implements Validator.
func (f ValidatorFunc[T]) Validate(value any) error {
	v, ok := value.(T)
	if !ok {
		var zero T
		return fmt.Errorf("validator expects %T, got %T", zero, value)
	}
	return f(v)
}

// Chain runs validators in order and returns the first failure.
func Chain(validators ...Validator) Validator {
	return chain(validators)
}

type chain []Validator

func (c chain) Validate(value any) error {
	for _, v := range c {
		if v == nil {
			continue
		}
		if err := v.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRange accepts values in the closed interval [lo, hi].
func ValidateRange[T cmp.Ordered](lo, hi T) ValidatorFunc[T] {
	return func(value T) error {
		if value < lo || value > hi {
			return fmt.Errorf("Value %v is not in range [%v,%v].", value, lo, hi)
		}
		return nil
	}
}

// ValidateOneOf ensures the value is one of the allowed values
func ValidateOneOf[T comparable](values ...T) ValidatorFunc[T] {
	return func(value T) error {
		for _, v := range values {
			if value == v {
				return nil
			}
		}
		return fmt.Errorf("Value %v is not one of %v.", value, values)
	}
}

// ValidateRegex validates strings against a regex pattern. The pattern must
// match the whole value.
func ValidateRegex(pattern string) ValidatorFunc[string] {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return func(string) error {
			return fmt.Errorf("invalid regex pattern '%s': %v", pattern, err)
		}
	}
	return func(value string) error {
		if !re.MatchString(value) {
			return fmt.Errorf("Value %s did not match the pattern %s.", value, pattern)
		}
		return nil
	}
}

// ValidateFile checks file paths
func ValidateFile(mustExist bool) ValidatorFunc[string] {
	return func(path string) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		if !mustExist {
			return nil
		}
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			return fmt.Errorf("The file %q does not exist!", path)
		case err != nil:
			return fmt.Errorf("cannot access file %s: %v", path, err)
		case info.IsDir():
			return fmt.Errorf("The path %q is a directory, not a file.", path)
		}
		return nil
	}
}

// ValidateDir checks directory paths
func ValidateDir(mustExist bool) ValidatorFunc[string] {
	return func(path string) error {
		if path == "" {
			return fmt.Errorf("directory path cannot be empty")
		}
		if !mustExist {
			return nil
		}
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			return fmt.Errorf("The directory %q does not exist!", path)
		case err != nil:
			return fmt.Errorf("cannot access directory %s: %v", path, err)
		case !info.IsDir():
			return fmt.Errorf("The path %q is not a directory.", path)
		}
		return nil
	}
}
