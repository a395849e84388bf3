// Package enum keeps a process-wide registry of string-backed enum values so
// request parameters can be converted to their typed form.
package enum

import (
	"fmt"
	"reflect"
)

var registry = map[reflect.Type]any{}

type valueSet[T comparable] map[string]T

// New registers value under its concrete type and returns it, so enum values
// can be declared as package-level vars.
func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	set, ok := registry[t].(valueSet[T])
	if !ok {
		set = valueSet[T]{}
		registry[t] = set
	}

	set[reflect.ValueOf(value).String()] = value
	return value
}

// ToEnum converts s to a registered value of T. It fails when T was never
// registered or s names no value of it.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	set, ok := registry[reflect.TypeOf(zero)].(valueSet[T])
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := set[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value, nil
}
