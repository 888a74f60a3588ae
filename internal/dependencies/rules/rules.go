// Package rules provides value-level predicates attached to dependencies and
// evaluated on a resolved value before it is written to the context.
package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnknownRule is returned by Parse for a name no rule is registered under.
var ErrUnknownRule = errors.New("unknown rule")

// Rule is a stateless predicate over a resolved value.
type Rule interface {
	Name() string
	IsRespected(value any) bool
}

// For targets an additional rule at the dependency with the given name.
type For struct {
	Dependency string
	Rule       Rule
}

// IsNotEmpty rejects nil, blank strings and empty collections.
type IsNotEmpty struct{}

func (IsNotEmpty) Name() string { return "isNotEmpty" }

func (IsNotEmpty) IsRespected(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !v.IsNil()
	}
	return true
}

// IsNumber accepts numeric values and strings that parse as a number.
type IsNumber struct{}

func (IsNumber) Name() string { return "isNumber" }

func (IsNumber) IsRespected(value any) bool {
	switch v := value.(type) {
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return err == nil
	case json.Number:
		_, err := v.Float64()
		return err == nil
	case nil, bool:
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

var registry = map[string]Rule{
	IsNotEmpty{}.Name(): IsNotEmpty{},
	IsNumber{}.Name():   IsNumber{},
}

// Lookup returns the rule registered under name.
func Lookup(name string) (Rule, bool) {
	r, ok := registry[name]
	return r, ok
}

// Parse converts serialized rule names to rules, preserving order.
func Parse(names []string) ([]Rule, error) {
	out := make([]Rule, 0, len(names))
	for _, name := range names {
		r, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
		out = append(out, r)
	}
	return out, nil
}

// FirstViolated returns the first rule in rs that value does not respect.
func FirstViolated(rs []Rule, value any) (Rule, bool) {
	for _, r := range rs {
		if !r.IsRespected(value) {
			return r, true
		}
	}
	return nil, false
}

// Targeting returns the rules in additional aimed at dependency.
func Targeting(additional []For, dependency string) []Rule {
	var out []Rule
	for _, f := range additional {
		if f.Dependency == dependency {
			out = append(out, f.Rule)
		}
	}
	return out
}
