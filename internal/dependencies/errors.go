package dependencies

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error returned while parsing, validating or
// resolving dependencies wraps exactly one of these.
var (
	ErrMissingField                   = errors.New("missing field")
	ErrInvalidField                   = errors.New("invalid field")
	ErrCannotValidateDependency       = errors.New("cannot validate dependency")
	ErrCannotParseDependency          = errors.New("cannot parse dependency")
	ErrMultipleParsersForDependency   = errors.New("multiple parsers can parse dependency")
	ErrCannotResolveDependency        = errors.New("cannot resolve dependency")
	ErrMultipleResolversForDependency = errors.New("multiple resolvers can resolve dependency")
	ErrMissingDestinationPath         = errors.New("missing destination path")
	ErrMissingCoreLanguage            = errors.New("missing core language")
	ErrRuleNotRespected               = errors.New("rule not respected")
	ErrKeyNotClaimed                  = errors.New("key not claimed by resolver")
	ErrUnhandledDiscoverType          = errors.New("unhandled discover type")
)

// Error is a failure tied to a single dependency. Err is one of the sentinel
// errors above.
type Error struct {
	Dependency string
	Field      string
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Dependency != "" {
		fmt.Fprintf(&b, "dependency %q: ", e.Dependency)
	}
	b.WriteString(e.Err.Error())
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// MissingField reports a required field that is absent or empty.
func MissingField(dependency, field string) error {
	return &Error{Dependency: dependency, Field: field, Err: ErrMissingField}
}

// InvalidField reports a present field whose value is not acceptable.
func InvalidField(dependency, field, reason string) error {
	return &Error{Dependency: dependency, Field: field, Detail: reason, Err: ErrInvalidField}
}

// CannotValidate reports a validator invoked on a dependency outside its scope.
func CannotValidate(dependency, validator string) error {
	return &Error{Dependency: dependency, Detail: "validator " + validator + " does not apply", Err: ErrCannotValidateDependency}
}

// CannotParse reports a raw descriptor no parser claims.
func CannotParse(dependency string) error {
	return &Error{Dependency: dependency, Err: ErrCannotParseDependency}
}

// MultipleParsers reports a raw descriptor claimed by more than one parser.
func MultipleParsers(dependency string, parsers []string) error {
	return &Error{Dependency: dependency, Detail: strings.Join(parsers, ", "), Err: ErrMultipleParsersForDependency}
}

// CannotResolve reports a dependency no resolver claims.
func CannotResolve(dependency string) error {
	return &Error{Dependency: dependency, Err: ErrCannotResolveDependency}
}

// MultipleResolvers reports a dependency claimed by more than one resolver.
func MultipleResolvers(dependency string, resolvers []string) error {
	return &Error{Dependency: dependency, Detail: strings.Join(resolvers, ", "), Err: ErrMultipleResolversForDependency}
}

// RuleNotRespected reports a value rejected by one of the dependency's rules.
func RuleNotRespected(dependency, rule string, value any) error {
	return &Error{Dependency: dependency, Detail: fmt.Sprintf("%s rejected %#v", rule, value), Err: ErrRuleNotRespected}
}

// KeyNotClaimed reports a resolver writing a context key it does not own.
func KeyNotClaimed(resolver, key string) error {
	return &Error{Dependency: key, Detail: "written by " + resolver, Err: ErrKeyNotClaimed}
}

// UnhandledDiscoverType reports a discover type the discoverer cannot handle.
func UnhandledDiscoverType(dependency string, t DiscoverType) error {
	return &Error{Dependency: dependency, Field: "discoverType", Detail: fmt.Sprintf("cannot handle %q", string(t)), Err: ErrUnhandledDiscoverType}
}
