// Package config manages user-level settings stored at ~/.dolittle/config.yaml.
// Besides get/set of arbitrary keys it exposes typed accessors for the values
// the dependency engine reads: the default core language, the per-language
// area directory patterns, the discovery depth bound and the prompt attempt
// budget.
package config
