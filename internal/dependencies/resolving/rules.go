package resolving

import (
	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/dependencies/rules"
)

// checkRules returns ErrRuleNotRespected when value violates one of dep's
// rules or an additional rule aimed at dep.
func checkRules(dep dependencies.Dependency, value any, opts Options) error {
	all := append(append([]rules.Rule(nil), dep.Rules...), rules.Targeting(opts.AdditionalRules, dep.Name)...)
	if r, violated := rules.FirstViolated(all, value); violated {
		return dependencies.RuleNotRespected(dep.Name, r.Name(), value)
	}
	return nil
}
