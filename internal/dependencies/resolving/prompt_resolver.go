package resolving

import (
	"context"
	"errors"
	"fmt"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/prompt"
)

// DefaultMaxAttempts is how often a question is asked when no budget is given.
const DefaultMaxAttempts = 3

// PromptResolver asks the user for prompt dependencies other than arguments.
// A value already in the context is used instead of asking.
type PromptResolver struct {
	asker *asker
}

// NewPromptResolver returns a PromptResolver asking through p.
func NewPromptResolver(p prompt.Prompter, maxAttempts int) *PromptResolver {
	return &PromptResolver{asker: newAsker(p, maxAttempts)}
}

func (*PromptResolver) Name() string { return "PromptResolver" }

func (*PromptResolver) CanResolve(dep dependencies.Dependency) bool {
	return dep.Kind == dependencies.KindPrompt && dep.Prompt != nil && dep.Prompt.UserInputType != dependencies.InputArgument
}

func (r *PromptResolver) Resolve(ctx context.Context, scope *Scope, deps []dependencies.Dependency, opts Options) error {
	for _, dep := range deps {
		value, err := r.asker.answer(ctx, scope, dep, question(dep), opts)
		if err != nil {
			return err
		}
		if err := scope.Set(dep.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func question(dep dependencies.Dependency) prompt.Question {
	return prompt.Question{
		Name:        dep.Name,
		Type:        dep.Prompt.UserInputType,
		Message:     dep.Prompt.PromptMessage,
		Choices:     dep.Prompt.Choices,
		CustomInput: dep.Prompt.CustomInput,
		Default:     dep.Prompt.Default,
	}
}

// asker asks a question until the answer satisfies the dependency's rules.
type asker struct {
	prompter    prompt.Prompter
	maxAttempts int
}

func newAsker(p prompt.Prompter, maxAttempts int) *asker {
	if p == nil {
		p = prompt.Disabled{}
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &asker{prompter: p, maxAttempts: maxAttempts}
}

// answer returns the context value for dep when present and asks otherwise.
func (a *asker) answer(ctx context.Context, scope *Scope, dep dependencies.Dependency, q prompt.Question, opts Options) (any, error) {
	if existing, ok := scope.Get(dep.Name); ok {
		if err := checkRules(dep, existing, opts); err != nil {
			return nil, err
		}
		return existing, nil
	}
	return a.ask(ctx, dep, q, opts)
}

func (a *asker) ask(ctx context.Context, dep dependencies.Dependency, q prompt.Question, opts Options) (any, error) {
	var last error
	for range a.maxAttempts {
		value, err := a.prompter.Ask(ctx, q)
		if errors.Is(err, prompt.ErrInvalidAnswer) {
			a.prompter.Warn(err.Error())
			last = err
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("asking for %q: %w", dep.Name, err)
		}
		if err := checkRules(dep, value, opts); err != nil {
			a.prompter.Warn(err.Error())
			last = err
			continue
		}
		return value, nil
	}
	if errors.Is(last, dependencies.ErrRuleNotRespected) {
		return nil, last
	}
	return nil, fmt.Errorf("asking for %q: %w", dep.Name, last)
}
