package resolving

import (
	"log/slog"

	"github.com/dolittle-tools/common/internal/prompt"
)

// Default returns a coordinator with the built-in resolvers. Their claims are
// mutually exclusive over every dependency kind.
func Default(d *Discoverer, p prompt.Prompter, maxAttempts int, logger *slog.Logger) *Resolvers {
	return New(logger,
		ValueResolver{},
		NewDiscoverResolver(d),
		NewArgumentResolver(p, maxAttempts),
		OptionalArgumentResolver{},
		NewPromptResolver(p, maxAttempts),
		NewDiscoverAndPromptResolver(d, p, maxAttempts),
	)
}
