// Package prompt asks the user for dependency values. Terminal presents
// numbered menus and free-text questions on a line-oriented reader; Disabled
// refuses every question for non-interactive runs.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dolittle-tools/common/internal/dependencies"
)

var (
	// ErrPromptingDisabled is returned when a value must be asked for but
	// prompting has been turned off.
	ErrPromptingDisabled = errors.New("prompting is disabled")

	// ErrInvalidAnswer is returned for an answer that does not fit the
	// question, such as an out of range menu number.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// Question is what a resolver needs answered.
type Question struct {
	Name        string
	Type        dependencies.UserInputType
	Message     string
	Choices     []dependencies.Choice
	CustomInput string
	Default     any
}

// Prompter asks questions and relays warnings to the user.
type Prompter interface {
	Ask(ctx context.Context, q Question) (any, error)
	Warn(message string)
}

// Disabled is a Prompter that never asks.
type Disabled struct {
	Logger *slog.Logger
}

func (Disabled) Ask(_ context.Context, q Question) (any, error) {
	return nil, fmt.Errorf("asking for %q: %w", q.Name, ErrPromptingDisabled)
}

func (d Disabled) Warn(message string) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(message)
}
