package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dolittle-tools/common/internal/dependencies"
	"github.com/dolittle-tools/common/internal/output"
)

// Terminal asks questions on a line-oriented reader.
type Terminal struct {
	reader  *bufio.Reader
	w       io.Writer
	console *output.Console
}

// NewTerminal returns a Terminal reading answers from r and writing
// questions to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(r), w: w, console: output.New(w)}
}

// Warn shows a warning to the user.
func (t *Terminal) Warn(message string) {
	t.console.Warn("%s", message)
}

// Ask presents q and returns the answer. Menu answers are the chosen
// values; confirm answers are booleans; everything else is a string.
func (t *Terminal) Ask(ctx context.Context, q Question) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch q.Type {
	case dependencies.InputConfirm:
		return t.confirm(q)
	case dependencies.InputChooseOne:
		return t.chooseOne(q)
	case dependencies.InputChooseMultiple:
		return t.chooseMultiple(q)
	case dependencies.InputText, dependencies.InputArgument, "":
		return t.input(q)
	default:
		return nil, fmt.Errorf("%w: cannot ask %q questions", ErrInvalidAnswer, q.Type)
	}
}

func (t *Terminal) input(q Question) (any, error) {
	def := ""
	if q.Default != nil {
		def = fmt.Sprint(q.Default)
	}
	if def != "" {
		fmt.Fprintf(t.w, "%s [%s]: ", q.Message, def)
	} else {
		fmt.Fprintf(t.w, "%s: ", q.Message)
	}
	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (t *Terminal) confirm(q Question) (any, error) {
	def, _ := q.Default.(bool)
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(t.w, "%s [%s]: ", q.Message, hint)
	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return nil, fmt.Errorf("%w: %q is not yes or no", ErrInvalidAnswer, line)
}

func (t *Terminal) chooseOne(q Question) (any, error) {
	items := choiceNames(q.Choices)
	if q.CustomInput != "" {
		items = append(items, q.CustomInput)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: nothing to choose from for %q", ErrInvalidAnswer, q.Name)
	}

	idx, err := t.selectFromList(q.Message, items)
	if err != nil {
		return nil, err
	}
	if idx == len(q.Choices) {
		return t.input(Question{Name: q.Name, Message: q.CustomInput})
	}
	return q.Choices[idx].Value, nil
}

func (t *Terminal) chooseMultiple(q Question) (any, error) {
	items := choiceNames(q.Choices)
	fmt.Fprintf(t.w, "\n%s\n", q.Message)
	for i, item := range items {
		fmt.Fprintf(t.w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(t.w, "Enter numbers separated by commas [1-%d]: ", len(items))

	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	selected := []any{}
	if line == "" {
		return selected, nil
	}
	seen := map[int]bool{}
	for _, part := range strings.Split(line, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || num < 1 || num > len(items) {
			return nil, fmt.Errorf("%w: %q, choose 1-%d", ErrInvalidAnswer, strings.TrimSpace(part), len(items))
		}
		if seen[num] {
			continue
		}
		seen[num] = true
		selected = append(selected, q.Choices[num-1].Value)
	}
	return selected, nil
}

// selectFromList presents a numbered list and returns the selected index.
func (t *Terminal) selectFromList(prompt string, items []string) (int, error) {
	fmt.Fprintf(t.w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(t.w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(t.w, "Enter number [1-%d]: ", len(items))

	line, err := t.readLine()
	if err != nil {
		return 0, err
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("%w: %q, choose 1-%d", ErrInvalidAnswer, line, len(items))
	}

	return num - 1, nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func choiceNames(choices []dependencies.Choice) []string {
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = c.Name
	}
	return names
}

// IsTerminal checks if the given file is a terminal.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
