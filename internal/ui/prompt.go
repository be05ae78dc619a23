package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/10up/scaffold/internal/naming"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Interactive reports whether both stdin and stdout are terminals.
func Interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Answers holds what the user has supplied so far. Empty fields are asked.
type Answers struct {
	Type       string
	Slug       string
	ThemeSlug  string
	PluginSlug string
}

// Ask prompts for every empty field of a. types lists the selectable
// project types; composite reports whether a type needs nested names.
func Ask(a Answers, types []string, composite func(string) bool) (Answers, error) {
	if a.Type == "" {
		opts := make([]huh.Option[string], len(types))
		for i, t := range types {
			opts[i] = huh.NewOption(t, t)
		}
		sel := huh.NewSelect[string]().
			Title("What type of project do you want to create?").
			Options(opts...).
			Value(&a.Type)
		if err := run(sel); err != nil {
			return a, err
		}
	}

	if a.Slug == "" {
		if err := run(slugInput("Project directory name", "my-10up-project", &a.Slug)); err != nil {
			return a, err
		}
	}

	if composite != nil && composite(a.Type) {
		if a.ThemeSlug == "" {
			if err := run(slugInput("Theme name", a.Slug+"-theme", &a.ThemeSlug)); err != nil {
				return a, err
			}
		}
		if a.PluginSlug == "" {
			if err := run(slugInput("Plugin name", a.Slug+"-plugin", &a.PluginSlug)); err != nil {
				return a, err
			}
		}
	}

	return a, nil
}

func slugInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description("Lower-case letters, digits and hyphens.").
		Placeholder(placeholder).
		Value(value).
		Validate(ValidateSlug)
}

// ValidateSlug is the validator used by slug prompts.
func ValidateSlug(s string) error {
	return naming.Validate(naming.Normalize(s))
}

func run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithAccessible(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

// Usage formats the argument error help shown for a missing argument.
func Usage(cliName, what, args, example string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please specify the %s:\n", what)
	fmt.Fprintf(&b, "  %s %s\n\n", cliName, args)
	fmt.Fprintf(&b, "For example:\n")
	fmt.Fprintf(&b, "  %s %s\n", cliName, example)
	return b.String()
}
