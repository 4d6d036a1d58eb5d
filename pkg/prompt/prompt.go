package prompt

import (
	"github.com/pterm/pterm"
)

// Prompter collects the value for one template variable. Implementations
// return the default unchanged when the user accepts it as is.
type Prompter interface {
	Ask(name, def string) (string, error)
}

// Func adapts a plain function to the Prompter interface.
type Func func(name, def string) (string, error)

// Ask implements Prompter.
func (f Func) Ask(name, def string) (string, error) {
	return f(name, def)
}

// Terminal prompts on the controlling terminal. Callers are expected to
// have checked that one is attached; this type does not gate on TTY
// detection itself.
type Terminal struct{}

// NewTerminal creates a terminal-backed Prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Ask shows an input line for name with def pre-filled as the accept-by-
// enter default.
func (t *Terminal) Ask(name, def string) (string, error) {
	input := pterm.DefaultInteractiveTextInput.WithDefaultValue(def)
	return input.Show(name)
}
