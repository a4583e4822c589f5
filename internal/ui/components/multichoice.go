package components

import "strings"

// MultiChoice renders a row of answer buttons for one question.
type MultiChoice struct {
	Options []string

	// Disabled greys out every option.
	Disabled bool

	// Chosen is the option picked, or "" before an answer.
	Chosen string

	// Answer is the correct option. It is only marked once Chosen is set.
	Answer string
}

// NewMultiChoice creates a new multiple-choice row.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Buttons returns one button per option in its current state.
func (m MultiChoice) Buttons() []Button {
	out := make([]Button, 0, len(m.Options))
	for _, opt := range m.Options {
		state := ButtonIdle
		switch {
		case m.Chosen != "" && opt == m.Answer:
			state = ButtonMarkedCorrect
		case m.Chosen != "" && opt == m.Chosen:
			state = ButtonMarkedIncorrect
		case m.Disabled:
			state = ButtonDisabledState
		}
		out = append(out, NewButton(opt, opt, state))
	}
	return out
}

// View renders the row, options separated by a gap.
func (m MultiChoice) View() string {
	views := make([]string, 0, len(m.Options))
	for _, b := range m.Buttons() {
		views = append(views, b.View())
	}
	return strings.Join(views, "  ")
}
