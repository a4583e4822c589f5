package components

import (
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ButtonState selects how a button is drawn.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonHighlighted
	ButtonDisabledState
	ButtonMarkedCorrect
	ButtonMarkedIncorrect
)

// Button is a styled, key-labelled button.
type Button struct {
	Key   string
	Label string
	State ButtonState
}

// NewButton creates a new button.
func NewButton(key, label string, state ButtonState) Button {
	return Button{
		Key:   key,
		Label: label,
		State: state,
	}
}

// Enabled reports whether pressing the button would do anything.
func (b Button) Enabled() bool {
	return b.State != ButtonDisabledState
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" && b.Key != b.Label {
		label = "[" + b.Key + "] " + b.Label
	}

	switch b.State {
	case ButtonHighlighted:
		return theme.ButtonActive.Render("▸ " + label)
	case ButtonDisabledState:
		return theme.ButtonDisabled.Render("  " + label)
	case ButtonMarkedCorrect:
		return theme.ButtonCorrect.Render("✓ " + label)
	case ButtonMarkedIncorrect:
		return theme.ButtonIncorrect.Render("✗ " + label)
	default:
		return theme.ButtonInactive.Render("  " + label)
	}
}
