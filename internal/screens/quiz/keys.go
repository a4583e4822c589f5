package quiz

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

type keyMap struct {
	Practice key.Binding
	Review   key.Binding
	Answer   key.Binding   // any choice; used for hints
	Choices  []key.Binding // parallel to bank.Choices
	Next     key.Binding
	Clear    key.Binding
	History  key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

func defaultKeyMap() keyMap {
	var all []string
	choices := make([]key.Binding, len(bank.Choices))
	for i, c := range bank.Choices {
		keys := []string{c, strings.ToLower(c), string(rune('1' + i))}
		all = append(all, keys...)
		choices[i] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(c, "answer "+c),
		)
	}
	first, last := bank.Choices[0], bank.Choices[len(bank.Choices)-1]

	return keyMap{
		Practice: key.NewBinding(key.WithKeys("p", "P"), key.WithHelp("P", "Practice")),
		Review:   key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("R", "Review")),
		Answer:   key.NewBinding(key.WithKeys(all...), key.WithHelp(first+"-"+last, "Answer")),
		Choices:  choices,
		Next:     key.NewBinding(key.WithKeys("enter", "space", "right"), key.WithHelp("Enter", "Next")),
		Clear:    key.NewBinding(key.WithKeys("x", "X"), key.WithHelp("X", "Clear history")),
		History:  key.NewBinding(key.WithKeys("h", "H"), key.WithHelp("H", "History")),
		Quit:     key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("Q", "Quit")),
		Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Yes, clear")),
		Cancel:   key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "Keep")),
	}
}

// hints converts bindings to footer hints, skipping disabled ones.
func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
