package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return renderLoading(width, s.spinner.View())
	case phaseFailed:
		return renderLoadFailed(width, s.source, s.loadErr)
	}
	if s.confirmClear {
		return renderClearConfirm(width, s.engine.WrongSet().Len())
	}

	gap := "\n\n"
	if layout.IsCompactHeight(height) {
		gap = "\n"
	}

	var b strings.Builder
	b.WriteString(s.renderInfoBar(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString(gap)
	b.WriteString(s.renderQuestion(width))
	b.WriteString(gap)
	b.WriteString(s.renderChoices(width))
	b.WriteString(gap)
	b.WriteString(s.renderFeedback(width))
	b.WriteString(gap)
	b.WriteString(s.renderProgress(width))
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(center(width, theme.Notice.Render(s.notice)))
	}
	return b.String()
}

// renderInfoBar renders the mode tabs and the current info message.
func (s *QuizScreen) renderInfoBar(width int) string {
	mode := s.engine.Mode()
	tab := func(label string, m sess.Mode) string {
		if m == mode {
			return theme.TabActive.Render(label)
		}
		return theme.Tab.Render(label)
	}
	tabs := "  " + tab("[P] Practice", sess.ModeNormal) + " " + tab("[R] Review", sess.ModeReview)

	info := lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.info)
	pad := width - lipgloss.Width(tabs) - lipgloss.Width(info) - 4
	if pad < 2 {
		return tabs + "\n  " + info
	}
	return tabs + strings.Repeat(" ", pad) + info
}

func (s *QuizScreen) renderQuestion(width int) string {
	state := s.engine.State()
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center)

	if state.Empty() {
		return style.Foreground(theme.TextDim).Italic(true).Render("No questions available for this round.")
	}
	if state.Complete() {
		return style.Foreground(theme.Secondary).Bold(true).Render("Round complete!")
	}

	q, _ := state.Current()
	num := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("#" + q.ID())
	text := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(min(width-8, 70)).
		Render(q.Text)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, num+"  ", text))
}

func (s *QuizScreen) renderChoices(width int) string {
	state := s.engine.State()

	mc := components.NewMultiChoice(bank.Choices)
	mc.Disabled = !state.CanAnswer()
	if state.AnsweredCurrent {
		mc.Chosen = state.Feedback.Choice
		mc.Answer = state.Feedback.Answer
	}

	nextState := components.ButtonIdle
	if !state.CanAdvance() {
		nextState = components.ButtonDisabledState
	}
	next := components.NewButton("Enter", "Next", nextState)

	row := mc.View() + "    " + next.View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

func (s *QuizScreen) renderFeedback(width int) string {
	state := s.engine.State()

	if state.Complete() {
		sum := sess.BuildSummary(state)
		return center(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(
			fmt.Sprintf("Answered %d · Correct %d · Accuracy %d%%", sum.Answered, sum.Correct, sum.Accuracy),
		)) + "\n" + center(width, theme.Hint.Render("Press P or R to start a new round."))
	}

	fb := state.Feedback
	switch fb.Kind {
	case sess.FeedbackCorrect:
		return center(width, theme.Correct.Render(fmt.Sprintf("Correct! The answer is %s.", fb.Answer)))
	case sess.FeedbackIncorrect:
		return center(width, theme.Incorrect.Render(
			fmt.Sprintf("Incorrect. You chose %s; the answer is %s.", fb.Choice, fb.Answer),
		))
	case sess.FeedbackSkipped:
		return center(width, theme.Hint.Render(fmt.Sprintf("Skipped question #%s.", fb.QuestionID)))
	}
	return ""
}

func (s *QuizScreen) renderProgress(width int) string {
	state := s.engine.State()
	total := len(state.Working)
	pos := min(state.CurrentIndex+1, total)

	text := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Question %d / %d   Correct %d", pos, total, state.CorrectCount),
	)
	barWidth := 60
	if layout.IsCompactWidth(width) {
		barWidth = min(width-8, 40)
	}
	bar := components.NewProgressBar("", state.CurrentIndex, total, barWidth)
	return center(width, text) + "\n" + center(width, bar.View())
}

// renderClearConfirm renders the clear-history confirmation dialog.
func renderClearConfirm(width, wrong int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Clear wrong-answer history?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d questions will be removed from review.", wrong)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, clear it"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep it"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int, spin string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + spin + "Loading question bank...")
}

// renderLoadFailed renders the terminal load-failure state.
func renderLoadFailed(width int, source string, err error) string {
	detail := source
	if err != nil {
		detail = err.Error()
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\n\n  "+LoadFailedMessage) +
		"\n\n" +
		lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(detail+"\n\nPress Q to quit.")
}

func center(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
