package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Limits for the rounds and most-missed lists.
const (
	RoundLimit  = 50
	MissedLimit = 10
)

type historyLoadedMsg struct {
	Rounds []store.RoundSummaryRecord
	Missed []store.MissRecord
	Err    error
}

// HistoryScreen displays recently completed rounds and the most-missed
// questions.
type HistoryScreen struct {
	eventRepo store.EventRepo
	rounds    []store.RoundSummaryRecord
	missed    []store.MissRecord
	selected  int
	showMiss  bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		rounds, err := s.eventRepo.QueryRoundSummaries(ctx, store.QueryOpts{Limit: RoundLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		missed, err := s.eventRepo.MostMissed(ctx, MissedLimit)
		if err != nil {
			return historyLoadedMsg{Rounds: rounds}
		}

		return historyLoadedMsg{Rounds: rounds, Missed: missed}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Rounds/Missed"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rounds = msg.Rounds
			s.missed = msg.Missed
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "h", "H":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			repo := s.eventRepo
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: New(repo)} }
		case "tab":
			s.showMiss = !s.showMiss
			s.selected = 0
			return s, nil
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < s.listLen()-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) listLen() int {
	if s.showMiss {
		return len(s.missed)
	}
	return len(s.rounds)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")

	if s.showMiss {
		b.WriteString(s.renderMissed(width))
	} else {
		b.WriteString(s.renderRounds(width))
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs(width int) string {
	rounds, missed := theme.TabActive, theme.Tab
	if s.showMiss {
		rounds, missed = theme.Tab, theme.TabActive
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		rounds.Render("Recent rounds")+"  "+missed.Render("Most missed"))
}

func (s *HistoryScreen) renderRounds(width int) string {
	if len(s.rounds) == 0 {
		return renderEmpty(width, "No completed rounds yet. Finish a round to see it here.")
	}

	var b strings.Builder
	for i, r := range s.rounds {
		dateStr := r.Timestamp.Format("Jan 02 15:04")
		mins := r.DurationSecs / 60
		secs := r.DurationSecs % 60

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-8s %d:%02d  %2d/%-2d answered  %2d correct  %3d%%",
			prefix, dateStr, modeLabel(r.Mode), mins, secs, r.Answered, r.Total, r.Correct, sess.Accuracy(r.Correct, r.Answered))

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rowStyle(i == s.selected).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderMissed(width int) string {
	if len(s.missed) == 0 {
		return renderEmpty(width, "No misses recorded. Nice work!")
	}

	var b strings.Builder
	for i, m := range s.missed {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		times := "times"
		if m.Misses == 1 {
			times = "time"
		}
		line := fmt.Sprintf("%s#%-10s missed %d %s", prefix, m.QuestionID, m.Misses, times)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rowStyle(i == s.selected).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderEmpty(width int, msg string) string {
	return theme.Subtitle.Width(width).Italic(true).Render(msg)
}

func rowStyle(selected bool) lipgloss.Style {
	if selected {
		return theme.Selected
	}
	return theme.Unselected
}

func modeLabel(mode string) string {
	if mode == string(sess.ModeReview) {
		return "Review"
	}
	return "Practice"
}
