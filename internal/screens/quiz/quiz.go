package quiz

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/history"
	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

// LoadFailedMessage is shown in place of a question when the bank cannot
// be loaded.
const LoadFailedMessage = "Could not load the question bank."

// BankLoader fetches the question bank.
type BankLoader interface {
	Load(ctx context.Context, source string) ([]bank.Question, error)
}

// WrongStore reads and writes the persisted wrong-answer set.
type WrongStore interface {
	Load(ctx context.Context) wrongset.Set
	Save(ctx context.Context, set wrongset.Set) error
}

type phase int

const (
	phaseLoading phase = iota
	phaseFailed
	phaseReady
)

// Option configures a QuizScreen.
type Option func(*QuizScreen)

// WithRand sets the random source used to pick questions.
func WithRand(rng sess.RandSource) Option {
	return func(s *QuizScreen) { s.rng = rng }
}

// WithLogger sets the screen logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *QuizScreen) { s.log = log }
}

// QuizScreen implements screen.Screen for practice and review rounds.
type QuizScreen struct {
	source     string
	loader     BankLoader
	wrongStore WrongStore
	eventRepo  store.EventRepo
	rng        sess.RandSource
	log        zerolog.Logger

	keys    keyMap
	spinner spinner.Model

	phase   phase
	loadErr error
	engine  *sess.Engine

	info         string // round intro and status messages
	notice       string // persistence problems
	confirmClear bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen that loads its bank from source. eventRepo may
// be nil, in which case no round history is recorded.
func New(source string, loader BankLoader, wrongStore WrongStore, eventRepo store.EventRepo, opts ...Option) *QuizScreen {
	s := &QuizScreen{
		source:     source,
		loader:     loader,
		wrongStore: wrongStore,
		eventRepo:  eventRepo,
		rng:        sess.DefaultRand(),
		log:        zerolog.Nop(),
		keys:       defaultKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Notice),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.loadBank(), s.spinner.Tick)
}

func (s *QuizScreen) Title() string {
	if s.engine == nil || s.engine.State() == nil {
		return "Quiz"
	}
	if s.engine.Mode() == sess.ModeReview {
		return "Review"
	}
	return "Practice"
}

// Status shows the bank size and wrong-answer count once loaded.
func (s *QuizScreen) Status() string {
	if s.engine == nil {
		return ""
	}
	return fmt.Sprintf("%d questions  ✗ %d", len(s.engine.Questions()), s.engine.WrongSet().Len())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	k := s.keys
	if s.phase != phaseReady {
		return hints(k.Quit)
	}
	if s.confirmClear {
		return hints(k.Confirm, k.Cancel)
	}

	state := s.engine.State()
	var bindings []key.Binding
	switch {
	case state.CanAnswer():
		bindings = append(bindings, k.Answer, k.Next)
	case state.CanAdvance():
		bindings = append(bindings, k.Next)
	}
	bindings = append(bindings, k.Practice, k.Review, k.Clear)
	if s.eventRepo != nil {
		bindings = append(bindings, k.History)
	}
	bindings = append(bindings, k.Quit)
	return hints(bindings...)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankLoadedMsg:
		return s.handleLoaded(msg)

	case spinner.TickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadBank reads the wrong-answer set and the question bank.
func (s *QuizScreen) loadBank() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		wrong := s.wrongStore.Load(ctx)
		questions, err := s.loader.Load(ctx, s.source)
		return bankLoadedMsg{Questions: questions, Wrong: wrong, Err: err}
	}
}

func (s *QuizScreen) handleLoaded(msg bankLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseFailed
		s.loadErr = msg.Err
		s.log.Error().Err(msg.Err).Str("source", s.source).Msg("question bank load failed")
		return s, nil
	}

	s.engine = sess.NewEngine(msg.Questions, msg.Wrong, s.wrongStore,
		sess.WithRand(s.rng),
		sess.WithLogger(s.log),
	)
	s.phase = phaseReady
	s.log.Info().
		Str("source", s.source).
		Int("questions", len(msg.Questions)).
		Int("wrong", msg.Wrong.Len()).
		Msg("question bank loaded")

	s.startRound(sess.ModeNormal)
	s.info = fmt.Sprintf("Loaded %d questions. %s", len(msg.Questions), s.info)
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	k := s.keys

	if s.confirmClear {
		switch {
		case key.Matches(msg, k.Confirm):
			s.confirmClear = false
			s.clearWrong()
		case key.Matches(msg, k.Cancel):
			s.confirmClear = false
		}
		return s, nil
	}

	if key.Matches(msg, k.Quit) {
		return s, tea.Quit
	}

	// Inert until a bank is available.
	if s.phase != phaseReady {
		return s, nil
	}

	switch {
	case key.Matches(msg, k.Practice):
		s.startRound(sess.ModeNormal)
	case key.Matches(msg, k.Review):
		s.startRound(sess.ModeReview)
	case key.Matches(msg, k.Next):
		s.advance()
	case key.Matches(msg, k.Clear):
		s.confirmClear = true
	case key.Matches(msg, k.History):
		if s.eventRepo != nil {
			repo := s.eventRepo
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo)}
			}
		}
	default:
		for i, b := range k.Choices {
			if key.Matches(msg, b) {
				s.submit(bank.Choices[i])
				break
			}
		}
	}
	return s, nil
}

func (s *QuizScreen) startRound(mode sess.Mode) {
	state := s.engine.StartRound(mode)
	s.notice = ""
	s.info = roundIntro(mode, len(state.Working))
	s.recordRound(state, store.RoundActionStart)
}

func (s *QuizScreen) submit(choice string) {
	out, err := s.engine.Submit(context.Background(), choice)
	if out == nil {
		return
	}
	if err != nil {
		s.notice = "Could not save wrong-answer history; see log for details."
	}

	if s.eventRepo == nil {
		return
	}
	state := s.engine.State()
	if err := s.eventRepo.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		RoundID:       state.RoundID,
		Mode:          string(state.Mode),
		QuestionID:    out.Question.ID(),
		Choice:        out.Choice,
		CorrectAnswer: out.Question.Answer,
		Correct:       out.Correct,
	}); err != nil {
		s.log.Warn().Err(err).Str("round_id", state.RoundID).Msg("failed to record answer")
	}
}

func (s *QuizScreen) advance() {
	if _, ok := s.engine.Advance(); !ok {
		return
	}
	if state := s.engine.State(); state.Complete() {
		s.recordRound(state, store.RoundActionEnd)
	}
}

func (s *QuizScreen) clearWrong() {
	restarted, err := s.engine.ClearWrong(context.Background())
	if restarted {
		state := s.engine.State()
		s.info = roundIntro(state.Mode, len(state.Working))
		s.recordRound(state, store.RoundActionStart)
	} else {
		s.info = "Wrong-answer history cleared."
	}
	if err != nil {
		s.notice = "Could not save wrong-answer history; see log for details."
	}
}

func (s *QuizScreen) recordRound(state *sess.SessionState, action string) {
	if s.eventRepo == nil {
		return
	}
	sum := sess.BuildSummary(state)
	data := store.RoundEventData{
		RoundID: state.RoundID,
		Mode:    string(state.Mode),
		Action:  action,
		Total:   sum.Total,
	}
	if action == store.RoundActionEnd {
		data.Answered = sum.Answered
		data.Correct = sum.Correct
		data.DurationSecs = int(sum.Duration.Seconds())
	}
	if err := s.eventRepo.AppendRoundEvent(context.Background(), data); err != nil {
		s.log.Warn().Err(err).Str("round_id", state.RoundID).Str("action", action).Msg("failed to record round")
	}
}

func roundIntro(mode sess.Mode, n int) string {
	if mode == sess.ModeReview {
		if n == 0 {
			return "Review: no wrong answers recorded."
		}
		return fmt.Sprintf("Review: %d questions you missed.", n)
	}
	return fmt.Sprintf("Practice: %d random questions this round.", n)
}
