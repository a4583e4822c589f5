package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

// identityRand keeps the bank order so tests can predict questions.
type identityRand struct{}

func (identityRand) IntN(n int) int { return n - 1 }

type mockLoader struct {
	questions []bank.Question
	err       error
}

func (m *mockLoader) Load(_ context.Context, _ string) ([]bank.Question, error) {
	return m.questions, m.err
}

type mockWrongStore struct {
	initial wrongset.Set
	saved   []wrongset.Set
	err     error
}

func (m *mockWrongStore) Load(_ context.Context) wrongset.Set {
	if m.initial == nil {
		return wrongset.New()
	}
	return m.initial.Clone()
}

func (m *mockWrongStore) Save(_ context.Context, set wrongset.Set) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, set.Clone())
	return nil
}

func (m *mockWrongStore) last() wrongset.Set {
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	roundEvents  []store.RoundEventData
	answerEvents []store.AnswerEventData
}

func (m *mockEventRepo) AppendRoundEvent(_ context.Context, data store.RoundEventData) error {
	m.roundEvents = append(m.roundEvents, data)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) QueryRoundSummaries(_ context.Context, _ store.QueryOpts) ([]store.RoundSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) MostMissed(_ context.Context, _ int) ([]store.MissRecord, error) {
	return nil, nil
}

func (m *mockEventRepo) actions() []string {
	var out []string
	for _, e := range m.roundEvents {
		out = append(out, e.Mode+":"+e.Action)
	}
	return out
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testBank() []bank.Question {
	return []bank.Question{
		{Num: "1", Text: "2+2?", Answer: "A"},
		{Num: "2", Text: "Capital of France?", Answer: "C"},
	}
}

func testQuizScreen(wrong wrongset.Set) (*QuizScreen, *mockWrongStore, *mockEventRepo) {
	loader := &mockLoader{questions: testBank()}
	ws := &mockWrongStore{initial: wrong}
	events := &mockEventRepo{}
	s := New("questions.json", loader, ws, events, WithRand(identityRand{}))
	return s, ws, events
}

// load runs the startup command synchronously.
func load(t *testing.T, s *QuizScreen) *QuizScreen {
	t.Helper()
	scr, _ := s.Update(s.loadBank()())
	return scr.(*QuizScreen)
}

func press(s *QuizScreen, msgs ...tea.KeyPressMsg) (*QuizScreen, tea.Cmd) {
	var scr screen.Screen = s
	var cmd tea.Cmd
	for _, m := range msgs {
		scr, cmd = scr.Update(m)
	}
	return scr.(*QuizScreen), cmd
}

func TestQuizScreen_Title(t *testing.T) {
	s, _, _ := testQuizScreen(nil)
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}

	s = load(t, s)
	if s.Title() != "Practice" {
		t.Errorf("Title = %q, want %q", s.Title(), "Practice")
	}
}

func TestQuizScreen_View_Loading(t *testing.T) {
	s, _, _ := testQuizScreen(nil)
	view := s.View(80, 24)
	if !strings.Contains(view, "Loading question bank") {
		t.Errorf("loading view missing message:\n%s", view)
	}
}

func TestQuizScreen_InertWhileLoading(t *testing.T) {
	s, ws, events := testQuizScreen(nil)

	s, _ = press(s, keyPress('a'), keyPress('p'), specialKey(tea.KeyEnter), keyPress('x'), keyPress('y'))

	if s.engine != nil {
		t.Error("expected no engine before load")
	}
	if len(ws.saved) != 0 || len(events.roundEvents) != 0 {
		t.Error("expected no side effects before load")
	}
}

func TestQuizScreen_LoadFailure(t *testing.T) {
	loader := &mockLoader{err: errors.New("HTTP 404")}
	ws := &mockWrongStore{}
	events := &mockEventRepo{}
	s := New("questions.json", loader, ws, events)
	s = load(t, s)

	if s.phase != phaseFailed {
		t.Fatalf("phase = %d, want failed", s.phase)
	}
	view := s.View(80, 24)
	if !strings.Contains(view, LoadFailedMessage) {
		t.Errorf("view missing failure message:\n%s", view)
	}

	s, _ = press(s, keyPress('p'), keyPress('a'), specialKey(tea.KeyEnter))
	if s.engine != nil || len(events.roundEvents) != 0 {
		t.Error("expected controls to stay inert after load failure")
	}

	_, cmd := press(s, keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestQuizScreen_LoadStartsPracticeRound(t *testing.T) {
	s, _, events := testQuizScreen(nil)
	s = load(t, s)

	if s.phase != phaseReady {
		t.Fatalf("phase = %d, want ready", s.phase)
	}
	if !strings.Contains(s.info, "Loaded 2 questions") || !strings.Contains(s.info, "Practice: 2 random questions") {
		t.Errorf("info = %q", s.info)
	}
	if got := events.actions(); len(got) != 1 || got[0] != "normal:start" {
		t.Errorf("round events = %v, want [normal:start]", got)
	}

	view := s.View(100, 30)
	for _, want := range []string{"#1", "2+2?", "Question 1 / 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuizScreen_MissThenSkip(t *testing.T) {
	s, ws, events := testQuizScreen(nil)
	s = load(t, s)

	// Wrong answer to question 1.
	s, _ = press(s, keyPress('b'))
	state := s.engine.State()
	if state.AnsweredCount != 1 || state.CorrectCount != 0 {
		t.Errorf("counts = %d/%d, want 1/0", state.AnsweredCount, state.CorrectCount)
	}
	if got := ws.last(); got == nil || !got.Has("1") {
		t.Errorf("saved wrong set = %v, want {1}", got)
	}
	if len(events.answerEvents) != 1 || events.answerEvents[0].Correct {
		t.Errorf("answer events = %+v", events.answerEvents)
	}
	if !strings.Contains(s.View(100, 30), "Incorrect") {
		t.Error("expected incorrect feedback")
	}

	// A second answer is ignored.
	s, _ = press(s, keyPress('a'))
	if state.AnsweredCount != 1 || len(events.answerEvents) != 1 {
		t.Error("expected second answer to be ignored")
	}

	// Advance, then skip question 2.
	s, _ = press(s, specialKey(tea.KeyEnter), keyPress(' '))
	if !state.Complete() {
		t.Fatalf("CurrentIndex = %d, want round complete", state.CurrentIndex)
	}
	if state.Feedback.Kind != sess.FeedbackSkipped {
		t.Errorf("Feedback = %v, want skipped", state.Feedback.Kind)
	}
	if len(ws.saved) != 1 {
		t.Errorf("saves = %d, want 1 (skip must not touch the wrong set)", len(ws.saved))
	}

	last := events.roundEvents[len(events.roundEvents)-1]
	if last.Action != store.RoundActionEnd || last.Answered != 1 || last.Correct != 0 || last.Total != 2 {
		t.Errorf("end event = %+v", last)
	}
	if !strings.Contains(s.View(100, 30), "Accuracy 0%") {
		t.Error("expected round summary in view")
	}

	// Further input is rejected until a new round.
	s, _ = press(s, keyPress('c'), specialKey(tea.KeyRight))
	if state.AnsweredCount != 1 || state.CurrentIndex != 2 {
		t.Error("expected completed round to ignore input")
	}
}

func TestQuizScreen_SkipNoticeStaysWithNextQuestion(t *testing.T) {
	s, _, _ := testQuizScreen(nil)
	s = load(t, s)

	s, _ = press(s, specialKey(tea.KeyRight))
	view := s.View(100, 30)
	if !strings.Contains(view, "Skipped question #1") {
		t.Error("expected skip notice")
	}
	if !strings.Contains(view, "Capital of France?") {
		t.Error("expected next question alongside skip notice")
	}
}

func TestQuizScreen_ReviewGraduation(t *testing.T) {
	s, ws, events := testQuizScreen(wrongset.New("1"))
	s = load(t, s)

	s, _ = press(s, keyPress('r'))
	if s.engine.Mode() != sess.ModeReview {
		t.Fatalf("Mode = %s, want review", s.engine.Mode())
	}
	if got := len(s.engine.State().Working); got != 1 {
		t.Fatalf("working list = %d, want 1", got)
	}
	if !strings.Contains(s.info, "Review: 1 questions you missed") {
		t.Errorf("info = %q", s.info)
	}

	s, _ = press(s, keyPress('1'))
	if got := ws.last(); got == nil || got.Len() != 0 {
		t.Errorf("saved wrong set = %v, want empty", got)
	}

	s, _ = press(s, keyPress('R'))
	if !s.engine.State().Empty() {
		t.Error("expected empty review round")
	}
	if !strings.Contains(s.info, "no wrong answers recorded") {
		t.Errorf("info = %q", s.info)
	}
	if !strings.Contains(s.View(100, 30), "No questions available") {
		t.Error("expected empty-round message")
	}

	want := []string{"normal:start", "review:start", "review:start"}
	if got := events.actions(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("round events = %v, want %v", got, want)
	}
}

func TestQuizScreen_ClearConfirm(t *testing.T) {
	s, ws, _ := testQuizScreen(wrongset.New("2"))
	s = load(t, s)

	s, _ = press(s, keyPress('x'))
	if !s.confirmClear {
		t.Fatal("expected clear confirmation")
	}
	if !strings.Contains(s.View(80, 24), "Clear wrong-answer history?") {
		t.Error("expected confirmation dialog")
	}

	// Answer keys are swallowed by the dialog.
	s, _ = press(s, keyPress('a'), keyPress('n'))
	if s.confirmClear {
		t.Error("expected dialog dismissed")
	}
	if s.engine.State().AnsweredCount != 0 {
		t.Error("expected no answer while dialog was open")
	}
	if len(ws.saved) != 0 || s.engine.WrongSet().Len() != 1 {
		t.Error("expected wrong set untouched after cancel")
	}

	s, _ = press(s, keyPress('x'), keyPress('y'))
	if s.engine.WrongSet().Len() != 0 {
		t.Error("expected wrong set cleared")
	}
	if got := ws.last(); got == nil || got.Len() != 0 {
		t.Errorf("saved wrong set = %v, want empty", got)
	}
	if s.info != "Wrong-answer history cleared." {
		t.Errorf("info = %q", s.info)
	}
	if s.engine.Mode() != sess.ModeNormal || s.engine.State().CurrentIndex != 0 {
		t.Error("expected practice round to continue")
	}
}

func TestQuizScreen_ClearInReviewRestarts(t *testing.T) {
	s, _, events := testQuizScreen(wrongset.New("1", "2"))
	s = load(t, s)

	s, _ = press(s, keyPress('r'))
	before := s.engine.State()

	s, _ = press(s, keyPress('x'), keyPress('y'))
	if s.engine.State() == before {
		t.Error("expected a new round")
	}
	if !s.engine.State().Empty() {
		t.Error("expected empty review round")
	}
	if !strings.Contains(s.info, "no wrong answers recorded") {
		t.Errorf("info = %q", s.info)
	}
	if n := len(events.roundEvents); events.roundEvents[n-1].Mode != "review" || events.roundEvents[n-1].Action != store.RoundActionStart {
		t.Errorf("last round event = %+v", events.roundEvents[n-1])
	}
}

func TestQuizScreen_SaveFailureNotice(t *testing.T) {
	s, ws, _ := testQuizScreen(nil)
	ws.err = errors.New("disk full")
	s = load(t, s)

	s, _ = press(s, keyPress('d'))
	if s.notice == "" {
		t.Error("expected a notice after save failure")
	}
	if !s.engine.WrongSet().Has("1") {
		t.Error("expected in-memory wrong set to keep the miss")
	}

	s, _ = press(s, keyPress('p'))
	if s.notice != "" {
		t.Error("expected notice cleared by new round")
	}
}

func TestQuizScreen_HistoryKey(t *testing.T) {
	s, _, _ := testQuizScreen(nil)
	s = load(t, s)

	_, cmd := press(s, keyPress('h'))
	if cmd == nil {
		t.Fatal("expected a command for history")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want router.PushScreenMsg", cmd())
	}
	if msg.Screen.Title() != "History" {
		t.Errorf("pushed %q, want History", msg.Screen.Title())
	}
}

func TestQuizScreen_HistoryWithoutEventRepo(t *testing.T) {
	s := New("questions.json", &mockLoader{questions: testBank()}, &mockWrongStore{}, nil, WithRand(identityRand{}))
	s = load(t, s)

	_, cmd := press(s, keyPress('h'))
	if cmd != nil {
		t.Error("expected no history without an event log")
	}

	// Rounds still work without an event log.
	s, _ = press(s, keyPress('a'))
	if s.engine.State().CorrectCount != 1 {
		t.Error("expected correct answer to count")
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _, _ := testQuizScreen(nil)
	if len(s.KeyHints()) == 0 {
		t.Error("expected quit hint while loading")
	}

	s = load(t, s)
	hasAnswer := func() bool {
		for _, h := range s.KeyHints() {
			if h.Description == "Answer" {
				return true
			}
		}
		return false
	}
	if !hasAnswer() {
		t.Error("expected answer hint while a question is open")
	}

	s, _ = press(s, keyPress('a'))
	if hasAnswer() {
		t.Error("expected no answer hint once answered")
	}

	s, _ = press(s, keyPress('x'))
	hints := s.KeyHints()
	if len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("confirm hints = %+v", hints)
	}
}

func TestQuizScreen_Status(t *testing.T) {
	s, _, _ := testQuizScreen(wrongset.New("2"))
	if s.Status() != "" {
		t.Error("expected empty status before load")
	}
	s = load(t, s)
	if got := s.Status(); !strings.Contains(got, "2 questions") || !strings.Contains(got, "1") {
		t.Errorf("Status = %q", got)
	}
}
