// Package session drives a single student through the fixed question
// sequence of one quiz: linear navigation, answer autosave, and the
// completeness-gated submission.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
)

type State string

const (
	StateLoading          State = "loading"
	StateInProgress       State = "in_progress"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
	StateAlreadySubmitted State = "already_submitted"
)

// Store is the slice of the quiz store a session needs.
type Store interface {
	ListQuestions(ctx context.Context, quizID string) ([]quiz.Question, error)
	ListAnswers(ctx context.Context, quizID, studentID string) ([]quiz.Answer, error)
	UpsertAnswer(ctx context.Context, quizID, studentID, questionID string, selected quiz.Option) (quiz.Answer, error)
	SubmitQuiz(ctx context.Context, quizID, studentID string, selections map[string]quiz.Option) (quiz.Submission, error)
	GetSubmission(ctx context.Context, quizID, studentID string) (quiz.Submission, error)
}

var ErrNotInProgress = errors.New("session is not in progress")

const saveTimeout = 10 * time.Second

// Session holds the in-progress state for one (student, quiz) pair.
// Selections apply optimistically; persistence runs in the background
// and a failed save never rolls the local selection back.
type Session struct {
	store     Store
	quizID    string
	studentID string

	mu         sync.Mutex
	state      State
	questions  []quiz.Question
	idx        int
	selections map[string]quiz.Option
	submission quiz.Submission

	saves sync.WaitGroup
}

func New(store Store, quizID, studentID string) *Session {
	return &Session{
		store:      store,
		quizID:     quizID,
		studentID:  studentID,
		state:      StateLoading,
		selections: map[string]quiz.Option{},
	}
}

// Resume loads server truth: an existing submission closes the quiz
// for this student, otherwise questions and previously saved answers
// are loaded and the session enters InProgress. The submitted state is
// kept only as a short-circuit; the server record stays authoritative.
func (s *Session) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSubmitted, StateAlreadySubmitted:
		return nil
	}

	sub, err := s.store.GetSubmission(ctx, s.quizID, s.studentID)
	switch {
	case err == nil:
		s.submission = sub
		s.state = StateAlreadySubmitted
		return nil
	case !errors.Is(err, quiz.ErrNotFound):
		return err
	}

	questions, err := s.store.ListQuestions(ctx, s.quizID)
	if err != nil {
		return err
	}
	answers, err := s.store.ListAnswers(ctx, s.quizID, s.studentID)
	if err != nil {
		return err
	}

	s.questions = questions
	s.selections = make(map[string]quiz.Option, len(answers))
	for _, a := range answers {
		s.selections[a.QuestionID] = a.Selected
	}
	s.idx = 0
	s.state = StateInProgress
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Index is the current 0-based question position.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}

// Current returns the question at the index, false when the quiz has
// no questions.
func (s *Session) Current() (quiz.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return quiz.Question{}, false
	}
	return s.questions[s.idx], true
}

// Selections returns a copy of the partial answer map.
func (s *Session) Selections() map[string]quiz.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]quiz.Option, len(s.selections))
	for k, v := range s.selections {
		out[k] = v
	}
	return out
}

// Answered reports how many questions have a selection.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selections)
}

func (s *Session) Next()     { s.seek(+1) }
func (s *Session) Previous() { s.seek(-1) }

// Seek jumps to the given question position, clamped to the valid
// range.
func (s *Session) Seek(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = clamp(i, len(s.questions))
}

func (s *Session) seek(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = clamp(s.idx+delta, len(s.questions))
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// SelectOption records the choice locally and persists it in the
// background. A save failure is logged and otherwise swallowed; the
// local selection stands and submission re-sends it anyway.
func (s *Session) SelectOption(questionID string, selected quiz.Option) error {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return ErrNotInProgress
	}
	q, ok := s.question(questionID)
	if !ok {
		s.mu.Unlock()
		return quiz.ErrNotFound
	}
	if !selected.Valid() || q.OptionText(selected) == "" {
		s.mu.Unlock()
		return quiz.Invalid("selected option does not exist on this question")
	}
	s.selections[questionID] = selected
	s.mu.Unlock()

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if _, err := s.store.UpsertAnswer(ctx, s.quizID, s.studentID, questionID, selected); err != nil {
			log.Printf("session: answer save failed (quiz=%s question=%s): %v", s.quizID, questionID, err)
		}
	}()
	return nil
}

// Submit sends the accumulated selections once every question is
// answered. The store grades and persists the submission atomically;
// success is terminal.
func (s *Session) Submit(ctx context.Context) (quiz.Submission, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return quiz.Submission{}, ErrNotInProgress
	}
	if len(s.selections) < len(s.questions) {
		s.mu.Unlock()
		return quiz.Submission{}, quiz.ErrIncompleteSubmission
	}
	s.state = StateSubmitting
	selections := make(map[string]quiz.Option, len(s.selections))
	for k, v := range s.selections {
		selections[k] = v
	}
	s.mu.Unlock()

	sub, err := s.store.SubmitQuiz(ctx, s.quizID, s.studentID, selections)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
		s.submission = sub
		s.state = StateSubmitted
		return sub, nil
	case errors.Is(err, quiz.ErrAlreadySubmitted):
		s.state = StateAlreadySubmitted
		return quiz.Submission{}, err
	default:
		s.state = StateInProgress
		return quiz.Submission{}, err
	}
}

// Submission returns the record from a successful or detected prior
// submit.
func (s *Session) Submission() (quiz.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submission.ID == "" {
		return quiz.Submission{}, false
	}
	return s.submission, true
}

// Flush waits for in-flight background saves. Navigation never waits
// on saves; this exists for orderly shutdown and tests.
func (s *Session) Flush() { s.saves.Wait() }

// caller holds s.mu
func (s *Session) question(id string) (quiz.Question, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return quiz.Question{}, false
}
