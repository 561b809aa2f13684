package quiz

import "context"

// Store is the persistence boundary for quizzes, questions, and the
// quiz-taking flow.
type Store interface {
	CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error) // newest first
	UpdateQuiz(ctx context.Context, q Quiz) (Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	CreateQuestion(ctx context.Context, q Question) (Question, error)
	GetQuestion(ctx context.Context, id string) (Question, error)
	ListQuestions(ctx context.Context, quizID string) ([]Question, error) // creation order
	UpdateQuestion(ctx context.Context, q Question) (Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	QuestionPoints(ctx context.Context, quizID string) ([]QuestionPoints, error)

	// UpsertAnswer saves one selection, grading it at write time.
	// At most one row per (student, question): last write wins.
	UpsertAnswer(ctx context.Context, quizID, studentID, questionID string, selected Option) (Answer, error)
	ListAnswers(ctx context.Context, quizID, studentID string) ([]Answer, error)

	// SubmitQuiz creates the submission in a single transaction:
	// any selections not yet persisted are upserted, the total is
	// computed from the graded answers, and the submission row is
	// written. A second call fails with ErrAlreadySubmitted; an
	// incomplete answer set fails with ErrIncompleteSubmission.
	SubmitQuiz(ctx context.Context, quizID, studentID string, selections map[string]Option) (Submission, error)
	GetSubmission(ctx context.Context, quizID, studentID string) (Submission, error)

	// ListResults returns submissions joined with student identity,
	// ordered by total points descending.
	ListResults(ctx context.Context, quizID string) ([]Result, error)
}
