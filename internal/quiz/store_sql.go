package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLStore implements Store over database/sql. Queries use $N
// placeholders, which both the pgx and the modernc sqlite drivers
// accept.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	if q.Title == "" {
		return Quiz{}, Invalid("quiz title is required")
	}
	q.ID = uuid.NewString()
	q.CreatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,description,video_url,start_time,end_time,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		q.ID, q.Title, q.Description, q.VideoURL, q.StartTime, q.EndTime, q.CreatedAt)
	if err != nil {
		return Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}
	return q, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,description,video_url,start_time,end_time,created_at
		FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row)
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,description,video_url,start_time,end_time,created_at
		FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	if q.Title == "" {
		return Quiz{}, Invalid("quiz title is required")
	}
	res, err := s.db.ExecContext(ctx, `UPDATE quizzes SET title=$1, description=$2, video_url=$3, start_time=$4, end_time=$5
		WHERE id=$6`,
		q.Title, q.Description, q.VideoURL, q.StartTime, q.EndTime, q.ID)
	if err != nil {
		return Quiz{}, fmt.Errorf("update quiz: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Quiz{}, ErrNotFound
	}
	return s.GetQuiz(ctx, q.ID)
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	if q.Points == 0 {
		q.Points = 1
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	if _, err := s.GetQuiz(ctx, q.QuizID); err != nil {
		return Question{}, err
	}
	q.ID = uuid.NewString()
	now := time.Now().Unix()
	q.CreatedAt, q.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx, `INSERT INTO questions
		(id,quiz_id,question_text,option_a,option_b,option_c,option_d,correct_option,points,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		q.ID, q.QuizID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, string(q.CorrectOption), q.Points, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,quiz_id,question_text,option_a,option_b,option_c,option_d,correct_option,points,created_at,updated_at
		FROM questions WHERE id=$1`, id)
	return scanQuestion(row)
}

func (s *SQLStore) ListQuestions(ctx context.Context, quizID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,quiz_id,question_text,option_a,option_b,option_c,option_d,correct_option,points,created_at,updated_at
		FROM questions WHERE quiz_id=$1 ORDER BY created_at, id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) (Question, error) {
	if q.Points == 0 {
		q.Points = 1
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE questions SET question_text=$1, option_a=$2, option_b=$3, option_c=$4, option_d=$5,
		correct_option=$6, points=$7, updated_at=$8 WHERE id=$9`,
		q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, string(q.CorrectOption), q.Points, time.Now().Unix(), q.ID)
	if err != nil {
		return Question{}, fmt.Errorf("update question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, ErrNotFound
	}
	return s.GetQuestion(ctx, q.ID)
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) QuestionPoints(ctx context.Context, quizID string) ([]QuestionPoints, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, points FROM questions WHERE quiz_id=$1`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []QuestionPoints{}
	for rows.Next() {
		var qp QuestionPoints
		if err := rows.Scan(&qp.ID, &qp.Points); err != nil {
			return nil, err
		}
		out = append(out, qp)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (Quiz, error) {
	var q Quiz
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.VideoURL, &q.StartTime, &q.EndTime, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, ErrNotFound
	}
	if err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var correct string
	err := row.Scan(&q.ID, &q.QuizID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &correct, &q.Points, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	if err != nil {
		return Question{}, err
	}
	q.CorrectOption = Option(correct)
	return q, nil
}
