package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ikhtibar-app/ikhtibar/internal/grading"
)

// UpsertAnswer grades and saves one selection. Saves issued out of
// order race harmlessly: the (student_id, question_id) key makes the
// last write win with a single surviving row.
func (s *SQLStore) UpsertAnswer(ctx context.Context, quizID, studentID, questionID string, selected Option) (Answer, error) {
	q, err := s.GetQuestion(ctx, questionID)
	if err != nil {
		return Answer{}, err
	}
	if q.QuizID != quizID {
		return Answer{}, ErrNotFound
	}
	if !selected.Valid() || q.OptionText(selected) == "" {
		return Answer{}, Invalid("selected option does not exist on this question")
	}

	res := grading.Grade(grading.Q{ID: q.ID, Correct: string(q.CorrectOption), Points: q.Points}, string(selected))
	_, err = s.db.ExecContext(ctx, `INSERT INTO answers
		(id,quiz_id,student_id,question_id,selected_option,is_correct,points_earned,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (student_id, question_id) DO UPDATE SET
			selected_option=EXCLUDED.selected_option,
			is_correct=EXCLUDED.is_correct,
			points_earned=EXCLUDED.points_earned`,
		uuid.NewString(), quizID, studentID, questionID, string(selected), res.IsCorrect, res.PointsEarned, time.Now().Unix())
	if err != nil {
		return Answer{}, fmt.Errorf("upsert answer: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT id,quiz_id,student_id,question_id,selected_option,is_correct,points_earned,created_at
		FROM answers WHERE student_id=$1 AND question_id=$2`, studentID, questionID)
	return scanAnswer(row)
}

func (s *SQLStore) ListAnswers(ctx context.Context, quizID, studentID string) ([]Answer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,quiz_id,student_id,question_id,selected_option,is_correct,points_earned,created_at
		FROM answers WHERE quiz_id=$1 AND student_id=$2`, quizID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Answer{}
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SubmitQuiz is single-shot per (student, quiz) and atomic: selections
// still missing on the server are upserted, every answer is graded,
// and the submission row is written with the computed total, all in
// one transaction.
func (s *SQLStore) SubmitQuiz(ctx context.Context, quizID, studentID string, selections map[string]Option) (Submission, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return Submission{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Submission{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM quiz_submissions WHERE quiz_id=$1 AND student_id=$2`,
		quizID, studentID).Scan(&one)
	if err == nil {
		return Submission{}, ErrAlreadySubmitted
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Submission{}, err
	}

	questions, err := questionKeysTx(ctx, tx, quizID)
	if err != nil {
		return Submission{}, err
	}

	now := time.Now().Unix()
	for questionID, selected := range selections {
		q, ok := questions[questionID]
		if !ok {
			return Submission{}, Invalid("answer references a question outside this quiz")
		}
		res := grading.Grade(q, string(selected))
		_, err = tx.ExecContext(ctx, `INSERT INTO answers
			(id,quiz_id,student_id,question_id,selected_option,is_correct,points_earned,created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (student_id, question_id) DO UPDATE SET
				selected_option=EXCLUDED.selected_option,
				is_correct=EXCLUDED.is_correct,
				points_earned=EXCLUDED.points_earned`,
			uuid.NewString(), quizID, studentID, questionID, string(selected), res.IsCorrect, res.PointsEarned, now)
		if err != nil {
			return Submission{}, fmt.Errorf("upsert answer: %w", err)
		}
	}

	var answered int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.quiz_id=$1 AND a.student_id=$2`, quizID, studentID).Scan(&answered)
	if err != nil {
		return Submission{}, err
	}
	if answered < len(questions) {
		return Submission{}, ErrIncompleteSubmission
	}

	var total int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(SUM(a.points_earned),0) FROM answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.quiz_id=$1 AND a.student_id=$2`, quizID, studentID).Scan(&total)
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{
		ID:             uuid.NewString(),
		QuizID:         quizID,
		StudentID:      studentID,
		TotalPoints:    total,
		SubmissionTime: now,
		HasSubmitted:   true,
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO quiz_submissions
		(id,quiz_id,student_id,total_points,submission_time,has_submitted)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		sub.ID, sub.QuizID, sub.StudentID, sub.TotalPoints, sub.SubmissionTime, sub.HasSubmitted)
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) GetSubmission(ctx context.Context, quizID, studentID string) (Submission, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,quiz_id,student_id,total_points,submission_time,has_submitted
		FROM quiz_submissions WHERE quiz_id=$1 AND student_id=$2`, quizID, studentID)
	var sub Submission
	err := row.Scan(&sub.ID, &sub.QuizID, &sub.StudentID, &sub.TotalPoints, &sub.SubmissionTime, &sub.HasSubmitted)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *SQLStore) ListResults(ctx context.Context, quizID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT s.id, st.id, st.full_name, st.national_id, s.total_points, s.submission_time
		FROM quiz_submissions s
		JOIN students st ON st.id = s.student_id
		WHERE s.quiz_id=$1 AND s.has_submitted = TRUE
		ORDER BY s.total_points DESC, s.submission_time`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.SubmissionID, &r.StudentID, &r.FullName, &r.NationalID, &r.TotalPoints, &r.SubmissionTime); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func questionKeysTx(ctx context.Context, tx *sql.Tx, quizID string) (map[string]grading.Q, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, correct_option, points FROM questions WHERE quiz_id=$1`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]grading.Q{}
	for rows.Next() {
		var q grading.Q
		if err := rows.Scan(&q.ID, &q.Correct, &q.Points); err != nil {
			return nil, err
		}
		out[q.ID] = q
	}
	return out, rows.Err()
}

func scanAnswer(row rowScanner) (Answer, error) {
	var a Answer
	var selected string
	err := row.Scan(&a.ID, &a.QuizID, &a.StudentID, &a.QuestionID, &selected, &a.IsCorrect, &a.PointsEarned, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Answer{}, ErrNotFound
	}
	if err != nil {
		return Answer{}, err
	}
	a.Selected = Option(selected)
	return a, nil
}
