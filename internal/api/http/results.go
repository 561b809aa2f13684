package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
	"github.com/ikhtibar-app/ikhtibar/internal/report"
	"github.com/ikhtibar-app/ikhtibar/internal/roster"
)

// GET /quizzes/{quizID}/results?q=
// Leaderboard plus aggregate statistics. The q filter is the same
// case-sensitive containment the results screen applies client-side.
func QuizResultsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := chi.URLParam(r, "quizID")
		q, err := store.GetQuiz(r.Context(), quizID)
		if err != nil {
			writeErr(w, err)
			return
		}
		points, err := store.QuestionPoints(r.Context(), quizID)
		if err != nil {
			writeErr(w, err)
			return
		}
		results, err := store.ListResults(r.Context(), quizID)
		if err != nil {
			writeErr(w, err)
			return
		}

		totalPossible := report.TotalPossible(points)
		entries := report.Leaderboard(results, totalPossible)
		stats := report.Statistics(entries, totalPossible)
		entries = report.Filter(entries, strings.TrimSpace(r.URL.Query().Get("q")))

		writeJSON(w, http.StatusOK, map[string]any{
			"quiz":       q,
			"results":    entries,
			"statistics": stats,
		})
	}
}

// GET /quizzes/{quizID}/results/{studentID}
// Every question joined with the student's answer, plus the
// submission with derived percentage fields.
func StudentResultHandler(store quiz.Store, students roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := chi.URLParam(r, "quizID")
		studentID := chi.URLParam(r, "studentID")

		st, err := students.Get(r.Context(), studentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		q, err := store.GetQuiz(r.Context(), quizID)
		if err != nil {
			writeErr(w, err)
			return
		}
		sub, err := store.GetSubmission(r.Context(), quizID, studentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		questions, err := store.ListQuestions(r.Context(), quizID)
		if err != nil {
			writeErr(w, err)
			return
		}
		answers, err := store.ListAnswers(r.Context(), quizID, studentID)
		if err != nil {
			writeErr(w, err)
			return
		}

		totalPossible := 0
		for _, question := range questions {
			totalPossible += question.Points
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"student":          st,
			"quiz":             q,
			"submission":       report.NewSubmissionView(sub, totalPossible),
			"question_answers": report.GradedQuestions(questions, answers),
		})
	}
}
