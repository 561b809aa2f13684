package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/ikhtibar-app/ikhtibar/internal/auth/middleware"
	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
	"github.com/ikhtibar-app/ikhtibar/internal/report"
)

// SaveAnswerHandler upserts one selection for the authenticated
// student. Reselecting overwrites the prior row, never duplicates it.
func SaveAnswerHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := authmw.SubjectFromContext(r.Context())
		if studentID == "" {
			http.Error(w, "missing subject", http.StatusUnauthorized)
			return
		}
		var req answerReq
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		a, err := store.UpsertAnswer(r.Context(), chi.URLParam(r, "quizID"), studentID,
			req.QuestionID, quiz.Option(req.SelectedOption))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"answer": a})
	}
}

// SubmitQuizHandler grades the student's saved answers and writes the
// submission record. Double submits get 409, an incomplete answer set
// gets 400.
func SubmitQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := authmw.SubjectFromContext(r.Context())
		if studentID == "" {
			http.Error(w, "missing subject", http.StatusUnauthorized)
			return
		}
		sub, err := store.SubmitQuiz(r.Context(), chi.URLParam(r, "quizID"), studentID, nil)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"submission": sub})
	}
}

// GetSubmissionHandler lets a student check whether the quiz is
// already closed for them, with the derived percentage attached.
func GetSubmissionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := authmw.SubjectFromContext(r.Context())
		if studentID == "" {
			http.Error(w, "missing subject", http.StatusUnauthorized)
			return
		}
		quizID := chi.URLParam(r, "quizID")
		sub, err := store.GetSubmission(r.Context(), quizID, studentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		points, err := store.QuestionPoints(r.Context(), quizID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"submission": report.NewSubmissionView(sub, report.TotalPossible(points)),
		})
	}
}
