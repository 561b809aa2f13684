package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
	"github.com/ikhtibar-app/ikhtibar/internal/rbac"
)

func ListQuizzesHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizzes, err := store.ListQuizzes(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"quizzes": quizzes})
	}
}

func CreateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quizReq
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		q, err := store.CreateQuiz(r.Context(), quiz.Quiz{
			Title:       req.Title,
			Description: req.Description,
			VideoURL:    req.VideoURL,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"quiz": q})
	}
}

// GetQuizHandler returns the quiz with its ordered questions. The
// correct-option designator is stripped unless the viewer is an admin.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		q, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		questions, err := store.ListQuestions(r.Context(), id)
		if err != nil {
			writeErr(w, err)
			return
		}
		if rbac.RoleFromContext(r.Context()) != "admin" {
			for i := range questions {
				questions[i].CorrectOption = ""
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"quiz": q, "questions": questions})
	}
}

func UpdateQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quizReq
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		q, err := store.UpdateQuiz(r.Context(), quiz.Quiz{
			ID:          chi.URLParam(r, "quizID"),
			Title:       req.Title,
			Description: req.Description,
			VideoURL:    req.VideoURL,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"quiz": q})
	}
}

func DeleteQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteQuiz(r.Context(), chi.URLParam(r, "quizID")); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
