package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
)

func CreateQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionReq
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		q, err := store.CreateQuestion(r.Context(), quiz.Question{
			QuizID:        chi.URLParam(r, "quizID"),
			Text:          req.QuestionText,
			OptionA:       req.OptionA,
			OptionB:       req.OptionB,
			OptionC:       req.OptionC,
			OptionD:       req.OptionD,
			CorrectOption: quiz.Option(req.CorrectOption),
			Points:        req.Points,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"question": q})
	}
}

func UpdateQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionReq
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		quizID := chi.URLParam(r, "quizID")
		existing, err := store.GetQuestion(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		if existing.QuizID != quizID {
			writeErr(w, quiz.ErrNotFound)
			return
		}
		q, err := store.UpdateQuestion(r.Context(), quiz.Question{
			ID:            existing.ID,
			QuizID:        quizID,
			Text:          req.QuestionText,
			OptionA:       req.OptionA,
			OptionB:       req.OptionB,
			OptionC:       req.OptionC,
			OptionD:       req.OptionD,
			CorrectOption: quiz.Option(req.CorrectOption),
			Points:        req.Points,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"question": q})
	}
}

func DeleteQuestionHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := store.GetQuestion(r.Context(), chi.URLParam(r, "questionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		if existing.QuizID != chi.URLParam(r, "quizID") {
			writeErr(w, quiz.ErrNotFound)
			return
		}
		if err := store.DeleteQuestion(r.Context(), existing.ID); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
