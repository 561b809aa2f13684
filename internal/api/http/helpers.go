package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
	"github.com/ikhtibar-app/ikhtibar/internal/roster"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps domain errors onto HTTP statuses: validation 400,
// not found 404, conflicts 409, anything else 500.
func writeErr(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs), errors.Is(err, quiz.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quiz.ErrNotFound), errors.Is(err, roster.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, quiz.ErrConflict),
		errors.Is(err, roster.ErrDuplicateNationalID),
		errors.Is(err, roster.ErrHasSubmissions):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// decodeValid decodes a JSON body into req and runs its validate tags.
func decodeValid(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return quiz.Invalid("bad json")
	}
	return validate.Struct(req)
}
