package roster

import "errors"

// Student is a quiz taker, identified by a unique national id. The
// login flow looks the student up by national id and creates the row
// when it does not exist yet.
type Student struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	CreatedAt  int64  `json:"created_at,omitempty"`
}

var (
	ErrNotFound = errors.New("student not found")
	// ErrDuplicateNationalID rejects a second student row with the
	// same national id.
	ErrDuplicateNationalID = errors.New("national id already registered")
	// ErrHasSubmissions refuses deletion of a student who already
	// submitted a quiz.
	ErrHasSubmissions = errors.New("student has quiz submissions")
)
