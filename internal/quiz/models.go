package quiz

// Option designates one of the four answer slots of a question.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

var optionArabic = map[Option]string{
	OptionA: "أ",
	OptionB: "ب",
	OptionC: "ج",
	OptionD: "د",
}

func (o Option) Valid() bool {
	_, ok := optionArabic[o]
	return ok
}

// Arabic returns the presentation letter (أ/ب/ج/د), empty for an
// unknown or absent option.
func (o Option) Arabic() string {
	return optionArabic[o]
}

type Quiz struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
	StartTime   *int64 `json:"start_time,omitempty"`
	EndTime     *int64 `json:"end_time,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// Question is a four-slot multiple-choice item. Slots A and B are
// mandatory; C and D may be empty, meaning the slot does not exist.
type Question struct {
	ID            string `json:"id"`
	QuizID        string `json:"quiz_id"`
	Text          string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c,omitempty"`
	OptionD       string `json:"option_d,omitempty"`
	CorrectOption Option `json:"correct_option,omitempty"`
	Points        int    `json:"points"`
	CreatedAt     int64  `json:"created_at,omitempty"`
	UpdatedAt     int64  `json:"updated_at,omitempty"`
}

// OptionText returns the text of the given slot, empty when the slot
// is absent.
func (q Question) OptionText(o Option) string {
	switch o {
	case OptionA:
		return q.OptionA
	case OptionB:
		return q.OptionB
	case OptionC:
		return q.OptionC
	case OptionD:
		return q.OptionD
	}
	return ""
}

// Validate enforces the question invariants at create/edit time so
// grading never sees a malformed row: mandatory A/B slots, a known
// correct option referencing a non-empty slot, positive points.
func (q Question) Validate() error {
	if q.Text == "" {
		return Invalid("question_text is required")
	}
	if q.OptionA == "" || q.OptionB == "" {
		return Invalid("options A and B are required")
	}
	if !q.CorrectOption.Valid() {
		return Invalid("correct option must be A, B, C, or D")
	}
	if q.OptionText(q.CorrectOption) == "" {
		return Invalid("correct option references an empty slot")
	}
	if q.Points <= 0 {
		return Invalid("points must be positive")
	}
	return nil
}

// Answer is a student's selected option for one question. At most one
// row exists per (student, question); saves upsert by that key.
type Answer struct {
	ID           string `json:"id"`
	QuizID       string `json:"quiz_id"`
	StudentID    string `json:"student_id"`
	QuestionID   string `json:"question_id"`
	Selected     Option `json:"selected_option"`
	IsCorrect    bool   `json:"is_correct"`
	PointsEarned int    `json:"points_earned"`
	CreatedAt    int64  `json:"created_at,omitempty"`
}

// Submission is the immutable record of a completed attempt.
type Submission struct {
	ID             string `json:"id"`
	QuizID         string `json:"quiz_id"`
	StudentID      string `json:"student_id"`
	TotalPoints    int    `json:"total_points"`
	SubmissionTime int64  `json:"submission_time"`
	HasSubmitted   bool   `json:"has_submitted"`
}

// QuestionPoints is the (id, points) projection used when computing
// a quiz's total possible points.
type QuestionPoints struct {
	ID     string `json:"id"`
	Points int    `json:"points"`
}

// Result is one leaderboard row: a submission joined with the
// submitting student's identity.
type Result struct {
	SubmissionID   string `json:"submission_id"`
	StudentID      string `json:"student_id"`
	FullName       string `json:"full_name"`
	NationalID     string `json:"national_id"`
	TotalPoints    int    `json:"total_points"`
	SubmissionTime int64  `json:"submission_time"`
}
