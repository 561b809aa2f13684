package http

// Request bodies. Validation tags cover shape; the domain invariants
// (correct option referencing a non-empty slot, positive points) live
// on quiz.Question.Validate.

type quizReq struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	StartTime   *int64 `json:"start_time"`
	EndTime     *int64 `json:"end_time"`
}

type questionReq struct {
	QuestionText  string `json:"question_text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
	Points        int    `json:"points" validate:"omitempty,gte=1"`
}

type studentReq struct {
	FullName   string `json:"full_name" validate:"required"`
	NationalID string `json:"national_id" validate:"required"`
}

type answerReq struct {
	QuestionID     string `json:"question_id" validate:"required"`
	SelectedOption string `json:"selected_option" validate:"required,oneof=A B C D"`
}
