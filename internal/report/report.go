// Package report builds the admin-facing views: the per-quiz
// leaderboard with aggregate statistics and the per-student graded
// detail. Everything here is post-processing over rows the store
// already fetched.
package report

import (
	"sort"
	"strings"

	"github.com/ikhtibar-app/ikhtibar/internal/grading"
	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
)

// LeaderboardEntry is one ranked row of a quiz's results.
type LeaderboardEntry struct {
	SubmissionID    string `json:"submission_id"`
	StudentID       string `json:"student_id"`
	FullName        string `json:"full_name"`
	NationalID      string `json:"national_id"`
	TotalPoints     int    `json:"total_points"`
	PercentageScore int    `json:"percentage_score"`
	SubmissionTime  int64  `json:"submission_time"`
}

// Overview is the aggregate block shown above the leaderboard.
type Overview struct {
	grading.Statistics
	TotalPossiblePoints int `json:"total_possible_points"`
}

// TotalPossible sums the point values of a quiz's questions at the
// time of reporting.
func TotalPossible(points []quiz.QuestionPoints) int {
	total := 0
	for _, qp := range points {
		total += qp.Points
	}
	return total
}

// Leaderboard ranks results by total points descending and attaches
// each row's percentage score.
func Leaderboard(results []quiz.Result, totalPossible int) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, LeaderboardEntry{
			SubmissionID:    r.SubmissionID,
			StudentID:       r.StudentID,
			FullName:        r.FullName,
			NationalID:      r.NationalID,
			TotalPoints:     r.TotalPoints,
			PercentageScore: grading.Percentage(r.TotalPoints, totalPossible),
			SubmissionTime:  r.SubmissionTime,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	return entries
}

// Filter keeps entries whose full name or national id contains q.
// Containment is case-sensitive with no normalization.
func Filter(entries []LeaderboardEntry, q string) []LeaderboardEntry {
	if q == "" {
		return entries
	}
	out := []LeaderboardEntry{}
	for _, e := range entries {
		if strings.Contains(e.FullName, q) || strings.Contains(e.NationalID, q) {
			out = append(out, e)
		}
	}
	return out
}

// Statistics aggregates the leaderboard's percentage scores.
func Statistics(entries []LeaderboardEntry, totalPossible int) Overview {
	percentages := make([]int, 0, len(entries))
	for _, e := range entries {
		percentages = append(percentages, e.PercentageScore)
	}
	return Overview{
		Statistics:          grading.ComputeStatistics(percentages),
		TotalPossiblePoints: totalPossible,
	}
}

// QuestionAnswer is one graded question in the per-student detail
// view, with Arabic presentation letters for the option designators.
type QuestionAnswer struct {
	QuestionID           string `json:"question_id"`
	QuestionText         string `json:"question_text"`
	OptionA              string `json:"option_a"`
	OptionB              string `json:"option_b"`
	OptionC              string `json:"option_c,omitempty"`
	OptionD              string `json:"option_d,omitempty"`
	CorrectOption        string `json:"correct_option"`
	CorrectOptionArabic  string `json:"correct_option_arabic"`
	Points               int    `json:"points"`
	SelectedOption       string `json:"selected_option,omitempty"`
	SelectedOptionArabic string `json:"selected_option_arabic,omitempty"`
	IsCorrect            bool   `json:"is_correct"`
	PointsEarned         int    `json:"points_earned"`
}

// GradedQuestions joins each question with the student's answer, if
// any. Unanswered questions appear with no selection, never correct,
// zero points.
func GradedQuestions(questions []quiz.Question, answers []quiz.Answer) []QuestionAnswer {
	byQuestion := make(map[string]quiz.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}
	out := make([]QuestionAnswer, 0, len(questions))
	for _, q := range questions {
		qa := QuestionAnswer{
			QuestionID:          q.ID,
			QuestionText:        q.Text,
			OptionA:             q.OptionA,
			OptionB:             q.OptionB,
			OptionC:             q.OptionC,
			OptionD:             q.OptionD,
			CorrectOption:       string(q.CorrectOption),
			CorrectOptionArabic: q.CorrectOption.Arabic(),
			Points:              q.Points,
		}
		// Stored correctness is what the submission was graded with;
		// a later question edit does not retroactively change it here.
		if a, ok := byQuestion[q.ID]; ok {
			qa.SelectedOption = string(a.Selected)
			qa.SelectedOptionArabic = a.Selected.Arabic()
			qa.IsCorrect = a.IsCorrect
			qa.PointsEarned = a.PointsEarned
		}
		out = append(out, qa)
	}
	return out
}

// SubmissionView decorates a stored submission with the derived
// percentage fields for display.
type SubmissionView struct {
	quiz.Submission
	PercentageScore     int `json:"percentage_score"`
	TotalPossiblePoints int `json:"total_possible_points"`
}

func NewSubmissionView(sub quiz.Submission, totalPossible int) SubmissionView {
	return SubmissionView{
		Submission:          sub,
		PercentageScore:     grading.Percentage(sub.TotalPoints, totalPossible),
		TotalPossiblePoints: totalPossible,
	}
}
