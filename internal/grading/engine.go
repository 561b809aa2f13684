// Package grading is the scoring engine: pure functions over question
// and answer data, no I/O. None of these fail under valid input;
// malformed questions are rejected at creation time, before grading
// can see them.
package grading

import "math"

// Q is the grading view of a question.
type Q struct {
	ID      string
	Correct string // designator of the correct slot: "A".."D"
	Points  int
}

// Result of grading a single answer.
type Result struct {
	IsCorrect    bool
	PointsEarned int
}

// Grade grades one answer. selected is the chosen slot designator, or
// empty when the student never answered the question; an absent answer
// is never correct.
func Grade(q Q, selected string) Result {
	if selected == "" || selected != q.Correct {
		return Result{}
	}
	return Result{IsCorrect: true, PointsEarned: q.Points}
}

// SubmissionTotal sums points earned across graded answers. The value
// is persisted once at submission time and never recomputed, so a
// later edit to a question's correct option or points leaves stored
// totals as they were.
func SubmissionTotal(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.PointsEarned
	}
	return total
}

// Percentage converts earned points into an integer percentage,
// rounding half away from zero. Zero when nothing was possible.
func Percentage(totalPoints, totalPossible int) int {
	if totalPossible == 0 {
		return 0
	}
	return int(math.Round(float64(totalPoints) / float64(totalPossible) * 100))
}

// Statistics aggregates percentage scores across submissions.
type Statistics struct {
	TotalSubmissions int `json:"total_submissions"`
	AverageScore     int `json:"average_score"`
	HighestScore     int `json:"highest_score"`
	LowestScore      int `json:"lowest_score"`
}

// ComputeStatistics returns average (rounded), max, and min over the
// given percentage scores; all zero on empty input.
func ComputeStatistics(percentages []int) Statistics {
	if len(percentages) == 0 {
		return Statistics{}
	}
	s := Statistics{
		TotalSubmissions: len(percentages),
		HighestScore:     percentages[0],
		LowestScore:      percentages[0],
	}
	sum := 0
	for _, p := range percentages {
		sum += p
		if p > s.HighestScore {
			s.HighestScore = p
		}
		if p < s.LowestScore {
			s.LowestScore = p
		}
	}
	s.AverageScore = int(math.Round(float64(sum) / float64(len(percentages))))
	return s
}
