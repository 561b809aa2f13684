package grading

import "testing"

func TestGrade(t *testing.T) {
	q := Q{ID: "q1", Correct: "B", Points: 3}

	tests := []struct {
		name     string
		selected string
		correct  bool
		points   int
	}{
		{"correct option", "B", true, 3},
		{"wrong option", "A", false, 0},
		{"absent answer", "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Grade(q, tt.selected)
			if res.IsCorrect != tt.correct || res.PointsEarned != tt.points {
				t.Fatalf("Grade(%q) = %+v, want correct=%v points=%d", tt.selected, res, tt.correct, tt.points)
			}
		})
	}
}

func TestGradeIsPure(t *testing.T) {
	q := Q{ID: "q1", Correct: "A", Points: 2}
	first := Grade(q, "A")
	second := Grade(q, "A")
	if first != second {
		t.Fatalf("repeated grading diverged: %+v vs %+v", first, second)
	}
}

func TestSubmissionTotal(t *testing.T) {
	results := []Result{
		{IsCorrect: true, PointsEarned: 1},
		{IsCorrect: false, PointsEarned: 0},
		{IsCorrect: true, PointsEarned: 2},
	}
	if got := SubmissionTotal(results); got != 3 {
		t.Fatalf("SubmissionTotal = %d, want 3", got)
	}
	if got := SubmissionTotal(nil); got != 0 {
		t.Fatalf("SubmissionTotal(nil) = %d, want 0", got)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		points, possible, want int
	}{
		{5, 0, 0},   // empty quiz never divides
		{0, 10, 0},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 8, 38}, // 37.5 rounds half away from zero
	}
	for _, tt := range tests {
		if got := Percentage(tt.points, tt.possible); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.points, tt.possible, got, tt.want)
		}
	}
}

func TestComputeStatistics(t *testing.T) {
	empty := ComputeStatistics(nil)
	if empty != (Statistics{}) {
		t.Fatalf("empty input: got %+v, want all zero", empty)
	}

	single := ComputeStatistics([]int{80})
	if single.TotalSubmissions != 1 || single.AverageScore != 80 || single.HighestScore != 80 || single.LowestScore != 80 {
		t.Fatalf("single score: got %+v", single)
	}

	many := ComputeStatistics([]int{50, 100, 0, 75})
	if many.TotalSubmissions != 4 {
		t.Fatalf("count = %d, want 4", many.TotalSubmissions)
	}
	if many.HighestScore != 100 || many.LowestScore != 0 {
		t.Fatalf("bounds: got high=%d low=%d", many.HighestScore, many.LowestScore)
	}
	if many.AverageScore != 56 { // 225/4 = 56.25
		t.Fatalf("average = %d, want 56", many.AverageScore)
	}
}
