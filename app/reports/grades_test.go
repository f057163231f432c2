package reports

import "testing"

func TestCalculateGradeBands(t *testing.T) {
	cases := []struct {
		marks, total float64
		want         string
	}{
		{95, 100, "A+"},
		{90, 100, "A+"},
		{89.9, 100, "A"},
		{80, 100, "A"},
		{75, 100, "B"},
		{70, 100, "B"},
		{65, 100, "C"},
		{60, 100, "C"},
		{55, 100, "D"},
		{50, 100, "D"},
		{49.9, 100, "F"},
		{0, 100, "F"},
		{45, 50, "A+"},
		{30, 60, "D"},
	}
	for _, c := range cases {
		if got := CalculateGrade(c.marks, c.total); got != c.want {
			t.Errorf("CalculateGrade(%v, %v) = %q, want %q", c.marks, c.total, got, c.want)
		}
	}
}

func TestCalculateGradeZeroTotal(t *testing.T) {
	for _, marks := range []float64{0, 10, -5, 100} {
		if got := CalculateGrade(marks, 0); got != "-" {
			t.Errorf("CalculateGrade(%v, 0) = %q, want \"-\"", marks, got)
		}
	}
}

func TestCalculateGradeMonotonic(t *testing.T) {
	rank := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "A": 4, "A+": 5}
	prev := -1
	for marks := 0.0; marks <= 100; marks += 0.5 {
		grade := CalculateGrade(marks, 100)
		r, ok := rank[grade]
		if !ok {
			t.Fatalf("unexpected grade %q for marks %v", grade, marks)
		}
		if r < prev {
			t.Fatalf("grade rank decreased at marks %v: %q", marks, grade)
		}
		prev = r
	}
}
