package reports

// CalculateGrade bands a mark into a letter grade by percentage. A zero
// total returns the "-" sentinel instead of dividing.
func CalculateGrade(marks, total float64) string {
	if total == 0 {
		return "-"
	}
	percentage := marks / total * 100
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}
