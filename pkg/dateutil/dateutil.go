package dateutil

// FullRetirementAge returns the Social Security Full Retirement Age for a
// birth year, per the SSA schedule (partial-year ages rounded down). This is
// a static lookup; no actuarial adjustment is applied.
func FullRetirementAge(birthYear int) int {
	switch {
	case birthYear <= 1942:
		return 65
	case birthYear >= 1943 && birthYear <= 1954:
		return 66
	case birthYear >= 1955 && birthYear <= 1959:
		return 66 // 66 plus 2 months per year after 1954, rounded down
	default: // 1960 and later
		return 67
	}
}
