package attendance

// Absence thresholds. These are two distinct tiers, not a duplication:
// above ElevatedThreshold the absence count is highlighted as a warning,
// above CriticalThreshold the student is flagged as critical.
const (
	ElevatedThreshold = 5
	CriticalThreshold = 10
)

type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityCritical Severity = "critical"
)

// AbsenceCount counts rows with status "absent". "late" and "present"
// are never counted.
func AbsenceCount(rows []Attendance) int {
	var n int
	for _, row := range rows {
		if row.Status == StatusAbsent {
			n++
		}
	}
	return n
}

// AbsenceSeverity is critical strictly above CriticalThreshold;
// a count of exactly 10 is still normal.
func AbsenceSeverity(count int) Severity {
	if count > CriticalThreshold {
		return SeverityCritical
	}
	return SeverityNormal
}

// AbsenceElevated reports whether the count crosses the lower warning tier.
func AbsenceElevated(count int) bool {
	return count > ElevatedThreshold
}

// Summary is the derived view of a student's attendance rows.
type Summary struct {
	Absences int      `json:"absences"`
	Elevated bool     `json:"elevated"`
	Severity Severity `json:"severity"`
}

func Summarize(rows []Attendance) Summary {
	count := AbsenceCount(rows)
	return Summary{
		Absences: count,
		Elevated: AbsenceElevated(count),
		Severity: AbsenceSeverity(count),
	}
}
