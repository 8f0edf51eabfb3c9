package attendance

import "testing"

func TestAbsenceCount(t *testing.T) {
	rows := []Attendance{
		{Status: StatusPresent},
		{Status: StatusAbsent},
		{Status: StatusLate},
		{Status: StatusAbsent},
	}
	if got := AbsenceCount(rows); got != 2 {
		t.Errorf("AbsenceCount() = %d, want 2; late must not count", got)
	}
	if got := AbsenceCount(nil); got != 0 {
		t.Errorf("AbsenceCount(nil) = %d, want 0", got)
	}
}

func TestAbsenceThresholds(t *testing.T) {
	tests := []struct {
		count        int
		wantElevated bool
		wantSeverity Severity
	}{
		{count: 0, wantElevated: false, wantSeverity: SeverityNormal},
		{count: 5, wantElevated: false, wantSeverity: SeverityNormal}, // boundary: exactly 5 is not elevated
		{count: 6, wantElevated: true, wantSeverity: SeverityNormal},
		{count: 10, wantElevated: true, wantSeverity: SeverityNormal}, // boundary: exactly 10 is still normal
		{count: 11, wantElevated: true, wantSeverity: SeverityCritical},
	}
	for _, tt := range tests {
		if got := AbsenceElevated(tt.count); got != tt.wantElevated {
			t.Errorf("AbsenceElevated(%d) = %v, want %v", tt.count, got, tt.wantElevated)
		}
		if got := AbsenceSeverity(tt.count); got != tt.wantSeverity {
			t.Errorf("AbsenceSeverity(%d) = %v, want %v", tt.count, got, tt.wantSeverity)
		}
	}
}

func TestSummarize(t *testing.T) {
	rows := make([]Attendance, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, Attendance{Status: StatusAbsent})
	}
	rows = append(rows, Attendance{Status: StatusPresent})

	got := Summarize(rows)
	want := Summary{Absences: 11, Elevated: true, Severity: SeverityCritical}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	if got := Summarize(nil); got != (Summary{Severity: SeverityNormal}) {
		t.Errorf("Summarize(nil) = %+v", got)
	}
}
