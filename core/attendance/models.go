package attendance

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

type Attendance struct {
	ID        int    `json:"id" db:"id"`
	StudentID int    `json:"student_id" db:"student_id"`
	Date      string `json:"date" db:"date"` // calendar date, "2006-01-02"
	Status    string `json:"status" db:"status"`
}
