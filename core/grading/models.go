package grading

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Grading sections: two quarter marks, a mid-year mark and a final mark.
const (
	SectionFirstTerm  = 1
	SectionMidYear    = 2
	SectionSecondTerm = 3
	SectionFinal      = 4
)

// Sections lists all grading sections in order.
var Sections = []int{SectionFirstTerm, SectionMidYear, SectionSecondTerm, SectionFinal}

type Grade struct {
	ID          int       `json:"id" db:"id"`
	StudentID   int       `json:"student_id" db:"student_id"`
	SubjectID   int       `json:"subject_id" db:"subject_id"`
	Section     int       `json:"section" db:"section"`
	Value       int       `json:"value" db:"value"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	SubjectName string    `json:"subject_name,omitempty" db:"subject_name"`
}

// NewGrade contains information needed to record a new Grade.
// Value carries the 1-5 domain convention but is not enforced by the store.
type NewGrade struct {
	StudentID int `json:"student_id" validate:"required"`
	SubjectID int `json:"subject_id" validate:"required"`
	Section   int `json:"section" validate:"required,oneof=1 2 3 4"`
	Value     int `json:"value" validate:"required"`
}

func (ng NewGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ng)
}
