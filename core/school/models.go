package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/grading"
)

type Class struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"` // display label, e.g. "3-1"
	Year int    `json:"year" db:"year"`
}

type ClassWithCount struct {
	Class
	StudentCount int `json:"student_count" db:"student_count"`
}

type Subject struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Assignment grants a professor the right to manage one subject for one class.
type Assignment struct {
	ID          int    `json:"id" db:"id"`
	ProfessorID int    `json:"professor_id" db:"professor_id"`
	SubjectID   int    `json:"subject_id" db:"subject_id"`
	ClassID     int    `json:"class_id" db:"class_id"`
	SubjectName string `json:"subject_name" db:"subject_name"`
	ClassName   string `json:"class_name" db:"class_name"`
	ClassYear   int    `json:"class_year" db:"class_year"`
}

// ClassStudent is a roster entry, optionally annotated with the
// student's grades for one subject.
type ClassStudent struct {
	ID      int             `json:"id" db:"id"`
	Name    string          `json:"name" db:"name"`
	Surname string          `json:"surname" db:"surname"`
	Grades  []grading.Grade `json:"grades,omitempty"`
}

// StaffMember is a staff directory row. Subjects holds the comma-joined
// names of every subject the professor is assigned to; empty for admins.
type StaffMember struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Surname  string `json:"surname" db:"surname"`
	Role     string `json:"role" db:"role"`
	Email    string `json:"email" db:"email"`
	Subjects string `json:"subjects" db:"subjects"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name string `json:"name" validate:"required"`
	Year int    `json:"year" validate:"required,min=1,max=4"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}
