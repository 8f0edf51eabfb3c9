// Package policy holds the access rules as pure functions over a verified
// actor. Every rule is evaluated before any repository call; none of them
// trusts client-supplied role fields.
package policy

import (
	"github.com/shkolla/portal/core/school"
	"github.com/shkolla/portal/core/user"
)

// Actor identifies the authenticated caller, taken from verified session
// claims only.
type Actor struct {
	UserID int
	Role   string
}

func (a Actor) IsAdmin() bool     { return a.Role == user.RoleAdmin }
func (a Actor) IsProfessor() bool { return a.Role == user.RoleProfessor }
func (a Actor) IsStudent() bool   { return a.Role == user.RoleStudent }

// CanReadStudent reports whether the actor may read a student's profile,
// grades or attendance. Students read only their own records.
func CanReadStudent(a Actor, studentID int) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID == studentID
}

// CanReadAssignments reports whether the actor may list a professor's
// assignments.
func CanReadAssignments(a Actor, professorID int) bool {
	if a.IsAdmin() {
		return true
	}
	return a.IsProfessor() && a.UserID == professorID
}

// CanViewRoster reports whether the actor may view a class roster.
// Professors see only classes present in their own assignment set.
func CanViewRoster(a Actor, classID int, assignments []school.Assignment) bool {
	if a.IsAdmin() {
		return true
	}
	if !a.IsProfessor() {
		return false
	}
	for _, asg := range assignments {
		if asg.ProfessorID == a.UserID && asg.ClassID == classID {
			return true
		}
	}
	return false
}

// CanManageGrade reports whether the actor may create or delete a grade
// for the given subject in the given class. Professors need a matching
// (subject, class) assignment of their own.
func CanManageGrade(a Actor, subjectID, classID int, assignments []school.Assignment) bool {
	if a.IsAdmin() {
		return true
	}
	if !a.IsProfessor() {
		return false
	}
	for _, asg := range assignments {
		if asg.ProfessorID == a.UserID && asg.SubjectID == subjectID && asg.ClassID == classID {
			return true
		}
	}
	return false
}

// CanManageUsers gates user creation/deletion, class creation and the
// admin bulk reads.
func CanManageUsers(a Actor) bool {
	return a.IsAdmin()
}
