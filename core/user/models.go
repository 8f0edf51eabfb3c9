package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/shkolla/portal/core"
)

// Roles
const (
	RoleAdmin     = "admin"
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

var AllRoles = []string{RoleAdmin, RoleProfessor, RoleStudent}

type User struct {
	ID           int     `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	Role         string  `json:"role" db:"role"`
	Name         string  `json:"name" db:"name"`
	Surname      string  `json:"surname" db:"surname"`
	DOB          *string `json:"dob,omitempty" db:"dob"`
	Year         *int    `json:"year,omitempty" db:"year"`
	ClassID      *int    `json:"class_id,omitempty" db:"class_id"`
	PasswordHash []byte  `json:"-" db:"password"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u *User) IsProfessor() bool { return u.Role == RoleProfessor }
func (u *User) IsStudent() bool   { return u.Role == RoleStudent }

// Profile is a User joined with their class. Class fields are null
// for users without a class (admins, professors).
type Profile struct {
	User
	ClassName *string `json:"class_name" db:"class_name"`
	ClassYear *int    `json:"class_year,omitempty" db:"class_year"`
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin professor student"`
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	DOB      string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Year     *int   `json:"year" validate:"omitempty,min=1,max=4"`
	ClassID  *int   `json:"class_id"`
}

func (nu *NewUser) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	// emails are stored and matched case-sensitively; trim only
	nu.Email = core.CleanString(nu.Email)
	nu.Name = core.CleanString(nu.Name)
	nu.Surname = core.CleanString(nu.Surname)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.checkEmailUniqueness(ctx, nu.Email)
}
