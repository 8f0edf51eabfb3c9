package user

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/attendance"
	"github.com/shkolla/portal/core/grading"
)

var (
	ErrNotFound    = core.NewNotFoundError("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

// DetailedStudent is the admin bulk view of a student: full grade and
// attendance history plus the values derived from them.
type DetailedStudent struct {
	ID         int                     `json:"id" db:"id"`
	Name       string                  `json:"name" db:"name"`
	Surname    string                  `json:"surname" db:"surname"`
	Email      string                  `json:"email" db:"email"`
	ClassName  *string                 `json:"class_name" db:"class_name"`
	Grades     []grading.Grade         `json:"grades"`
	Attendance []attendance.Attendance `json:"attendance"`
	Average    *float64                `json:"average"` // null when the student has no grades
	Summary    attendance.Summary      `json:"attendance_summary"`
}

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		GetProfile(ctx context.Context, id int) (Profile, error)
		QueryAllUsersWithClass(ctx context.Context) ([]Profile, error)
		QueryStudentsDetailed(ctx context.Context) ([]DetailedStudent, error)
		UpdatePassword(ctx context.Context, id int, hash []byte) error
		// DeleteUser removes the user and cascades to their grades,
		// attendance and professor assignments in one transaction.
		// A missing id is a no-op.
		DeleteUser(ctx context.Context, id int) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *Service) checkEmailUniqueness(ctx context.Context, email string) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Authenticate looks the user up by exact email match and verifies the
// password against the stored hash. Bad credentials yield ErrNotFound.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(email))
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrNotFound
	}
	return usr, nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	usr := User{
		Email:   nu.Email,
		Role:    nu.Role,
		Name:    nu.Name,
		Surname: nu.Surname,
		Year:    nu.Year,
		ClassID: nu.ClassID,
	}
	if nu.DOB != "" {
		dob := nu.DOB
		usr.DOB = &dob
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) sendWelcomeEmail(usr User) {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s account has been created. You can now log in at %s with your email address.\n",
		usr.Name, svc.conf.AppName, svc.conf.FrontendBaseURL,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name + " " + usr.Surname, Address: usr.Email}},
		Subject: fmt.Sprintf("Welcome to %s", svc.conf.AppName),
		BodyStr: body,
	})
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email))
}

// Profile returns the user joined with their class; class fields are
// null when the user has none.
func (svc *Service) Profile(ctx context.Context, id int) (Profile, error) {
	return svc.repo.GetProfile(ctx, id)
}

func (svc *Service) QueryAllWithClass(ctx context.Context) ([]Profile, error) {
	return svc.repo.QueryAllUsersWithClass(ctx)
}

// StudentsDetailed returns every student with full grade and attendance
// history, the overall average and the absence summary derived from them.
func (svc *Service) StudentsDetailed(ctx context.Context) ([]DetailedStudent, error) {
	students, err := svc.repo.QueryStudentsDetailed(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if avg, ok := grading.OverallAverage(students[i].Grades); ok {
			students[i].Average = &avg
		}
		students[i].Summary = attendance.Summarize(students[i].Attendance)
	}
	return students, nil
}

// SetPassword replaces the user's password, hashing it first.
func (svc *Service) SetPassword(ctx context.Context, id int, pwd string) error {
	usr := User{}
	if err := usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	return svc.repo.UpdatePassword(ctx, id, usr.PasswordHash)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteUser(ctx, id)
}
