package grading

import (
	"context"

	"github.com/shkolla/portal/core"
)

var ErrNotFound = core.NewNotFoundError("grade not found")

type (
	Repository interface {
		QueryGradesForStudent(ctx context.Context, studentID int) ([]Grade, error)
		GetGradeByID(ctx context.Context, id int) (Grade, error)
		CreateGrade(ctx context.Context, ng NewGrade) (Grade, error)
		// DeleteGrade is a no-op for a missing id.
		DeleteGrade(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ForStudent returns the student's grades joined with subject names.
// An unknown student id yields an empty list, not an error.
func (svc *Service) ForStudent(ctx context.Context, studentID int) ([]Grade, error) {
	return svc.repo.QueryGradesForStudent(ctx, studentID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	return svc.repo.CreateGrade(ctx, ng)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteGrade(ctx, id)
}

// Report builds the per-subject section groups and averages for a student.
func (svc *Service) Report(ctx context.Context, studentID int) (StudentReport, error) {
	grades, err := svc.repo.QueryGradesForStudent(ctx, studentID)
	if err != nil {
		return StudentReport{}, err
	}
	return BuildReport(grades), nil
}
