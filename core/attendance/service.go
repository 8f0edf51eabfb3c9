package attendance

import "context"

type (
	Repository interface {
		QueryForStudent(ctx context.Context, studentID int) ([]Attendance, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) ForStudent(ctx context.Context, studentID int) ([]Attendance, error) {
	return svc.repo.QueryForStudent(ctx, studentID)
}
