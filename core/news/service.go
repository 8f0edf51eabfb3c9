package news

import "context"

type (
	Repository interface {
		// QueryAll returns all news, descending by date string.
		QueryAll(ctx context.Context) ([]NewsItem, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) All(ctx context.Context) ([]NewsItem, error) {
	return svc.repo.QueryAll(ctx)
}
