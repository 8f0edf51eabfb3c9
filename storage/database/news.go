package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/news"
)

type newsRepository struct {
	db *sqlx.DB
}

var _ news.Repository = (*newsRepository)(nil)

func NewNewsRepository(db *sqlx.DB) *newsRepository {
	return &newsRepository{db: db}
}

func (repo *newsRepository) QueryAll(ctx context.Context) ([]news.NewsItem, error) {
	items := []news.NewsItem{}
	// date is a plain string column; the ordering is lexicographic
	err := repo.db.SelectContext(ctx, &items, "SELECT * FROM news ORDER BY date DESC")
	if err != nil {
		return nil, errors.Wrap(err, "querying news")
	}
	return items, nil
}
