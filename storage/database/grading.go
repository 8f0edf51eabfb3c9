package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/grading"
)

type gradingRepository struct {
	db *sqlx.DB
}

var _ grading.Repository = (*gradingRepository)(nil)

func NewGradingRepository(db *sqlx.DB) *gradingRepository {
	return &gradingRepository{db: db}
}

func (repo *gradingRepository) QueryGradesForStudent(ctx context.Context, studentID int) ([]grading.Grade, error) {
	grades := []grading.Grade{}
	err := repo.db.SelectContext(ctx, &grades, `
		SELECT g.*, s.name AS subject_name
		FROM grades g
		JOIN subjects s ON g.subject_id = s.id
		WHERE g.student_id = ?`, studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	return grades, nil
}

func (repo *gradingRepository) GetGradeByID(ctx context.Context, id int) (grading.Grade, error) {
	var grade grading.Grade
	err := repo.db.GetContext(ctx, &grade, "SELECT * FROM grades WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return grading.Grade{}, grading.ErrNotFound
		}
		return grading.Grade{}, errors.Wrap(err, "finding grade")
	}
	return grade, nil
}

func (repo *gradingRepository) CreateGrade(ctx context.Context, ng grading.NewGrade) (grading.Grade, error) {
	res, err := repo.db.ExecContext(ctx,
		"INSERT INTO grades (student_id, subject_id, section, value) VALUES (?, ?, ?, ?)",
		ng.StudentID, ng.SubjectID, ng.Section, ng.Value,
	)
	if err != nil {
		return grading.Grade{}, errors.Wrap(err, "creating grade")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return grading.Grade{}, errors.Wrap(err, "creating grade")
	}
	return repo.GetGradeByID(ctx, int(id)) // pick up the store-assigned timestamp
}

// DeleteGrade succeeds as a no-op for an already-deleted id.
func (repo *gradingRepository) DeleteGrade(ctx context.Context, id int) error {
	_, err := repo.db.ExecContext(ctx, "DELETE FROM grades WHERE id = ?", id)
	return errors.Wrap(err, "deleting grade")
}
