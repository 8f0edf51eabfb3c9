package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) QueryForStudent(ctx context.Context, studentID int) ([]attendance.Attendance, error) {
	rows := []attendance.Attendance{}
	err := repo.db.SelectContext(ctx, &rows,
		"SELECT * FROM attendance WHERE student_id = ? ORDER BY date", studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	return rows, nil
}
