package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/school"
)

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *sqlx.DB) *schoolRepository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CreateClass(ctx context.Context, nc school.NewClass) (school.Class, error) {
	res, err := repo.db.ExecContext(ctx, "INSERT INTO classes (name, year) VALUES (?, ?)", nc.Name, nc.Year)
	if err != nil {
		return school.Class{}, errors.Wrap(err, "creating class")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return school.Class{}, errors.Wrap(err, "creating class")
	}
	return school.Class{ID: int(id), Name: nc.Name, Year: nc.Year}, nil
}

func (repo *schoolRepository) QueryClassesWithStudentCount(ctx context.Context) ([]school.ClassWithCount, error) {
	classes := []school.ClassWithCount{}
	err := repo.db.SelectContext(ctx, &classes, `
		SELECT c.*,
		       (SELECT COUNT(*) FROM users WHERE class_id = c.id AND role = 'student') AS student_count
		FROM classes c
		ORDER BY c.id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return classes, nil
}

func (repo *schoolRepository) QuerySubjects(ctx context.Context) ([]school.Subject, error) {
	subjects := []school.Subject{}
	err := repo.db.SelectContext(ctx, &subjects, "SELECT * FROM subjects ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return subjects, nil
}

func (repo *schoolRepository) QueryAssignmentsForProfessor(ctx context.Context, professorID int) ([]school.Assignment, error) {
	assignments := []school.Assignment{}
	err := repo.db.SelectContext(ctx, &assignments, `
		SELECT pa.*, c.name AS class_name, c.year AS class_year, s.name AS subject_name
		FROM professor_assignments pa
		JOIN classes c ON pa.class_id = c.id
		JOIN subjects s ON pa.subject_id = s.id
		WHERE pa.professor_id = ?`, professorID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return assignments, nil
}

func (repo *schoolRepository) QueryStudentsInClass(ctx context.Context, classID int) ([]school.ClassStudent, error) {
	students := []school.ClassStudent{}
	err := repo.db.SelectContext(ctx, &students,
		"SELECT id, name, surname FROM users WHERE class_id = ? AND role = 'student' ORDER BY id", classID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying class roster")
	}
	return students, nil
}

func (repo *schoolRepository) QueryStudentsInClassWithGrades(ctx context.Context, classID, subjectID int) ([]school.ClassStudent, error) {
	students, err := repo.QueryStudentsInClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return students, nil
	}

	ids := make([]int, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	query, args, err := sqlx.In(
		"SELECT * FROM grades WHERE subject_id = ? AND student_id IN (?)", subjectID, ids,
	)
	if err != nil {
		return nil, errors.Wrap(err, "building roster grades query")
	}
	grades := []grading.Grade{}
	if err = repo.db.SelectContext(ctx, &grades, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "querying roster grades")
	}

	byStudent := make(map[int][]grading.Grade, len(students))
	for _, g := range grades {
		byStudent[g.StudentID] = append(byStudent[g.StudentID], g)
	}
	for i := range students {
		students[i].Grades = byStudent[students[i].ID]
		if students[i].Grades == nil {
			students[i].Grades = []grading.Grade{}
		}
	}
	return students, nil
}

func (repo *schoolRepository) QueryStaffDirectory(ctx context.Context) ([]school.StaffMember, error) {
	staff := []school.StaffMember{}
	err := repo.db.SelectContext(ctx, &staff, `
		SELECT u.id, u.name, u.surname, u.role, u.email,
		       COALESCE(GROUP_CONCAT(DISTINCT s.name), '') AS subjects
		FROM users u
		LEFT JOIN professor_assignments pa ON u.id = pa.professor_id
		LEFT JOIN subjects s ON pa.subject_id = s.id
		WHERE u.role IN ('professor', 'admin')
		GROUP BY u.id
		ORDER BY u.id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying staff directory")
	}
	return staff, nil
}
