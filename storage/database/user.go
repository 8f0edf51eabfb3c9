package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/attendance"
	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)", email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.ExecContext(ctx,
		"INSERT INTO users (email, password, role, name, surname, dob, year, class_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		usr.Email, usr.PasswordHash, usr.Role, usr.Name, usr.Surname, usr.DOB, usr.Year, usr.ClassID,
	)
	if err != nil {
		// the unique email constraint is the store's last line of defense
		if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "creating user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	usr.ID = int(id)
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, "SELECT * FROM users WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by id")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, "SELECT * FROM users WHERE email = ?", email)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by email")
	}
	return usr, nil
}

func (repo *userRepository) GetProfile(ctx context.Context, id int) (user.Profile, error) {
	var profile user.Profile
	err := repo.db.GetContext(ctx, &profile, `
		SELECT u.*, c.name AS class_name, c.year AS class_year
		FROM users u
		LEFT JOIN classes c ON u.class_id = c.id
		WHERE u.id = ?`, id,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, errors.Wrap(err, "finding profile")
	}
	return profile, nil
}

func (repo *userRepository) QueryAllUsersWithClass(ctx context.Context) ([]user.Profile, error) {
	users := []user.Profile{}
	err := repo.db.SelectContext(ctx, &users, `
		SELECT u.*, c.name AS class_name, c.year AS class_year
		FROM users u
		LEFT JOIN classes c ON u.class_id = c.id
		ORDER BY u.id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying users with class")
	}
	return users, nil
}

func (repo *userRepository) QueryStudentsDetailed(ctx context.Context) ([]user.DetailedStudent, error) {
	students := []user.DetailedStudent{}
	err := repo.db.SelectContext(ctx, &students, `
		SELECT u.id, u.name, u.surname, u.email, c.name AS class_name
		FROM users u
		LEFT JOIN classes c ON u.class_id = c.id
		WHERE u.role = 'student'
		ORDER BY u.id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	for i := range students {
		grades := []grading.Grade{}
		err = repo.db.SelectContext(ctx, &grades, `
			SELECT g.*, s.name AS subject_name
			FROM grades g
			JOIN subjects s ON g.subject_id = s.id
			WHERE g.student_id = ?`, students[i].ID,
		)
		if err != nil {
			return nil, errors.Wrap(err, "querying student grades")
		}
		students[i].Grades = grades

		rows := []attendance.Attendance{}
		err = repo.db.SelectContext(ctx, &rows,
			"SELECT * FROM attendance WHERE student_id = ?", students[i].ID,
		)
		if err != nil {
			return nil, errors.Wrap(err, "querying student attendance")
		}
		students[i].Attendance = rows
	}
	return students, nil
}

func (repo *userRepository) UpdatePassword(ctx context.Context, id int, hash []byte) error {
	res, err := repo.db.ExecContext(ctx, "UPDATE users SET password = ? WHERE id = ?", hash, id)
	if err != nil {
		return errors.Wrap(err, "updating password")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}

// DeleteUser cascades to the user's grades, attendance and professor
// assignments inside a single transaction; a crash can never leave a
// partially-cascaded state. A missing id is a no-op.
func (repo *userRepository) DeleteUser(ctx context.Context, id int) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning delete transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM grades WHERE student_id = ?",
		"DELETE FROM attendance WHERE student_id = ?",
		"DELETE FROM professor_assignments WHERE professor_id = ?",
		"DELETE FROM users WHERE id = ?",
	} {
		if _, err = tx.ExecContext(ctx, q, id); err != nil {
			return errors.Wrap(err, "cascading user delete")
		}
	}
	return errors.Wrap(tx.Commit(), "committing user delete")
}
