package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/user"
)

// Seed inserts the deterministic demo dataset. It is gated on the users
// table being empty: once any user exists, reseeding never occurs.
func Seed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return errors.Wrap(err, "counting users")
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning seed transaction")
	}
	defer func() { _ = tx.Rollback() }()

	seedUser := func(email, pwd, role, name, surname string, dob *string, year, classID *int) (int64, error) {
		usr := user.User{}
		if err := usr.SetPassword(pwd); err != nil {
			return 0, errors.Wrap(err, "hashing seed password")
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO users (email, password, role, name, surname, dob, year, class_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			email, usr.PasswordHash, role, name, surname, dob, year, classID,
		)
		if err != nil {
			return 0, errors.Wrapf(err, "seeding user %s", email)
		}
		return res.LastInsertId()
	}

	if _, err = seedUser("admin@school.edu", "admin123", user.RoleAdmin, "Admin", "User", nil, nil, nil); err != nil {
		return err
	}

	// 12 classes: "1-1" .. "4-3"
	var classIDs []int64
	for y := 1; y <= 4; y++ {
		for c := 1; c <= 3; c++ {
			res, err := tx.ExecContext(ctx,
				"INSERT INTO classes (name, year) VALUES (?, ?)",
				fmt.Sprintf("%d-%d", y, c), y,
			)
			if err != nil {
				return errors.Wrap(err, "seeding classes")
			}
			id, err := res.LastInsertId()
			if err != nil {
				return errors.Wrap(err, "seeding classes")
			}
			classIDs = append(classIDs, id)
		}
	}

	subjects := []string{
		"Matematikë", "Gjuhë Shqipe", "Gjuhë Angleze", "Fizikë", "Kimi",
		"Biologji", "Histori", "Gjeografi", "Informatikë", "Edukatë Fizike",
		"Sociologji", "Filozofi",
	}
	var subjectIDs []int64
	for _, name := range subjects {
		res, err := tx.ExecContext(ctx, "INSERT INTO subjects (name) VALUES (?)", name)
		if err != nil {
			return errors.Wrap(err, "seeding subjects")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "seeding subjects")
		}
		subjectIDs = append(subjectIDs, id)
	}

	profID, err := seedUser("prof@school.edu", "prof123", user.RoleProfessor, "Arben", "Krasniqi", nil, nil, nil)
	if err != nil {
		return err
	}
	// assign the professor to the first subject in classes 1-1 and 3-1
	for _, classID := range []int64{classIDs[0], classIDs[6]} {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO professor_assignments (professor_id, subject_id, class_id) VALUES (?, ?, ?)",
			profID, subjectIDs[0], classID,
		); err != nil {
			return errors.Wrap(err, "seeding professor assignments")
		}
	}

	dob := "2008-05-15"
	year3, year1 := 3, 1
	class31, class11 := int(classIDs[6]), int(classIDs[0])
	studentID, err := seedUser("student@school.edu", "student123", user.RoleStudent, "Driton", "Berisha", &dob, &year3, &class31)
	if err != nil {
		return err
	}

	names := []string{"Agim", "Besa", "Fatmir", "Gresa", "Ilir"}
	surnames := []string{"Hoxha", "Gashi", "Leka", "Rama", "Zeka"}
	dob31 := "2008-06-20"
	for i := range names {
		if _, err = seedUser(
			fmt.Sprintf("student_3_1_%d@school.edu", i), "student123", user.RoleStudent,
			names[i], surnames[i], &dob31, &year3, &class31,
		); err != nil {
			return err
		}
	}

	names1 := []string{"Luan", "Teuta", "Valon", "Zana"}
	surnames1 := []string{"Krasniqi", "Morina", "Shala", "Bytyqi"}
	dob11 := "2010-09-10"
	for i := range names1 {
		if _, err = seedUser(
			fmt.Sprintf("student_1_1_%d@school.edu", i), "student123", user.RoleStudent,
			names1[i], surnames1[i], &dob11, &year1, &class11,
		); err != nil {
			return err
		}
	}

	// a few grades for the demo student in the first 5 subjects
	for i, sid := range subjectIDs[:5] {
		for _, g := range []struct{ section, value int }{
			{1, 4 + (i % 2)},
			{1, 5},
			{2, 4},
		} {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO grades (student_id, subject_id, section, value) VALUES (?, ?, ?, ?)",
				studentID, sid, g.section, g.value,
			); err != nil {
				return errors.Wrap(err, "seeding grades")
			}
		}
	}

	for _, date := range []string{"2025-09-01", "2025-09-02", "2025-09-03", "2025-09-04", "2025-09-05"} {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO attendance (student_id, date, status) VALUES (?, ?, ?)",
			studentID, date, "present",
		); err != nil {
			return errors.Wrap(err, "seeding attendance")
		}
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO attendance (student_id, date, status) VALUES (?, ?, ?)",
		studentID, "2025-09-08", "absent",
	); err != nil {
		return errors.Wrap(err, "seeding attendance")
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO news (title, content, date, category) VALUES (?, ?, ?, ?)",
		`Mirësevini në SHMK Gjimnazi "Sami Frashëri"`,
		"Viti i ri shkollor fillon me sukses. Mirësevini në uebfaqen tonë të re bashkëkohore!",
		"2025-08-25",
		"Lajme",
	); err != nil {
		return errors.Wrap(err, "seeding news")
	}

	return errors.Wrap(tx.Commit(), "committing seed")
}
