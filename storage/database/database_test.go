package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/user"
)

// newTestDB opens a fresh in-memory store, migrated and seeded.
// A single connection keeps the in-memory database alive for the
// whole test.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err = Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	if err = Seed(context.Background(), db); err != nil {
		t.Fatalf("seeding test database: %v", err)
	}
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var before int
	if err := db.Get(&before, "SELECT COUNT(*) FROM users"); err != nil {
		t.Fatal(err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("reseeding: %v", err)
	}
	var after int
	if err := db.Get(&after, "SELECT COUNT(*) FROM users"); err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("user count changed on reseed: %d -> %d", before, after)
	}
}

func Test_userRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("seeded admin authenticates", func(t *testing.T) {
		usr, err := repo.GetUserByEmail(ctx, "admin@school.edu")
		if err != nil {
			t.Fatalf("GetUserByEmail() error = %v", err)
		}
		if usr.Role != user.RoleAdmin {
			t.Errorf("role = %q, want %q", usr.Role, user.RoleAdmin)
		}
		if err = usr.CheckPassword("admin123"); err != nil {
			t.Errorf("CheckPassword() error = %v", err)
		}
		if err = usr.CheckPassword("nope"); err == nil {
			t.Error("CheckPassword() accepted a wrong password")
		}
	})

	t.Run("unknown lookups", func(t *testing.T) {
		if _, err := repo.GetUserByEmail(ctx, "ghost@school.edu"); err != user.ErrNotFound {
			t.Errorf("GetUserByEmail() error = %v, want ErrNotFound", err)
		}
		if _, err := repo.GetUserByID(ctx, 999); err != user.ErrNotFound {
			t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("email uniqueness", func(t *testing.T) {
		if err := repo.CheckEmailUniqueness(ctx, "admin@school.edu"); err != user.ErrEmailExists {
			t.Errorf("CheckEmailUniqueness() error = %v, want ErrEmailExists", err)
		}
		if err := repo.CheckEmailUniqueness(ctx, "new@school.edu"); err != nil {
			t.Errorf("CheckEmailUniqueness() error = %v", err)
		}

		usr := user.User{Email: "admin@school.edu", Role: user.RoleAdmin, Name: "Dup", Surname: "Licate"}
		_ = usr.SetPassword("pwd")
		if _, err := repo.CreateUser(ctx, usr); err != user.ErrEmailExists {
			t.Errorf("CreateUser() error = %v, want ErrEmailExists", err)
		}
	})

	t.Run("profile joins the class", func(t *testing.T) {
		student, err := repo.GetUserByEmail(ctx, "student@school.edu")
		if err != nil {
			t.Fatal(err)
		}
		profile, err := repo.GetProfile(ctx, student.ID)
		if err != nil {
			t.Fatalf("GetProfile() error = %v", err)
		}
		if profile.ClassName == nil || *profile.ClassName != "3-1" {
			t.Errorf("class_name = %v, want 3-1", profile.ClassName)
		}

		admin, _ := repo.GetUserByEmail(ctx, "admin@school.edu")
		adminProfile, err := repo.GetProfile(ctx, admin.ID)
		if err != nil {
			t.Fatal(err)
		}
		if adminProfile.ClassName != nil {
			t.Errorf("admin class_name = %v, want null", *adminProfile.ClassName)
		}
	})

	t.Run("delete cascades in one transaction", func(t *testing.T) {
		student, err := repo.GetUserByEmail(ctx, "student@school.edu")
		if err != nil {
			t.Fatal(err)
		}
		if err = repo.DeleteUser(ctx, student.ID); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}

		for _, q := range []string{
			"SELECT COUNT(*) FROM grades WHERE student_id = ?",
			"SELECT COUNT(*) FROM attendance WHERE student_id = ?",
			"SELECT COUNT(*) FROM users WHERE id = ?",
		} {
			var n int
			if err = db.Get(&n, q, student.ID); err != nil {
				t.Fatal(err)
			}
			if n != 0 {
				t.Errorf("%q = %d, want 0", q, n)
			}
		}

		// a missing id is a no-op
		if err = repo.DeleteUser(ctx, student.ID); err != nil {
			t.Errorf("DeleteUser() on missing id error = %v", err)
		}
	})
}

func Test_schoolRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewSchoolRepository(db)
	ctx := context.Background()

	prof, err := NewUserRepository(db).GetUserByEmail(ctx, "prof@school.edu")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("classes with student counts", func(t *testing.T) {
		classes, err := repo.QueryClassesWithStudentCount(ctx)
		if err != nil {
			t.Fatalf("QueryClassesWithStudentCount() error = %v", err)
		}
		if len(classes) != 12 {
			t.Fatalf("got %d classes, want 12", len(classes))
		}
		counts := make(map[string]int, len(classes))
		for _, c := range classes {
			counts[c.Name] = c.StudentCount
		}
		if counts["3-1"] != 6 {
			t.Errorf("3-1 student_count = %d, want 6", counts["3-1"])
		}
		if counts["1-1"] != 4 {
			t.Errorf("1-1 student_count = %d, want 4", counts["1-1"])
		}
		if counts["4-3"] != 0 {
			t.Errorf("4-3 student_count = %d, want 0", counts["4-3"])
		}
	})

	t.Run("subjects", func(t *testing.T) {
		subjects, err := repo.QuerySubjects(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(subjects) != 12 {
			t.Errorf("got %d subjects, want 12", len(subjects))
		}
	})

	t.Run("professor assignments", func(t *testing.T) {
		assignments, err := repo.QueryAssignmentsForProfessor(ctx, prof.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(assignments) != 2 {
			t.Fatalf("got %d assignments, want 2", len(assignments))
		}
		for _, asg := range assignments {
			if asg.SubjectName != "Matematikë" {
				t.Errorf("subject_name = %q, want Matematikë", asg.SubjectName)
			}
		}
		if none, err := repo.QueryAssignmentsForProfessor(ctx, 999); err != nil || len(none) != 0 {
			t.Errorf("unknown professor: assignments = %v, err = %v", none, err)
		}
	})

	t.Run("roster with subject grades", func(t *testing.T) {
		assignments, err := repo.QueryAssignmentsForProfessor(ctx, prof.ID)
		if err != nil {
			t.Fatal(err)
		}
		var class31 int
		for _, asg := range assignments {
			if asg.ClassName == "3-1" {
				class31 = asg.ClassID
			}
		}

		students, err := repo.QueryStudentsInClassWithGrades(ctx, class31, assignments[0].SubjectID)
		if err != nil {
			t.Fatalf("QueryStudentsInClassWithGrades() error = %v", err)
		}
		if len(students) != 6 {
			t.Fatalf("got %d students, want 6", len(students))
		}
		// the demo student has three seeded grades in the first subject
		if got := len(students[0].Grades); got != 3 {
			t.Errorf("demo student grades = %d, want 3", got)
		}
		// the rest have an empty list, not null
		for _, s := range students[1:] {
			if s.Grades == nil {
				t.Errorf("student %d grades are nil, want empty list", s.ID)
			}
		}
	})

	t.Run("staff directory", func(t *testing.T) {
		staff, err := repo.QueryStaffDirectory(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(staff) != 2 {
			t.Fatalf("got %d staff, want 2", len(staff))
		}
		for _, member := range staff {
			switch member.Role {
			case user.RoleAdmin:
				if member.Subjects != "" {
					t.Errorf("admin subjects = %q, want empty", member.Subjects)
				}
			case user.RoleProfessor:
				// assigned to the same subject in two classes; listed once
				if member.Subjects != "Matematikë" {
					t.Errorf("professor subjects = %q, want Matematikë", member.Subjects)
				}
			default:
				t.Errorf("unexpected role %q in staff directory", member.Role)
			}
		}
	})
}

func Test_gradingRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGradingRepository(db)
	ctx := context.Background()

	student, err := NewUserRepository(db).GetUserByEmail(ctx, "student@school.edu")
	if err != nil {
		t.Fatal(err)
	}

	grades, err := repo.QueryGradesForStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("QueryGradesForStudent() error = %v", err)
	}
	if len(grades) != 15 {
		t.Fatalf("got %d grades, want 15", len(grades))
	}
	for _, g := range grades {
		if g.SubjectName == "" {
			t.Error("grade is missing its subject name")
		}
	}

	grade, err := repo.CreateGrade(ctx, grading.NewGrade{
		StudentID: student.ID, SubjectID: 6, Section: grading.SectionFinal, Value: 5,
	})
	if err != nil {
		t.Fatalf("CreateGrade() error = %v", err)
	}
	if grade.ID == 0 || grade.CreatedAt.IsZero() {
		t.Errorf("created grade is missing id or timestamp: %+v", grade)
	}

	if err = repo.DeleteGrade(ctx, grade.ID); err != nil {
		t.Fatalf("DeleteGrade() error = %v", err)
	}
	if _, err = repo.GetGradeByID(ctx, grade.ID); err != grading.ErrNotFound {
		t.Errorf("GetGradeByID() after delete error = %v, want ErrNotFound", err)
	}
	// deleting again is a no-op
	if err = repo.DeleteGrade(ctx, grade.ID); err != nil {
		t.Errorf("DeleteGrade() on missing id error = %v", err)
	}
}

func Test_attendanceRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	student, err := NewUserRepository(db).GetUserByEmail(ctx, "student@school.edu")
	if err != nil {
		t.Fatal(err)
	}

	rows, err := repo.QueryForStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("QueryForStudent() error = %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("got %d attendance rows, want 6", len(rows))
	}
	var absences int
	for _, row := range rows {
		if row.Status == "absent" {
			absences++
		}
	}
	if absences != 1 {
		t.Errorf("got %d absences, want 1", absences)
	}
}

func Test_newsRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewNewsRepository(db)
	ctx := context.Background()

	if _, err := db.Exec(
		"INSERT INTO news (title, content, date, category) VALUES (?, ?, ?, ?)",
		"Njoftim", "Orari i ri hyn në fuqi.", "2025-09-01", "Njoftime",
	); err != nil {
		t.Fatal(err)
	}

	items, err := repo.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d news items, want 2", len(items))
	}
	// newest first
	if items[0].Date != "2025-09-01" {
		t.Errorf("first item date = %q, want 2025-09-01", items[0].Date)
	}
}
