package school

import "context"

type (
	Repository interface {
		CreateClass(ctx context.Context, nc NewClass) (Class, error)
		QueryClassesWithStudentCount(ctx context.Context) ([]ClassWithCount, error)
		QuerySubjects(ctx context.Context) ([]Subject, error)
		QueryAssignmentsForProfessor(ctx context.Context, professorID int) ([]Assignment, error)
		QueryStudentsInClass(ctx context.Context, classID int) ([]ClassStudent, error)
		// QueryStudentsInClassWithGrades attaches each student's grades
		// filtered to the given subject only.
		QueryStudentsInClassWithGrades(ctx context.Context, classID, subjectID int) ([]ClassStudent, error)
		QueryStaffDirectory(ctx context.Context) ([]StaffMember, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateClass(ctx context.Context, nc NewClass) (Class, error) {
	return svc.repo.CreateClass(ctx, nc)
}

func (svc *Service) ClassesWithStudentCount(ctx context.Context) ([]ClassWithCount, error) {
	return svc.repo.QueryClassesWithStudentCount(ctx)
}

func (svc *Service) Subjects(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}

func (svc *Service) AssignmentsForProfessor(ctx context.Context, professorID int) ([]Assignment, error) {
	return svc.repo.QueryAssignmentsForProfessor(ctx, professorID)
}

// Roster returns the students of a class. When subjectID is non-nil, each
// entry carries the student's grades for that subject only.
func (svc *Service) Roster(ctx context.Context, classID int, subjectID *int) ([]ClassStudent, error) {
	if subjectID != nil {
		return svc.repo.QueryStudentsInClassWithGrades(ctx, classID, *subjectID)
	}
	return svc.repo.QueryStudentsInClass(ctx, classID)
}

func (svc *Service) StaffDirectory(ctx context.Context) ([]StaffMember, error) {
	return svc.repo.QueryStaffDirectory(ctx)
}
