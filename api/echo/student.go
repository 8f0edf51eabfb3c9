package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/attendance"
	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/policy"
	"github.com/shkolla/portal/core/user"
)

type studentApi struct {
	userSvc       *user.Service
	gradingSvc    *grading.Service
	attendanceSvc *attendance.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{
		userSvc:       deps.UserSvc,
		gradingSvc:    deps.GradingSvc,
		attendanceSvc: deps.AttendanceSvc,
	}

	sg := g.Group("/student", jwt)
	sg.GET("/:id/profile", api.profile)
	sg.GET("/:id/grades", api.grades)
	sg.GET("/:id/attendance", api.attendance)
	sg.GET("/:id/report", api.report)
}

// authorize resolves the actor and applies the student read rule.
func (api *studentApi) authorize(ctx echo.Context) (int, error) {
	studentID, err := intParam(ctx, "id")
	if err != nil {
		return 0, err
	}
	actor, err := getContextActor(ctx)
	if err != nil {
		return 0, err
	}
	if !policy.CanReadStudent(actor, studentID) {
		return 0, errHttpForbidden
	}
	return studentID, nil
}

func (api *studentApi) profile(ctx echo.Context) error {
	studentID, err := api.authorize(ctx)
	if err != nil {
		return err
	}
	profile, err := api.userSvc.Profile(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrapf(err, "getting profile %d", studentID)
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *studentApi) grades(ctx echo.Context) error {
	studentID, err := api.authorize(ctx)
	if err != nil {
		return err
	}
	grades, err := api.gradingSvc.ForStudent(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrapf(err, "querying grades for student %d", studentID)
	}
	return ctx.JSON(http.StatusOK, grades)
}

type attendanceResponse struct {
	Records []attendance.Attendance `json:"records"`
	Summary attendance.Summary      `json:"summary"`
}

func (api *studentApi) attendance(ctx echo.Context) error {
	studentID, err := api.authorize(ctx)
	if err != nil {
		return err
	}
	records, err := api.attendanceSvc.ForStudent(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrapf(err, "querying attendance for student %d", studentID)
	}
	return ctx.JSON(http.StatusOK, attendanceResponse{
		Records: records,
		Summary: attendance.Summarize(records),
	})
}

func (api *studentApi) report(ctx echo.Context) error {
	studentID, err := api.authorize(ctx)
	if err != nil {
		return err
	}
	report, err := api.gradingSvc.Report(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrapf(err, "building report for student %d", studentID)
	}
	return ctx.JSON(http.StatusOK, report)
}
