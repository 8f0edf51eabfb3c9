package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/policy"
	"github.com/shkolla/portal/core/school"
	"github.com/shkolla/portal/core/user"
)

type gradeApi struct {
	userSvc    *user.Service
	schoolSvc  *school.Service
	gradingSvc *grading.Service
	validate   *validator.Validate
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := gradeApi{
		userSvc:    deps.UserSvc,
		schoolSvc:  deps.SchoolSvc,
		gradingSvc: deps.GradingSvc,
		validate:   deps.Validate,
	}

	gg := g.Group("/grades", jwt)
	gg.POST("", api.create)
	gg.DELETE("/:id", api.delete)
}

// authorizeManage applies the grade management rule for (subject, student).
// The student's class is resolved server-side; a student without a class
// can never be graded by a professor.
func (api *gradeApi) authorizeManage(ctx echo.Context, actor policy.Actor, subjectID, studentID int) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsProfessor() {
		return errHttpForbidden
	}

	profile, err := api.userSvc.Profile(ctx.Request().Context(), studentID)
	if err != nil {
		if core.IsNotFound(errors.Cause(err)) {
			return errHttpForbidden
		}
		return errors.Wrapf(err, "getting profile %d", studentID)
	}
	if profile.ClassID == nil {
		return errHttpForbidden
	}

	assignments, err := api.schoolSvc.AssignmentsForProfessor(ctx.Request().Context(), actor.UserID)
	if err != nil {
		return errors.Wrapf(err, "querying assignments for professor %d", actor.UserID)
	}
	if !policy.CanManageGrade(actor, subjectID, *profile.ClassID, assignments) {
		return errHttpForbidden
	}
	return nil
}

func (api *gradeApi) create(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}

	var data grading.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if err := api.authorizeManage(ctx, actor, data.SubjectID, data.StudentID); err != nil {
		return err
	}

	if _, err := api.gradingSvc.Create(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"success": true})
}

func (api *gradeApi) delete(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}

	grade, err := api.gradingSvc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		// deleting a missing grade is a no-op
		if core.IsNotFound(errors.Cause(err)) {
			return ctx.JSON(http.StatusOK, echo.Map{"success": true})
		}
		return errors.Wrapf(err, "getting grade %d", id)
	}
	if err := api.authorizeManage(ctx, actor, grade.SubjectID, grade.StudentID); err != nil {
		return err
	}

	if err := api.gradingSvc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrapf(err, "deleting grade %d", id)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}
