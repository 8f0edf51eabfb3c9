package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/policy"
	"github.com/shkolla/portal/core/school"
)

type schoolApi struct {
	svc *school.Service
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := schoolApi{svc: deps.SchoolSvc}

	g.GET("/staff", api.staff) // public directory
	g.GET("/subjects", api.subjects, jwt)
	g.GET("/professor/:id/assignments", api.assignments, jwt)
	g.GET("/class/:classId/students", api.roster, jwt)
}

func (api *schoolApi) subjects(ctx echo.Context) error {
	subjects, err := api.svc.Subjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *schoolApi) staff(ctx echo.Context) error {
	staff, err := api.svc.StaffDirectory(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying staff directory")
	}
	return ctx.JSON(http.StatusOK, staff)
}

func (api *schoolApi) assignments(ctx echo.Context) error {
	professorID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	if !policy.CanReadAssignments(actor, professorID) {
		return errHttpForbidden
	}

	assignments, err := api.svc.AssignmentsForProfessor(ctx.Request().Context(), professorID)
	if err != nil {
		return errors.Wrapf(err, "querying assignments for professor %d", professorID)
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *schoolApi) roster(ctx echo.Context) error {
	classID, err := intParam(ctx, "classId")
	if err != nil {
		return err
	}
	subjectID, err := intQueryParam(ctx, "subjectId")
	if err != nil {
		return err
	}
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}

	// professors are checked against their own assignment set
	var assignments []school.Assignment
	if actor.IsProfessor() {
		assignments, err = api.svc.AssignmentsForProfessor(ctx.Request().Context(), actor.UserID)
		if err != nil {
			return errors.Wrapf(err, "querying assignments for professor %d", actor.UserID)
		}
	}
	if !policy.CanViewRoster(actor, classID, assignments) {
		return errHttpForbidden
	}

	students, err := api.svc.Roster(ctx.Request().Context(), classID, subjectID)
	if err != nil {
		return errors.Wrapf(err, "querying roster for class %d", classID)
	}
	return ctx.JSON(http.StatusOK, students)
}
