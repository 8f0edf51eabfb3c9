package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/school"
	"github.com/shkolla/portal/core/user"
)

type adminApi struct {
	userSvc   *user.Service
	schoolSvc *school.Service
	validate  *validator.Validate
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := adminApi{
		userSvc:   deps.UserSvc,
		schoolSvc: deps.SchoolSvc,
		validate:  deps.Validate,
	}

	ag := g.Group("/admin", jwt, adminMiddleware)
	ag.GET("/users", api.listUsers)
	ag.POST("/users", api.createUser)
	ag.DELETE("/users/:id", api.deleteUser)
	ag.GET("/classes", api.listClasses)
	ag.POST("/classes", api.createClass)
	ag.GET("/students-detailed", api.studentsDetailed)
}

func (api *adminApi) listUsers(ctx echo.Context) error {
	users, err := api.userSvc.QueryAllWithClass(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *adminApi) createUser(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.userSvc); err != nil {
		return err
	}

	usr, err := api.userSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *adminApi) deleteUser(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.userSvc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrapf(err, "deleting user %d", id)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

func (api *adminApi) listClasses(ctx echo.Context) error {
	classes, err := api.schoolSvc.ClassesWithStudentCount(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *adminApi) createClass(ctx echo.Context) error {
	var data school.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	class, err := api.schoolSvc.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, class)
}

func (api *adminApi) studentsDetailed(ctx echo.Context) error {
	students, err := api.userSvc.StudentsDetailed(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying detailed students")
	}
	return ctx.JSON(http.StatusOK, students)
}
