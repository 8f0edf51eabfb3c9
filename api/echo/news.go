package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shkolla/portal/core/news"
)

type newsApi struct {
	svc *news.Service
}

func registerNewsAPI(g *echo.Group, deps ServerDeps) {
	api := newsApi{svc: deps.NewsSvc}
	g.GET("/news", api.list)
}

func (api *newsApi) list(ctx echo.Context) error {
	items, err := api.svc.All(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying news")
	}
	return ctx.JSON(http.StatusOK, items)
}
