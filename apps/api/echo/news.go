package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/news"
)

type newsApi struct {
	svc      news.Service
	validate *validator.Validate
}

func registerNewsAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *newsApi) {
	rg := g.Group("/" + resNews)
	rg.GET("", api.query)
	rg.POST("", api.create, guard...)

	obj := objectMiddleware(api.svc.GetByID)
	rg.GET("/:id", api.retrieve, obj)
	rg.PUT("/:id", api.update, append(guard, obj)...)
	rg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *newsApi) query(ctx echo.Context) error {
	var filter news.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to news.QueryFilter")
	}

	items, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying news")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *newsApi) create(ctx echo.Context) error {
	var data news.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to news.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	actor, err := contextActor(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.Create(ctx.Request().Context(), actor.ID, data)
	if err != nil {
		return errors.Wrap(err, "creating news article")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *newsApi) retrieve(ctx echo.Context) error {
	obj, err := contextObject[news.News](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *newsApi) update(ctx echo.Context) error {
	obj, err := contextObject[news.News](ctx)
	if err != nil {
		return err
	}

	data := news.NewInput(obj)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to news.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err = api.svc.Update(ctx.Request().Context(), obj, data)
	if err != nil {
		return errors.Wrap(err, "updating news article")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *newsApi) destroy(ctx echo.Context) error {
	obj, err := contextObject[news.News](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), obj.ID); err != nil {
		return errors.Wrap(err, "deleting news article")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
