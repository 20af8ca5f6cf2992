package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/mcq"
)

type mcqApi struct {
	svc      mcq.Service
	validate *validator.Validate
}

func registerMCQAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *mcqApi) {
	rg := g.Group("/" + resMCQs)
	rg.GET("", api.query)
	rg.POST("", api.create, guard...)

	obj := objectMiddleware(api.svc.GetByID)
	rg.GET("/:id", api.retrieve, obj)
	rg.PUT("/:id", api.update, append(guard, obj)...)
	rg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *mcqApi) query(ctx echo.Context) error {
	var filter mcq.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to mcq.QueryFilter")
	}

	items, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying MCQs")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *mcqApi) create(ctx echo.Context) error {
	var data mcq.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to mcq.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating MCQ")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *mcqApi) retrieve(ctx echo.Context) error {
	obj, err := contextObject[mcq.MCQ](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *mcqApi) update(ctx echo.Context) error {
	obj, err := contextObject[mcq.MCQ](ctx)
	if err != nil {
		return err
	}

	data := mcq.NewInput(obj)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to mcq.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err = api.svc.Update(ctx.Request().Context(), obj, data)
	if err != nil {
		return errors.Wrap(err, "updating MCQ")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *mcqApi) destroy(ctx echo.Context) error {
	obj, err := contextObject[mcq.MCQ](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), obj.ID); err != nil {
		return errors.Wrap(err, "deleting MCQ")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
