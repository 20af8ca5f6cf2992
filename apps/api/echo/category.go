package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/category"
)

type categoryApi struct {
	svc      category.Service
	validate *validator.Validate
}

func registerCategoryAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *categoryApi) {
	cg := g.Group("/" + resCategories)
	cg.GET("", api.query)
	cg.POST("", api.create, guard...)

	obj := objectMiddleware(api.svc.GetByID)
	cg.GET("/:id", api.retrieve, obj)
	cg.PUT("/:id", api.update, append(guard, obj)...)
	cg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *categoryApi) query(ctx echo.Context) error {
	var filter category.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to category.QueryFilter")
	}

	cats, err := api.svc.ListWithHierarchy(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "listing categories")
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *categoryApi) create(ctx echo.Context) error {
	var data category.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to category.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	view, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating category")
	}
	return ctx.JSON(http.StatusCreated, view)
}

func (api *categoryApi) retrieve(ctx echo.Context) error {
	cat, err := contextObject[category.Category](ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.Retrieve(ctx.Request().Context(), cat)
	if err != nil {
		return errors.Wrap(err, "retrieving category")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *categoryApi) update(ctx echo.Context) error {
	cat, err := contextObject[category.Category](ctx)
	if err != nil {
		return err
	}

	data := category.NewInput(cat)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to category.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	view, err := api.svc.Update(ctx.Request().Context(), cat, data)
	if err != nil {
		return errors.Wrap(err, "updating category")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *categoryApi) destroy(ctx echo.Context) error {
	cat, err := contextObject[category.Category](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), cat.ID); err != nil {
		return errors.Wrap(err, "deleting category")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
