package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/cms"
)

type cmsApi struct {
	svc      cms.Service
	validate *validator.Validate
}

func registerCMSAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *cmsApi) {
	pg := g.Group("/" + resCMS)
	pg.GET("", api.query)
	pg.POST("", api.create, guard...)

	// pages are addressable by ID or slug
	obj := objectMiddleware(api.svc.GetByIDOrSlug)
	pg.GET("/:id", api.retrieve, obj)
	pg.PUT("/:id", api.update, append(guard, obj)...)
	pg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *cmsApi) query(ctx echo.Context) error {
	pages, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying pages")
	}
	return ctx.JSON(http.StatusOK, pages)
}

func (api *cmsApi) create(ctx echo.Context) error {
	var data cms.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to cms.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	page, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating page")
	}
	return ctx.JSON(http.StatusCreated, page)
}

func (api *cmsApi) retrieve(ctx echo.Context) error {
	page, err := contextObject[cms.Page](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *cmsApi) update(ctx echo.Context) error {
	page, err := contextObject[cms.Page](ctx)
	if err != nil {
		return err
	}

	data := cms.NewInput(page)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to cms.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	page, err = api.svc.Update(ctx.Request().Context(), page, data)
	if err != nil {
		return errors.Wrap(err, "updating page")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *cmsApi) destroy(ctx echo.Context) error {
	page, err := contextObject[cms.Page](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), page.ID); err != nil {
		return errors.Wrap(err, "deleting page")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
