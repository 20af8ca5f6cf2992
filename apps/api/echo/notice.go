package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/notice"
)

type noticeApi struct {
	svc      notice.Service
	validate *validator.Validate
}

func registerNoticeAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *noticeApi) {
	rg := g.Group("/" + resNotices)
	rg.GET("", api.query)
	rg.POST("", api.create, guard...)

	obj := objectMiddleware(api.svc.GetByID)
	rg.GET("/:id", api.retrieve, obj)
	rg.PUT("/:id", api.update, append(guard, obj)...)
	rg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *noticeApi) query(ctx echo.Context) error {
	var filter notice.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to notice.QueryFilter")
	}

	items, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *noticeApi) create(ctx echo.Context) error {
	var data notice.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to notice.Input")
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
		return errors.Wrap(err, "creating notice")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

// retrieve counts a view of the notice.
func (api *noticeApi) retrieve(ctx echo.Context) error {
	obj, err := contextObject[notice.Notice](ctx)
	if err != nil {
		return err
	}

	obj, err = api.svc.View(ctx.Request().Context(), obj)
	if err != nil {
		return errors.Wrap(err, "viewing notice")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *noticeApi) update(ctx echo.Context) error {
	obj, err := contextObject[notice.Notice](ctx)
	if err != nil {
		return err
	}

	data := notice.NewInput(obj)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to notice.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err = api.svc.Update(ctx.Request().Context(), obj, data)
	if err != nil {
		return errors.Wrap(err, "updating notice")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *noticeApi) destroy(ctx echo.Context) error {
	obj, err := contextObject[notice.Notice](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), obj.ID); err != nil {
		return errors.Wrap(err, "deleting notice")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
