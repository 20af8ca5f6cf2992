package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/course"
)

type courseApi struct {
	svc      course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *courseApi) {
	rg := g.Group("/" + resCourses)
	rg.GET("", api.query)
	rg.POST("", api.create, guard...)

	obj := objectMiddleware(api.svc.GetByID)
	rg.GET("/:id", api.retrieve, obj)
	rg.PUT("/:id", api.update, append(guard, obj)...)
	rg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *courseApi) query(ctx echo.Context) error {
	var filter course.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to course.QueryFilter")
	}

	items, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to course.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	obj, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *courseApi) update(ctx echo.Context) error {
	obj, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}

	data := course.NewInput(obj)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to course.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err = api.svc.Update(ctx.Request().Context(), obj, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	obj, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), obj.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
