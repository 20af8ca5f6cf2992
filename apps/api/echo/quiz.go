package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/quiz"
)

type quizApi struct {
	svc      quiz.Service
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *quizApi) {
	rg := g.Group("/" + resQuizzes)
	rg.GET("", api.query)
	rg.POST("", api.create, guard...)

	obj := objectMiddleware(api.svc.GetByID)
	rg.GET("/:id", api.retrieve, obj)
	rg.PUT("/:id", api.update, append(guard, obj)...)
	rg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *quizApi) query(ctx echo.Context) error {
	var filter quiz.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to quiz.QueryFilter")
	}

	items, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to quiz.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	obj, err := contextObject[quiz.Quiz](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *quizApi) update(ctx echo.Context) error {
	obj, err := contextObject[quiz.Quiz](ctx)
	if err != nil {
		return err
	}

	data := quiz.NewInput(obj)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to quiz.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err = api.svc.Update(ctx.Request().Context(), obj, data)
	if err != nil {
		return errors.Wrap(err, "updating quiz")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *quizApi) destroy(ctx echo.Context) error {
	obj, err := contextObject[quiz.Quiz](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), obj.ID); err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
