package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/question"
)

type questionApi struct {
	svc      question.Service
	validate *validator.Validate
}

func registerQuestionAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *questionApi) {
	rg := g.Group("/" + resQuestions)
	rg.GET("", api.query)
	rg.POST("", api.create, guard...)

	obj := objectMiddleware(api.svc.GetByID)
	rg.GET("/:id", api.retrieve, obj)
	rg.PUT("/:id", api.update, append(guard, obj)...)
	rg.DELETE("/:id", api.destroy, append(guard, obj)...)
}

func (api *questionApi) query(ctx echo.Context) error {
	var filter question.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to question.QueryFilter")
	}

	items, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *questionApi) create(ctx echo.Context) error {
	var data question.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to question.Input")
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
		return errors.Wrap(err, "creating question")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *questionApi) retrieve(ctx echo.Context) error {
	obj, err := contextObject[question.Question](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *questionApi) update(ctx echo.Context) error {
	obj, err := contextObject[question.Question](ctx)
	if err != nil {
		return err
	}

	data := question.NewInput(obj)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to question.Input")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err = api.svc.Update(ctx.Request().Context(), obj, data)
	if err != nil {
		return errors.Wrap(err, "updating question")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *questionApi) destroy(ctx echo.Context) error {
	obj, err := contextObject[question.Question](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), obj.ID); err != nil {
		return errors.Wrap(err, "deleting question")
	}
	return ctx.JSON(http.StatusOK, deleted)
}
