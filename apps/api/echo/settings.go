package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/settings"
)

type settingsApi struct {
	svc      settings.Service
	validate *validator.Validate
}

// registerSettingsAPI wires the singleton: no detail reads & no DELETE.
// PUT accepts an (ignored) id for clients that address the settings document directly.
func registerSettingsAPI(g *echo.Group, guard []echo.MiddlewareFunc, api *settingsApi) {
	sg := g.Group("/" + resSettings)
	sg.GET("", api.retrieve)
	sg.POST("", api.create, guard...)
	sg.PUT("", api.upsert, guard...)
	sg.PUT("/:id", api.upsert, guard...)
}

func (api *settingsApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting site settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) create(ctx echo.Context) error {
	var data settings.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to settings.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating site settings")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *settingsApi) upsert(ctx echo.Context) error {
	var data settings.Input
	switch cur, err := api.svc.Get(ctx.Request().Context()); {
	case err == nil:
		data = settings.NewInput(cur)
	case !core.IsNotFound(err):
		return errors.Wrap(err, "getting site settings")
	}

	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to settings.Input")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Upsert(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving site settings")
	}
	return ctx.JSON(http.StatusOK, s)
}
