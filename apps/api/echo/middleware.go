package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/contentadmin/core/user"
)

const contextObjectKey = "object"

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

// actorMiddleware loads the token's user & rejects deactivated accounts.
func actorMiddleware(svc user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			if !usr.IsActive() {
				return errAccountDeactivated
			}
			return next(ctx)
		}
	}
}

// permissionMiddleware checks the actor's role against the permission table. Runs after actorMiddleware.
func permissionMiddleware(resource string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			role := requiredRole(resource, ctx.Request().Method)
			if role == "" {
				return next(ctx)
			}
			usr, err := contextActor(ctx)
			if err != nil {
				return err
			}
			if !usr.HasRole(role) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// objectMiddleware loads the document named by the `:id` path param into the context.
func objectMiddleware[T any](get func(ctx context.Context, id string) (T, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			obj, err := get(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				return err
			}
			ctx.Set(contextObjectKey, obj)
			return next(ctx)
		}
	}
}

func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(contextObjectKey).(T)
	if !ok {
		var zero T
		return zero, errors.Wrap(errObjNotFoundInCtx, "retrieving object from context")
	}
	return obj, nil
}

// contextActor returns the user loaded by actorMiddleware.
func contextActor(ctx echo.Context) (user.User, error) {
	usr, ok := ctx.Get(contextUserKey).(user.User)
	if !ok {
		return user.User{}, errUnauthorized
	}
	return usr, nil
}
