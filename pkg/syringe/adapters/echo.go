package adapters

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/syringe/pkg/syringe"
)

// EchoInjectorKey is the context key the middleware stores the
// request-scoped injector under.
const EchoInjectorKey = "syringe.injector"

// EchoMiddleware creates a request-scoped injector for every request
// and stores it in the Echo context. The scope carries the RequestInfo
// and the echo.Context itself, so constructors can bind either.
func EchoMiddleware(base *syringe.Injector, opts ...syringe.Option) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope := NewScope(base.Lookup())

			info := NewRequestInfo(c.Request().Method, c.Request().URL.Path)
			if err := scope.Registry().RegisterInstance(info); err != nil {
				return err
			}
			if err := syringe.RegisterAs[echo.Context](scope.Registry(), c); err != nil {
				return err
			}

			c.Response().Header().Set(echo.HeaderXRequestID, info.ID)
			c.Set(EchoInjectorKey, base.Scoped(scope, opts...))
			return next(c)
		}
	}
}

// EchoInjector retrieves the request-scoped injector installed by
// EchoMiddleware.
func EchoInjector(c echo.Context) (*syringe.Injector, bool) {
	injector, ok := c.Get(EchoInjectorKey).(*syringe.Injector)
	return injector, ok
}

// EchoHandler builds an Echo handler that instantiates a fresh receiver
// of type T per request through the request-scoped injector.
func EchoHandler[T any](handler func(T, echo.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		injector, ok := EchoInjector(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "injector middleware not installed")
		}

		receiver, err := syringe.New[T](injector)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return handler(receiver, c)
	}
}
