package adapters

import (
	"github.com/gofiber/fiber/v2"

	"github.com/toyz/syringe/pkg/syringe"
)

// FiberInjectorKey is the locals key the middleware stores the
// request-scoped injector under.
const FiberInjectorKey = "syringe.injector"

// FiberMiddleware creates a request-scoped injector for every request
// and stores it in the Fiber locals.
func FiberMiddleware(base *syringe.Injector, opts ...syringe.Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := NewScope(base.Lookup())

		info := NewRequestInfo(c.Method(), c.Path())
		if err := scope.Registry().RegisterInstance(info); err != nil {
			return err
		}
		if err := scope.Registry().RegisterInstance(c); err != nil {
			return err
		}

		c.Set(fiber.HeaderXRequestID, info.ID)
		c.Locals(FiberInjectorKey, base.Scoped(scope, opts...))
		return c.Next()
	}
}

// FiberInjector retrieves the request-scoped injector installed by
// FiberMiddleware.
func FiberInjector(c *fiber.Ctx) (*syringe.Injector, bool) {
	injector, ok := c.Locals(FiberInjectorKey).(*syringe.Injector)
	return injector, ok
}

// FiberHandler builds a Fiber handler that instantiates a fresh
// receiver of type T per request through the request-scoped injector.
func FiberHandler[T any](handler func(T, *fiber.Ctx) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		injector, ok := FiberInjector(c)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "injector middleware not installed")
		}

		receiver, err := syringe.New[T](injector)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return handler(receiver, c)
	}
}
