package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toyz/syringe/pkg/syringe"
)

// GinInjectorKey is the context key the middleware stores the
// request-scoped injector under.
const GinInjectorKey = "syringe.injector"

// GinMiddleware creates a request-scoped injector for every request and
// stores it in the Gin context.
func GinMiddleware(base *syringe.Injector, opts ...syringe.Option) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := NewScope(base.Lookup())

		info := NewRequestInfo(c.Request.Method, c.Request.URL.Path)
		if err := scope.Registry().RegisterInstance(info); err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}
		if err := scope.Registry().RegisterInstance(c); err != nil {
			c.AbortWithError(http.StatusInternalServerError, err)
			return
		}

		c.Header("X-Request-Id", info.ID)
		c.Set(GinInjectorKey, base.Scoped(scope, opts...))
		c.Next()
	}
}

// GinInjector retrieves the request-scoped injector installed by
// GinMiddleware.
func GinInjector(c *gin.Context) (*syringe.Injector, bool) {
	value, exists := c.Get(GinInjectorKey)
	if !exists {
		return nil, false
	}
	injector, ok := value.(*syringe.Injector)
	return injector, ok
}

// GinHandler builds a Gin handler that instantiates a fresh receiver of
// type T per request through the request-scoped injector.
func GinHandler[T any](handler func(T, *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		injector, ok := GinInjector(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "injector middleware not installed"})
			return
		}

		receiver, err := syringe.New[T](injector)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		handler(receiver, c)
	}
}
