package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/tagpoll/tagpoll/internal/store"
)

// Database opens a connection scope for the request. The connection is
// only dialed when a handler first needs it and is closed once the handler
// chain returns.
func Database(lc *store.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := store.WithRequestConnection(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		defer lc.CloseForRequest(ctx)

		c.Next()
	}
}
