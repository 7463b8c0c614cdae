package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Counter reports how many entries a store holds
type Counter interface {
	Count() int
}

// SetupMainHandlers registers the main application endpoints.
// Health reports the number of open sessions per store.
func SetupMainHandlers(router *gin.RouterGroup, info map[string]string, sessions map[string]Counter) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	})

	router.GET("/health", func(c *gin.Context) {
		counts := make(map[string]int, len(sessions))
		for name, store := range sessions {
			counts[name] = store.Count()
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": counts,
		})
	})
}
