package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/organize-activities-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics returns middleware that records request metrics labelled by route
// template, so that organization ids do not inflate label cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
