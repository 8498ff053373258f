package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records HTTP request metrics.
type RequestObserver interface {
	ObserveRequest(code, method, url string, elapsed time.Duration)
}

// Metrics returns a handler that reports every request to observer.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Path parameters are replaced by their names to keep label cardinality low.
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		observer.ObserveRequest(strconv.Itoa(c.Writer.Status()), c.Request.Method, url, time.Since(start))
	}
}
