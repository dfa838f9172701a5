package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"courtside/internal/pkg/response"
)

// RequestLogger logs every request with structured fields and recovers
// from handler panics, turning them into a 500 response.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				logrus.WithFields(logrus.Fields{
					"method":    c.Request.Method,
					"path":      c.Request.URL.Path,
					"client_ip": c.ClientIP(),
					"panic":     fmt.Sprintf("%v", recovered),
					"stack":     string(debug.Stack()),
				}).Error("panic recovered")

				response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error")
				c.Abort()
				return
			}

			fields := logrus.Fields{
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"status":    c.Writer.Status(),
				"latency":   time.Since(start).String(),
				"client_ip": c.ClientIP(),
			}
			if userID := c.GetInt64("user_id"); userID != 0 {
				fields["user_id"] = userID
			}
			if len(c.Errors) > 0 {
				fields["errors"] = c.Errors.String()
			}

			entry := logrus.WithFields(fields)
			switch {
			case c.Writer.Status() >= http.StatusInternalServerError:
				entry.Error("request")
			case c.Writer.Status() >= http.StatusBadRequest:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
		}()

		c.Next()
	}
}
