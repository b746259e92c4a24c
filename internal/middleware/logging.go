package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes one key=value line per request. Handler errors are rendered
// through echo first so the logged status is the one the client saw.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			userID := UserIDFromContext(c)
			if userID == "" {
				userID = "-"
			}
			log.Printf("request_id=%s method=%s path=%s status=%d bytes=%d user_id=%s latency=%s",
				RequestIDFromContext(c), req.Method, req.URL.Path, c.Response().Status, c.Response().Size, userID, time.Since(start))

			return err
		}
	}
}
