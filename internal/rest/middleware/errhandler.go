package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/propfolio/propfolio/internal/errors"
)

// ErrorHandler renders the last error a handler recorded via c.Error into
// the standard JSON error envelope, with the status derived from the
// error's sentinel mark.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		}
	}
}
