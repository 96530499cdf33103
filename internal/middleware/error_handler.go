package middleware

import (
	"net/http"

	"rajwen/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler turns uncaught errors into the {"message": ...} body every
// other error path already uses.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code == http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
	}

	if jsonErr := c.JSON(code, echo.Map{"message": message}); jsonErr != nil {
		logger.Error("Failed to write error response", jsonErr)
	}
}
