package middleware

import (
	"net/http"

	"offerPilot/pkg/logger"

	jsonres "offerPilot/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo fallback for errors that escape the handlers.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}
