package middleware

import (
	"context"

	"offerPilot/business/recommend"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID tags every request with a trace id so service-layer logs can be
// correlated. An inbound X-Request-ID is honored, otherwise one is minted.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(echo.HeaderXRequestID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), recommend.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, traceID)

			return next(c)
		}
	}
}
