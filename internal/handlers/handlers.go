package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moneymaze/moneymaze/internal/apperr"
	"github.com/moneymaze/moneymaze/internal/logging"
	"github.com/moneymaze/moneymaze/internal/mykafka"
)

// fail converts an error into the client-facing {success,message} shape.
// Anything that is not an apperr becomes a generic 500 so database errors
// never leak their text to the browser.
func fail(c echo.Context, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return c.JSON(ae.Status(), echo.Map{"success": false, "message": ae.Message})
	}

	logging.FromContext(c.Request().Context()).Error("request failed", "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
}

// publish fires an activity event, logging instead of failing the request.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event publish failed", "topic", topic, "error", err)
	}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
