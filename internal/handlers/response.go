package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/avudaiappan/blog-api/internal/apperror"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler translates domain errors into the API's single wire
// shape {"error": "<message>"}. Repositories and middleware return
// apperror kinds; this is the only place they meet HTTP status codes.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Please try again later!"

	var appErr *apperror.AppError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &appErr):
		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
		}
		message = appErr.Message
		if errors.Is(err, apperror.ErrStore) {
			// Keep the store failure in the server log, never in the body.
			c.Logger().Error(err)
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
		if status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
			// The catch-all contract: an unmatched path and a wrong
			// method on a known path both answer 404.
			status = http.StatusNotFound
			message = "404 Not Found!"
		}
	default:
		c.Logger().Error(err)
	}

	if err := c.JSON(status, echo.Map{"error": message}); err != nil {
		c.Logger().Error(err)
	}
}
