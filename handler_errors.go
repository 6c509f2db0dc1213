package logdash

import (
	"context"
	"net/http"

	"github.com/blutspende/logdash/middleware"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// abortWithError maps dashboard errors to client errors. param names the offending request
// parameter for validation failures.
func abortWithError(c *gin.Context, err error, param string) {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrUnknownLevel), errors.Is(err, ErrUnknownTopic),
		errors.Is(err, ErrUnknownDimension), errors.Is(err, ErrUnknownNavigation):
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidOrMissingRequestParameter.WithParam(param))
	case errors.As(err, &validationErr):
		clientErr := middleware.ErrInvalidMetadata
		clientErr.Message = validationErr.Error()
		c.AbortWithStatusJSON(http.StatusBadRequest, clientErr)
	case errors.Is(err, ErrPageOutOfRange):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, middleware.ErrPageOutOfRange)
	case errors.Is(err, ErrNavigationDisabled):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, middleware.ErrNavigationDisabled)
	case errors.Is(err, ErrNoDraftOpen):
		c.AbortWithStatusJSON(http.StatusConflict, middleware.ErrNoDraftOpen)
	case errors.Is(err, ErrSubmissionInProgress):
		c.AbortWithStatusJSON(http.StatusConflict, middleware.ErrSubmissionInProgress)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("Dashboard did not apply the request")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, middleware.ErrDashboardUnavailable)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unexpected dashboard error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, middleware.ClientError{
			MessageKey: "internalServerError",
			Message:    err.Error(),
		})
	}
}
