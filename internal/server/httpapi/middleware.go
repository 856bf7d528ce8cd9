package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
)

const (
	userContextKey  = "user"
	requestIDHeader = "X-Request-Id"
)

// requestLogger tags every request with an id and logs it on completion.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Response().Header().Set(requestIDHeader, requestID)

		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.logger.Info(c.Request().Context(), "request",
			"request_id", requestID,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
		)
		return err
	}
}

// authenticate resolves the session token into a user and stores it in the
// request context. The token is read from the configured header, falling
// back to the "token" query parameter.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(s.tokenHeader)
		if token == "" {
			token = c.QueryParam(common.TokenQueryParamName)
		}

		user, err := s.users.Authenticate(c.Request().Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrMissingToken):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is missing"})
			case errors.Is(err, common.ErrTokenExpired):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Expired token"})
			case errors.Is(err, common.ErrInvalidToken):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
			default:
				s.logger.Error(c.Request().Context(), err.Error())
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// currentUser returns the user resolved by the authenticate middleware.
func currentUser(c echo.Context) *models.User {
	return c.Get(userContextKey).(*models.User)
}
