package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/bucketlist/internal/common"
)

const basicAuthChallenge = `Basic Realm="Login required"`

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	id, err := s.users.Register(c.Request().Context(),
		req.FirstName, req.LastName, req.UserName, req.Email, req.Password)
	if err != nil {
		var conflict *common.ConflictError
		if errors.As(err, &conflict) {
			return c.JSON(http.StatusConflict, echo.Map{"message": conflict.Field})
		}
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	s.logger.Info(c.Request().Context(), "Registered", "username", req.UserName)
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (s *Server) login(c echo.Context) error {
	identifier, password, ok := c.Request().BasicAuth()
	if !ok || identifier == "" || password == "" {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicAuthChallenge)
		return c.String(http.StatusUnauthorized, "Could not verify")
	}

	token, err := s.users.Login(c.Request().Context(), identifier, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicAuthChallenge)
			return c.String(http.StatusUnauthorized, "Invalid login credentials")
		}
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (s *Server) logout(c echo.Context) error {
	if err := s.users.Logout(c.Request().Context(), currentUser(c)); err != nil {
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{})
}

func (s *Server) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	if req.OldPassword == "" {
		return c.JSON(http.StatusBadRequest,
			echo.Map{"message": "You must provide old password", "missing": "old_password"})
	}
	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest,
			echo.Map{"message": "You must provide new password", "missing": "new_password"})
	}

	err := s.users.ResetPassword(c.Request().Context(), currentUser(c), req.OldPassword, req.NewPassword)
	if err != nil {
		// historical contract: a rejected old password is reported with a
		// 200, not a 4xx
		if errors.Is(err, common.ErrWrongOldPassword) {
			return c.JSON(http.StatusOK, echo.Map{"message": "Invalid old password"})
		}
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{})
}
