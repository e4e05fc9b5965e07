// Package handler serves the mock session. Any well-formed email signs in; no
// credentials are checked.
package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=auth.go -destination=mocks_test.go -package=handler

import (
	"context"
	"errors"
	"net/http"

	"blastsms/internal/apierrors"
	"blastsms/internal/appstate"
	"blastsms/internal/observability"

	"github.com/gin-gonic/gin"
)

type SessionStore interface {
	Session() appstate.Session
	Login(ctx context.Context, email string) (appstate.User, error)
	Logout(ctx context.Context) error
}

type Handler struct {
	sessions SessionStore
	logger   *observability.Logger
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func New(sessions SessionStore, logger *observability.Logger) Handler {
	return Handler{sessions: sessions, logger: logger}
}

// HandleSession reports hydration and sign-in state. Clients must not branch
// on isAuthenticated until hydrated is true.
func (h *Handler) HandleSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.Session())
}

func (h *Handler) HandleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	user, err := h.sessions.Login(ctx, req.Email)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.logger.Info(observability.WithFields(ctx, observability.Field{Key: "user", Value: user.Email}), "user signed in")
	c.JSON(http.StatusOK, h.sessions.Session())
}

func (h *Handler) HandleLogout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessions.Session())
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appstate.ErrInvalidEmail):
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "A valid email is required")
	case errors.Is(err, appstate.ErrNotHydrated):
		apierrors.ServiceUnavailable(c, apierrors.CodeServiceUnavailable, "State is still loading", err)
	default:
		apierrors.InternalError(c, err)
	}
}
