package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/form"
	"github.com/pageza/sofregit/backend/internal/middleware"
	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/service"
	"github.com/pageza/sofregit/backend/internal/types"
)

const (
	loginOverlay    = "login"
	registerOverlay = "register"
)

// AuthHandler serves the login and registration overlays, sign-out, the
// session state and the navigation bar.
type AuthHandler struct {
	authService service.IAuthService
	overlays    *form.Registry[*form.Overlay]
	onSignOut   func(clientID string)
	logger      *zap.Logger
}

func NewAuthHandler(authService service.IAuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		overlays: form.NewRegistry(func(release func()) *form.Overlay {
			return form.NewOverlay(release)
		}, (*form.Overlay).Idle, form.DefaultIdleTTL),
		logger: logger.Named("auth_handler"),
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	session := middleware.OptionalSession(h.authService)

	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/overlays/:name", h.GetOverlay)
	}
	router.GET("/session", session, h.GetSession)
	router.GET("/session/events", h.SessionEvents)
	router.GET("/nav", session, h.GetNav)
}

func (h *AuthHandler) authResponse(c *gin.Context, status int, token string, user *model.User) {
	c.JSON(status, types.AuthResponse{Token: token, State: model.StateFor(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindForm(c, &req, nil) {
		return
	}

	clientID := middleware.ClientID(c)
	overlay := h.overlays.Get(form.Key(clientID, loginOverlay))

	var (
		token string
		user  *model.User
	)
	err := overlay.Submit(c.Request.Context(), func(ctx context.Context) error {
		var err error
		token, user, err = h.authService.SignIn(ctx, clientID, req.Email, req.Password)
		return err
	}, func(error) string {
		return service.InvalidCredentialsMessage
	})

	switch {
	case err == nil:
		h.authResponse(c, http.StatusOK, token, user)
	case errors.Is(err, form.ErrSubmissionInProgress), errors.Is(err, form.ErrOverlayClosed):
		submissionInProgress(c)
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.InvalidCredentialsMessage})
	default:
		h.logger.Error("sign in failed", zap.String("client_id", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.InvalidCredentialsMessage})
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindForm(c, &req, nil) {
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.PasswordMismatchMessage})
		return
	}

	clientID := middleware.ClientID(c)
	overlay := h.overlays.Get(form.Key(clientID, registerOverlay))

	var (
		token string
		user  *model.User
	)
	err := overlay.Submit(c.Request.Context(), func(ctx context.Context) error {
		var err error
		token, user, err = h.authService.Register(ctx, clientID, service.RegisterInput{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		return err
	}, func(error) string {
		return service.RegistrationFailedMessage
	})

	switch {
	case err == nil:
		h.authResponse(c, http.StatusCreated, token, user)
	case errors.Is(err, form.ErrSubmissionInProgress), errors.Is(err, form.ErrOverlayClosed):
		submissionInProgress(c)
	case errors.Is(err, service.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.PasswordMismatchMessage})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": service.RegistrationFailedMessage})
	default:
		h.logger.Error("registration failed", zap.String("client_id", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.RegistrationFailedMessage})
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	clientID := middleware.ClientID(c)
	if err := h.authService.SignOut(c.Request.Context(), clientID); err != nil {
		h.logger.Error("sign out failed", zap.String("client_id", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
		return
	}
	h.releaseForms(clientID)
	c.JSON(http.StatusOK, types.MessageResponse{Message: service.SignedOutMessage})
}

func (h *AuthHandler) releaseForms(clientID string) {
	h.overlays.Forget(clientID)
	if h.onSignOut != nil {
		h.onSignOut(clientID)
	}
}

// GetOverlay reports the phase and message of an overlay. An overlay that
// closed, or was never opened, reads as idle.
func (h *AuthHandler) GetOverlay(c *gin.Context) {
	name := c.Param("name")
	if name != loginOverlay && name != registerOverlay {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown overlay"})
		return
	}
	phase, message := form.PhaseIdle, ""
	if overlay, ok := h.overlays.Peek(form.Key(middleware.ClientID(c), name)); ok {
		phase, message = overlay.Phase(), overlay.Message()
	}
	c.JSON(http.StatusOK, gin.H{"phase": phase, "message": message})
}

func (h *AuthHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, model.StateFor(middleware.SessionFromContext(c).User))
}

func (h *AuthHandler) GetNav(c *gin.Context) {
	state := model.StateFor(middleware.SessionFromContext(c).User)
	c.JSON(http.StatusOK, service.BuildNav(state, c.DefaultQuery("path", "/")))
}

// SessionEvents streams the authentication state of the client, starting
// with the current one.
func (h *AuthHandler) SessionEvents(c *gin.Context) {
	ctx := c.Request.Context()
	states, unsubscribe, err := h.authService.Watch(ctx, middleware.ClientID(c))
	if err != nil {
		h.logger.Error("failed to watch session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to watch session"})
		return
	}
	defer unsubscribe()

	send := startStream(c)
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			if err := send("auth", state); err != nil {
				return
			}
		}
	}
}
