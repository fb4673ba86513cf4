package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/form"
	"github.com/pageza/sofregit/backend/internal/middleware"
	"github.com/pageza/sofregit/backend/internal/service"
	"github.com/pageza/sofregit/backend/internal/types"
)

const profileFormName = "profile"

type ProfileHandler struct {
	profileService service.IProfileService
	forms          *form.Registry[*form.Controller]
	onSignOut      func(clientID string)
	logger         *zap.Logger
}

func NewProfileHandler(profileService service.IProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		forms: form.NewRegistry(func(func()) *form.Controller {
			return form.NewController()
		}, (*form.Controller).Idle, form.DefaultIdleTTL),
		logger: logger.Named("profile_handler"),
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, resolver middleware.SessionResolver) {
	profile := router.Group("/profile")
	{
		profile.GET("", middleware.AuthMiddleware(resolver), h.GetProfile)
		profile.PUT("", middleware.AuthMiddleware(resolver), h.UpdateProfile)
		profile.POST("/logout", h.Logout)
		profile.GET("/events", h.ProfileEvents)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	view, err := h.profileService.View(c.Request.Context(), middleware.SessionFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		h.logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if !bindForm(c, &req, nil) {
		return
	}

	sess := middleware.SessionFromContext(c)
	ctrl := h.forms.Get(form.Key(sess.ClientID, profileFormName))
	state, err := ctrl.Submit(c.Request.Context(), func(ctx context.Context) (string, error) {
		return h.profileService.Update(ctx, sess, req.Name, req.Email)
	})

	switch {
	case err == nil:
		c.JSON(http.StatusOK, types.MessageResponse{Message: state.Message})
	case errors.Is(err, form.ErrSubmissionInProgress):
		submissionInProgress(c)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": state.Message})
	}
}

// Logout signs the client out. A failure is logged and the request still
// succeeds.
func (h *ProfileHandler) Logout(c *gin.Context) {
	clientID := middleware.ClientID(c)
	msg := h.profileService.SignOut(c.Request.Context(), clientID)
	h.forms.Forget(clientID)
	if h.onSignOut != nil {
		h.onSignOut(clientID)
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: msg})
}

// ProfileEvents streams a profile view on every authentication change of the
// client until the request ends.
func (h *ProfileHandler) ProfileEvents(c *gin.Context) {
	send := startStream(c)
	err := h.profileService.Watch(c.Request.Context(), middleware.ClientID(c), func(view service.ProfileView) error {
		return send("profile", view)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Error("profile stream ended", zap.Error(err))
	}
}
