package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/model"
)

// ProfileView is what the profile page shows.
type ProfileView struct {
	SignedIn bool           `json:"signed_in"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Recipes  []model.Recipe `json:"recipes"`
}

type ProfileService struct {
	auth    IAuthService
	recipes IRecipeService
	logger  *zap.Logger
}

func NewProfileService(auth IAuthService, recipes IRecipeService, logger *zap.Logger) *ProfileService {
	return &ProfileService{auth: auth, recipes: recipes, logger: logger.Named("profile")}
}

// View returns the profile of the signed-in session user.
func (s *ProfileService) View(ctx context.Context, sess *model.Session) (*ProfileView, error) {
	if !sess.SignedIn() {
		return nil, ErrNotAuthenticated
	}
	recipes, err := s.recipes.ListByOwner(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}
	return &ProfileView{
		SignedIn: true,
		Name:     sess.User.DisplayName,
		Email:    sess.User.Email,
		Recipes:  recipes,
	}, nil
}

// Watch emits a profile view for every authentication state of clientID
// until ctx is done or emit fails. Signing out marks the view signed out
// but keeps the last name, email and recipes.
func (s *ProfileService) Watch(ctx context.Context, clientID string, emit func(ProfileView) error) error {
	states, unsubscribe, err := s.auth.Watch(ctx, clientID)
	if err != nil {
		return err
	}
	defer unsubscribe()

	view := ProfileView{Recipes: []model.Recipe{}}
	for {
		select {
		case <-ctx.Done():
			return nil
		case state, ok := <-states:
			if !ok {
				return nil
			}
			if state.SignedIn && state.User != nil {
				view.SignedIn = true
				view.Name = state.User.DisplayName
				view.Email = state.User.Email
				recipes, err := s.recipes.ListByOwner(ctx, state.User.ID.String())
				if err != nil {
					s.logger.Error("failed to load profile recipes", zap.String("client_id", clientID), zap.Error(err))
					recipes = []model.Recipe{}
				}
				view.Recipes = recipes
			} else {
				view.SignedIn = false
			}
			if err := emit(view); err != nil {
				return err
			}
		}
	}
}

// Update sets the display name and then, only when it changed, the email.
// A failing step is reported as a message; earlier steps stay applied.
func (s *ProfileService) Update(ctx context.Context, sess *model.Session, name, email string) (string, error) {
	if !sess.SignedIn() {
		return ProfileFailedMessage + ErrNotAuthenticated.Error(), ErrNotAuthenticated
	}

	if err := s.auth.UpdateDisplayName(ctx, sess, name); err != nil {
		s.logger.Error("failed to update display name", zap.String("user_id", sess.UserID()), zap.Error(err))
		return ProfileFailedMessage + publicReason(err), err
	}

	if normalizeEmail(email) != sess.User.Email {
		if err := s.auth.UpdateEmail(ctx, sess, email); err != nil {
			s.logger.Error("failed to update email", zap.String("user_id", sess.UserID()), zap.Error(err))
			return ProfileFailedMessage + publicReason(err), err
		}
	}
	return ProfileUpdatedMessage, nil
}

// SignOut ends the client session. Failures are only logged.
func (s *ProfileService) SignOut(ctx context.Context, clientID string) string {
	if err := s.auth.SignOut(ctx, clientID); err != nil {
		s.logger.Error("failed to sign out", zap.String("client_id", clientID), zap.Error(err))
		return ""
	}
	return SignedOutMessage
}

// publicReason keeps storage errors out of user-facing messages.
func publicReason(err error) string {
	for _, known := range []error{ErrEmailTaken, ErrNotAuthenticated} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "please try again"
}
