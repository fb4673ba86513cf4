package service

import (
	"errors"

	"github.com/pageza/sofregit/backend/internal/form"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("user not authenticated")
	ErrEmailTaken         = errors.New("email already in use")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidRecipe      = errors.New("invalid recipe")

	ErrSubmissionInProgress = form.ErrSubmissionInProgress
)

// User-facing messages.
const (
	InvalidCredentialsMessage = "Invalid credentials. Please try again."
	PasswordMismatchMessage   = "Passwords do not match."
	RegistrationFailedMessage = "Registration failed. Please try again."
	RecipeCreatedMessage      = "Recipe created successfully"
	RecipeFailedMessage       = "Error creating recipe. Please try again."
	ProfileUpdatedMessage     = "Profile updated successfully."
	ProfileFailedMessage      = "Error updating profile. "
	SignedOutMessage          = "You have signed out successfully."
)
