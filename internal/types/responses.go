package types

import (
	"github.com/pageza/sofregit/backend/internal/model"
)

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string          `json:"token"`
	State model.AuthState `json:"state"`
}

// MessageResponse carries the feedback message of a form.
type MessageResponse struct {
	Message string `json:"message"`
}

// RecipeFormState describes the recipe form: its select options, whether the
// submit control is disabled and the last feedback message.
type RecipeFormState struct {
	FoodTypes  []model.Option `json:"food_types"`
	DietTypes  []model.Option `json:"diet_types"`
	Submitting bool           `json:"submitting"`
	Message    string         `json:"message"`
}

// RecipeOptions lists the select options of the recipe form.
type RecipeOptions struct {
	FoodTypes []model.Option `json:"food_types"`
	DietTypes []model.Option `json:"diet_types"`
}

// ValidationErrorResponse reports field-level validation failures.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
