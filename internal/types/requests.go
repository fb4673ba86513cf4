package types

import (
	"github.com/pageza/sofregit/backend/internal/model"
)

// CreateRecipeRequest holds the text fields of the recipe form. The image
// travels as a separate multipart file part.
type CreateRecipeRequest struct {
	Title        string         `form:"title" json:"title" validate:"required"`
	Ingredients  string         `form:"ingredients" json:"ingredients" validate:"required"`
	Instructions string         `form:"instructions" json:"instructions" validate:"required"`
	Type         model.FoodType `form:"type" json:"type" validate:"required,oneof=dessert appetizer main_course beverage"`
	Diet         model.DietType `form:"diet" json:"diet" validate:"required,oneof=vegetarian vegan meat gluten_free keto"`
}

// CreateRecipeMessages are the field messages of the recipe form, keyed by
// field or by field.tag.
var CreateRecipeMessages = map[string]string{
	"title":        "Title is required",
	"ingredients":  "Ingredients are required",
	"instructions": "Instructions are required",
	"type":         "Food type is required",
	"type.oneof":   "Unknown food type",
	"diet":         "Diet type is required",
	"diet.oneof":   "Unknown diet type",
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	FirstName       string `form:"first_name" json:"first_name" validate:"required"`
	LastName        string `form:"last_name" json:"last_name" validate:"required"`
	Email           string `form:"email" json:"email" validate:"required"`
	Password        string `form:"password" json:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" validate:"required"`
}

// UpdateProfileRequest represents the request body for the profile form
type UpdateProfileRequest struct {
	Name  string `form:"name" json:"name" validate:"required"`
	Email string `form:"email" json:"email" validate:"required"`
}
