package model

import (
	"time"
)

// FoodType is the course a recipe belongs to.
type FoodType string

const (
	FoodDessert    FoodType = "dessert"
	FoodAppetizer  FoodType = "appetizer"
	FoodMainCourse FoodType = "main_course"
	FoodBeverage   FoodType = "beverage"
)

// DietType is the diet a recipe is suitable for.
type DietType string

const (
	DietVegetarian DietType = "vegetarian"
	DietVegan      DietType = "vegan"
	DietMeat       DietType = "meat"
	DietGlutenFree DietType = "gluten_free"
	DietKeto       DietType = "keto"
)

var foodTypeLabels = map[FoodType]string{
	FoodDessert:    "Postre",
	FoodAppetizer:  "Aperitivo",
	FoodMainCourse: "Plato principal",
	FoodBeverage:   "Bebida",
}

var dietTypeLabels = map[DietType]string{
	DietVegetarian: "Vegetariana",
	DietVegan:      "Vegana",
	DietMeat:       "Carne",
	DietGlutenFree: "Sin gluten",
	DietKeto:       "Keto",
}

// FoodTypes lists the food types in form order.
var FoodTypes = []FoodType{FoodDessert, FoodAppetizer, FoodMainCourse, FoodBeverage}

// DietTypes lists the diet types in form order.
var DietTypes = []DietType{DietVegetarian, DietVegan, DietMeat, DietGlutenFree, DietKeto}

// Label returns the display label shown in the recipe form.
func (t FoodType) Label() string { return foodTypeLabels[t] }

// Valid reports whether t is one of the known food types.
func (t FoodType) Valid() bool {
	_, ok := foodTypeLabels[t]
	return ok
}

// Label returns the display label shown in the recipe form.
func (d DietType) Label() string { return dietTypeLabels[d] }

// Valid reports whether d is one of the known diet types.
func (d DietType) Valid() bool {
	_, ok := dietTypeLabels[d]
	return ok
}

// Recipe is a document in the recipes collection. It is created once and
// never updated or deleted.
type Recipe struct {
	ID           string    `gorm:"primaryKey;size:26" json:"id" bson:"_id"`
	Title        string    `gorm:"size:255;not null" json:"title" bson:"title"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients" bson:"ingredients"`
	Instructions string    `gorm:"type:text;not null" json:"instructions" bson:"instructions"`
	Type         FoodType  `gorm:"size:32;not null" json:"type" bson:"type"`
	Diet         DietType  `gorm:"size:32;not null" json:"diet" bson:"diet"`
	ImageURL     string    `gorm:"size:1024" json:"image_url" bson:"imageUrl"`
	UserID       string    `gorm:"size:36;index" json:"user_id,omitempty" bson:"userId,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at" bson:"createdAt"`
}

// Option is a value/label pair used to build form selects.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FoodTypeOptions returns the food type select options.
func FoodTypeOptions() []Option {
	opts := make([]Option, 0, len(FoodTypes))
	for _, t := range FoodTypes {
		opts = append(opts, Option{Value: string(t), Label: t.Label()})
	}
	return opts
}

// DietTypeOptions returns the diet type select options.
func DietTypeOptions() []Option {
	opts := make([]Option, 0, len(DietTypes))
	for _, d := range DietTypes {
		opts = append(opts, Option{Value: string(d), Label: d.Label()})
	}
	return opts
}
