package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/config"
	"github.com/pageza/sofregit/backend/internal/logging"
	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/server"
	"github.com/pageza/sofregit/backend/internal/service"
)

var (
	seedEmail    string
	seedPassword string
)

var sampleRecipes = []service.Submission{
	{
		Title:        "Truita de patates",
		Ingredients:  "6 eggs, 4 potatoes, 1 onion, olive oil, salt",
		Instructions: "Fry the sliced potatoes and onion slowly, mix with the beaten eggs and set on both sides.",
		Type:         model.FoodMainCourse,
		Diet:         model.DietVegetarian,
	},
	{
		Title:        "Pa amb tomàquet",
		Ingredients:  "Country bread, ripe tomatoes, garlic, olive oil, salt",
		Instructions: "Toast the bread, rub with garlic and tomato, dress with oil and salt.",
		Type:         model.FoodAppetizer,
		Diet:         model.DietVegan,
	},
	{
		Title:        "Crema catalana",
		Ingredients:  "1 l milk, 6 yolks, 150 g sugar, cornflour, lemon peel, cinnamon",
		Instructions: "Infuse the milk, thicken with yolks and cornflour, chill and burn sugar on top.",
		Type:         model.FoodDessert,
		Diet:         model.DietGlutenFree,
	},
	{
		Title:        "Orxata",
		Ingredients:  "250 g tiger nuts, 1 l water, 120 g sugar, cinnamon",
		Instructions: "Soak the tiger nuts overnight, blend with water, strain and sweeten. Serve cold.",
		Type:         model.FoodBeverage,
		Diet:         model.DietVegan,
	},
	{
		Title:        "Botifarra amb mongetes",
		Ingredients:  "4 botifarres, 500 g cooked white beans, garlic, parsley",
		Instructions: "Grill the sausages and sauté the beans with garlic and parsley.",
		Type:         model.FoodMainCourse,
		Diet:         model.DietMeat,
	},
}

var rootCmd = &cobra.Command{
	Use:   "seed_recipes",
	Short: "Create sample recipes",
	Long:  `Signs in (registering if needed) a seed user and submits the sample recipes as that user.`,
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&seedEmail, "email", "chef@sofregit.local", "seed user email")
	rootCmd.Flags().StringVar(&seedPassword, "password", "sofregit-seed", "seed user password")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(config.GetEnvironment(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	deps, err := server.NewDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = deps.Close(closeCtx)
	}()

	hub := service.NewAuthHub(deps.Redis, logger)
	auth := service.NewAuthService(deps.DB, deps.Sessions, hub, cfg.JWTSecret, cfg.SessionTTL, logger)
	recipes := service.NewRecipeService(deps.Recipes, deps.Objects, logger)

	const clientID = "seed_recipes"
	_, user, err := auth.SignIn(ctx, clientID, seedEmail, seedPassword)
	if err != nil {
		_, user, err = auth.Register(ctx, clientID, service.RegisterInput{
			FirstName:       "Sofregit",
			LastName:        "Chef",
			Email:           seedEmail,
			Password:        seedPassword,
			ConfirmPassword: seedPassword,
		})
		if err != nil {
			return fmt.Errorf("failed to create seed user: %w", err)
		}
	}
	defer func() { _ = auth.SignOut(context.Background(), clientID) }()

	sess := &model.Session{ClientID: clientID, User: user}
	for _, sub := range sampleRecipes {
		recipe, err := recipes.Submit(ctx, sess, sub)
		if err != nil {
			return fmt.Errorf("failed to seed %q: %w", sub.Title, err)
		}
		logger.Info("seeded recipe", zap.String("id", recipe.ID), zap.String("title", recipe.Title))
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("seed_recipes: %v", err)
		os.Exit(1)
	}
}
