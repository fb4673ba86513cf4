package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/internal/form"
	"github.com/pageza/sofregit/backend/internal/middleware"
	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/service"
	"github.com/pageza/sofregit/backend/internal/types"
)

const imageField = "image"

type RecipeHandler struct {
	recipeService service.IRecipeService
	logger        *zap.Logger
}

func NewRecipeHandler(recipeService service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger.Named("recipe_handler"),
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, resolver middleware.SessionResolver) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalSession(resolver), h.ListRecipes)
		recipes.GET("/options", h.GetOptions)
		recipes.GET("/form", h.GetFormState)
		recipes.POST("", middleware.AuthMiddleware(resolver), h.CreateRecipe)
	}
}

// ListRecipes returns every recipe newest first, or with mine=true the
// recipes of the signed-in user.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	if c.Query("mine") != "true" {
		c.JSON(http.StatusOK, gin.H{"recipes": h.recipeService.ListNewestFirst(c.Request.Context())})
		return
	}

	sess := middleware.SessionFromContext(c)
	if !sess.SignedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	recipes, err := h.recipeService.ListByOwner(c.Request.Context(), sess.UserID())
	if err != nil {
		h.logger.Error("failed to list own recipes", zap.String("user_id", sess.UserID()), zap.Error(err))
		recipes = []model.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, types.RecipeOptions{
		FoodTypes: model.FoodTypeOptions(),
		DietTypes: model.DietTypeOptions(),
	})
}

// GetFormState describes the recipe form of the client, including whether
// its submit control is disabled.
func (h *RecipeHandler) GetFormState(c *gin.Context) {
	state := h.recipeService.FormState(middleware.ClientID(c))
	c.JSON(http.StatusOK, types.RecipeFormState{
		FoodTypes:  model.FoodTypeOptions(),
		DietTypes:  model.DietTypeOptions(),
		Submitting: state.Submitting,
		Message:    state.Message,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if !bindForm(c, &req, types.CreateRecipeMessages) {
		return
	}

	sub := service.Submission{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Type:         req.Type,
		Diet:         req.Diet,
	}

	fh, err := c.FormFile(imageField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no image
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return
	case fh.Filename != "":
		file, err := fh.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded image", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
			return
		}
		defer file.Close()
		sub.Image = imageFile(fh, file)
	}

	state, recipe, err := h.recipeService.SubmitForm(c.Request.Context(), middleware.SessionFromContext(c), sub)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": state.Message, "recipe": recipe})
	case errors.Is(err, form.ErrSubmissionInProgress):
		submissionInProgress(c)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": state.Message})
	}
}

func imageFile(fh *multipart.FileHeader, file multipart.File) *service.ImageFile {
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &service.ImageFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: contentType,
		Content:     file,
	}
}
