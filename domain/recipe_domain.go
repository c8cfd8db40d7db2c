package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes        = "success get recipes"
	MessageSuccessGetRecipeDetail   = "success get recipe detail"
	MessageSuccessSaveRecipe        = "recipe saved successfully"
	MessageSuccessUpdateRecipe      = "recipe updated successfully"
	MessageSuccessDeleteRecipe      = "recipe deleted successfully"
	MessageSuccessToggleFavorite    = "favorite updated successfully"
	MessageSuccessGetFavorites      = "success get favorite recipes"
	MessageSuccessToggleCompletion  = "completion updated successfully"
	MessageSuccessUploadRecipeImage = "recipe image uploaded successfully"

	MessageFailedGetRecipes        = "failed to get recipes"
	MessageFailedGetRecipeDetail   = "failed to get recipe detail"
	MessageFailedSaveRecipe        = "failed to save recipe"
	MessageFailedUpdateRecipe      = "failed to update recipe"
	MessageFailedDeleteRecipe      = "failed to delete recipe"
	MessageFailedToggleFavorite    = "failed to update favorite"
	MessageFailedGetFavorites      = "failed to get favorite recipes"
	MessageFailedToggleCompletion  = "failed to update completion"
	MessageFailedUploadRecipeImage = "failed to upload recipe image"
	MessageFailedExportRecipePDF   = "failed to export recipe pdf"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrIngredientNotFound       = errors.New("ingredient not found")
	ErrStepNotFound             = errors.New("step not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
)

type (
	IngredientRequest struct {
		Name string `json:"name" validate:"required"`
	}

	StepRequest struct {
		Description string `json:"description" validate:"required"`
		Order       int    `json:"order"`
	}

	SaveRecipeRequest struct {
		Name            string              `json:"name" validate:"required"`
		PreparationTime *float64            `json:"preparation_time,omitempty"`
		MinPortion      *int                `json:"min_portion,omitempty"`
		MaxPortion      *int                `json:"max_portion,omitempty"`
		Ingredients     []IngredientRequest `json:"ingredients" validate:"dive"`
		Steps           []StepRequest       `json:"steps" validate:"dive"`
	}

	SearchRecipeRequest struct {
		Name        string
		Ingredient  string
		MaxPrepTime float64
	}

	Recipe struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		PreparationTime *float64  `json:"preparation_time,omitempty"`
		MinPortion      *int      `json:"min_portion,omitempty"`
		MaxPortion      *int      `json:"max_portion,omitempty"`
		ImageURL        string    `json:"image_url,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
		IsFavorite      bool      `json:"is_favorite"`
	}

	IngredientWithStatus struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Completed bool   `json:"completed"`
	}

	StepWithStatus struct {
		ID                 string `json:"id"`
		Order              int    `json:"order"`
		Description        string `json:"description"`
		CleanedDescription string `json:"cleaned_description"`
		Completed          bool   `json:"completed"`
	}

	RecipeDetail struct {
		Recipe
		Ingredients []IngredientWithStatus `json:"ingredients"`
		Steps       []StepWithStatus       `json:"steps"`
	}

	ToggleCompletionResponse struct {
		Completed bool `json:"completed"`
	}

	ToggleFavoriteResponse struct {
		Favorited bool `json:"favorited"`
	}
)
