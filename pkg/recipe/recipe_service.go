package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"Recipe-Hub-Backend/internal/utils/storage"
	"Recipe-Hub-Backend/pkg/pdf"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, userID string) error
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest, page, limit int, userID string) ([]domain.Recipe, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		ToggleIngredient(ctx context.Context, ingredientID string, userID string) (domain.ToggleCompletionResponse, error)
		ToggleStep(ctx context.Context, stepID string, userID string) (domain.ToggleCompletionResponse, error)
		ToggleFavorite(ctx context.Context, recipeID string, userID string) (domain.ToggleFavoriteResponse, error)
		GetFavorites(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error)
		ExportPDF(ctx context.Context, recipeID string) ([]byte, string, error)
		UploadRecipeImage(ctx context.Context, recipeID string, userID string, file *multipart.FileHeader) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		renderer         pdf.Renderer
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, renderer pdf.Renderer, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		renderer:         renderer,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.Recipe, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	recipe := entities.Recipe{
		ID:              uuid.New(),
		UserID:          userUUID,
		Name:            req.Name,
		PreparationTime: req.PreparationTime,
		MinPortion:      req.MinPortion,
		MaxPortion:      req.MaxPortion,
	}

	for _, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, entities.Ingredient{
			ID:       uuid.New(),
			RecipeID: recipe.ID,
			Name:     ing.Name,
		})
	}
	for _, step := range req.Steps {
		recipe.Steps = append(recipe.Steps, entities.Step{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			Description: step.Description,
			Order:       step.Order,
		})
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe); err != nil {
		return domain.Recipe{}, err
	}

	return toRecipeResponse(&recipe, false), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, userID string) error {
	recipe, err := s.getOwnedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	recipe.Name = req.Name
	recipe.PreparationTime = req.PreparationTime
	recipe.MinPortion = req.MinPortion
	recipe.MaxPortion = req.MaxPortion

	ingredients := make([]entities.Ingredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, entities.Ingredient{
			ID:       uuid.New(),
			RecipeID: recipe.ID,
			Name:     ing.Name,
		})
	}
	steps := make([]entities.Step, 0, len(req.Steps))
	for _, step := range req.Steps {
		steps = append(steps, entities.Step{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			Description: step.Description,
			Order:       step.Order,
		})
	}

	return s.recipeRepository.UpdateRecipe(ctx, recipe, ingredients, steps)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	if _, err := s.getOwnedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) getOwnedRecipe(ctx context.Context, recipeID, userID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.recipeRepository.SearchRecipes(ctx, req, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		isFavorite, err := s.recipeRepository.IsFavorite(ctx, userID, recipe.ID.String())
		if err != nil {
			isFavorite = false
		}
		result = append(result, toRecipeResponse(recipe, isFavorite))
	}

	return result, count, nil
}

// GetRecipeDetail merges the recipe's ingredient and step collections with the
// viewing user's completion records, lazily creating missing records with
// completed=false. Steps come back sorted ascending by order.
func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	isFavorite, err := s.recipeRepository.IsFavorite(ctx, userID, recipeID)
	if err != nil {
		isFavorite = false
	}

	ingredients := make([]domain.IngredientWithStatus, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		completion, err := s.recipeRepository.GetOrCreateIngredientCompletion(ctx, userUUID, ingredient.ID)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		ingredients = append(ingredients, domain.IngredientWithStatus{
			ID:        ingredient.ID.String(),
			Name:      ingredient.Name,
			Completed: completion.Completed,
		})
	}

	steps := make([]domain.StepWithStatus, 0, len(recipe.Steps))
	for _, step := range recipe.Steps {
		completion, err := s.recipeRepository.GetOrCreateStepCompletion(ctx, userUUID, step.ID)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		steps = append(steps, domain.StepWithStatus{
			ID:                 step.ID.String(),
			Order:              step.Order,
			Description:        step.Description,
			CleanedDescription: CleanStepDescription(step.Description),
			Completed:          completion.Completed,
		})
	}

	return domain.RecipeDetail{
		Recipe:      toRecipeResponse(recipe, isFavorite),
		Ingredients: ingredients,
		Steps:       steps,
	}, nil
}

func (s *recipeService) ToggleIngredient(ctx context.Context, ingredientID string, userID string) (domain.ToggleCompletionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ToggleCompletionResponse{}, domain.ErrParseUUID
	}

	ingredient, err := s.recipeRepository.GetIngredientByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ToggleCompletionResponse{}, domain.ErrIngredientNotFound
		}
		return domain.ToggleCompletionResponse{}, err
	}

	newValue, err := s.recipeRepository.ToggleIngredientCompletion(ctx, userUUID, ingredient.ID)
	if err != nil {
		return domain.ToggleCompletionResponse{}, err
	}

	return domain.ToggleCompletionResponse{Completed: newValue}, nil
}

func (s *recipeService) ToggleStep(ctx context.Context, stepID string, userID string) (domain.ToggleCompletionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ToggleCompletionResponse{}, domain.ErrParseUUID
	}

	step, err := s.recipeRepository.GetStepByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ToggleCompletionResponse{}, domain.ErrStepNotFound
		}
		return domain.ToggleCompletionResponse{}, err
	}

	newValue, err := s.recipeRepository.ToggleStepCompletion(ctx, userUUID, step.ID)
	if err != nil {
		return domain.ToggleCompletionResponse{}, err
	}

	return domain.ToggleCompletionResponse{Completed: newValue}, nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, recipeID string, userID string) (domain.ToggleFavoriteResponse, error) {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ToggleFavoriteResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ToggleFavoriteResponse{}, err
	}

	isFavorite, err := s.recipeRepository.IsFavorite(ctx, userID, recipeID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	if isFavorite {
		if err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID); err != nil {
			return domain.ToggleFavoriteResponse{}, err
		}
		return domain.ToggleFavoriteResponse{Favorited: false}, nil
	}

	if err := s.recipeRepository.AddFavorite(ctx, userID, recipeID); err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}
	return domain.ToggleFavoriteResponse{Favorited: true}, nil
}

func (s *recipeService) GetFavorites(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.recipeRepository.GetFavoriteRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toRecipeResponse(recipe, true))
	}
	return result, count, nil
}

func (s *recipeService) ExportPDF(ctx context.Context, recipeID string) ([]byte, string, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", domain.ErrRecipeNotFound
		}
		return nil, "", err
	}

	sections := []pdf.Section{
		{Lines: recipeInfoLines(recipe)},
		{Heading: "Ingredients:", Lines: ingredientLines(recipe.Ingredients)},
		{Heading: "Steps:", Lines: stepLines(recipe.Steps)},
	}

	out, err := s.renderer.Render(recipe.Name, sections)
	if err != nil {
		return nil, "", err
	}

	return out, pdfFilename(recipe.Name), nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, userID string, file *multipart.FileHeader) (string, error) {
	if _, err := s.getOwnedRecipe(ctx, recipeID, userID); err != nil {
		return "", err
	}

	key := fmt.Sprintf("recipes/%s/%s%s", recipeID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := s.s3.UploadFile(ctx, file, key)
	if err != nil {
		return "", err
	}

	if err := s.recipeRepository.SetRecipeImageURL(ctx, recipeID, url); err != nil {
		return "", err
	}
	return url, nil
}

func recipeInfoLines(recipe *entities.Recipe) []string {
	var lines []string
	if recipe.PreparationTime != nil {
		lines = append(lines, fmt.Sprintf("Preparation time: %g minutes", *recipe.PreparationTime))
	}
	if recipe.MinPortion != nil || recipe.MaxPortion != nil {
		portions := ""
		if recipe.MinPortion != nil {
			portions += fmt.Sprintf("%d", *recipe.MinPortion)
		}
		if recipe.MaxPortion != nil {
			portions += fmt.Sprintf(" - %d", *recipe.MaxPortion)
		}
		lines = append(lines, fmt.Sprintf("Portions: %s", strings.TrimSpace(portions)))
	}
	return lines
}

func ingredientLines(ingredients []entities.Ingredient) []string {
	lines := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		lines = append(lines, fmt.Sprintf("- %s", ingredient.Name))
	}
	return lines
}

// stepLines prefers the cleaned description, falls back to the raw one, and
// finally to a generic label; the upstream data does not guarantee either
// field carries text on every call path.
func stepLines(steps []entities.Step) []string {
	if len(steps) == 0 {
		return []string{"No steps recorded."}
	}

	lines := make([]string, 0, len(steps))
	for idx, step := range steps {
		text := CleanStepDescription(step.Description)
		if text == "" {
			text = step.Description
		}
		if text == "" {
			text = fmt.Sprintf("Step %d", step.Order)
		}
		lines = append(lines, fmt.Sprintf("%d. %s", idx+1, text))
	}
	return lines
}

func pdfFilename(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	if slug == "" {
		slug = "recipe"
	}
	return slug + ".pdf"
}

func toRecipeResponse(recipe *entities.Recipe, isFavorite bool) domain.Recipe {
	return domain.Recipe{
		ID:              recipe.ID.String(),
		Name:            recipe.Name,
		PreparationTime: recipe.PreparationTime,
		MinPortion:      recipe.MinPortion,
		MaxPortion:      recipe.MaxPortion,
		ImageURL:        recipe.ImageURL,
		CreatedAt:       recipe.CreatedAt,
		IsFavorite:      isFavorite,
	}
}
