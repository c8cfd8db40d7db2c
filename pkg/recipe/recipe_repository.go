package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeByName(ctx context.Context, name string) (*entities.Recipe, error)
		SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest, page, limit int) ([]*entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step) error
		UpdateRecipeInfo(ctx context.Context, recipe *entities.Recipe) error
		AddIngredients(ctx context.Context, ingredients []entities.Ingredient) error
		AddSteps(ctx context.Context, steps []entities.Step) error
		DeleteRecipe(ctx context.Context, id string) error
		SetRecipeImageURL(ctx context.Context, id string, url string) error

		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetStepByID(ctx context.Context, id string) (*entities.Step, error)

		GetOrCreateIngredientCompletion(ctx context.Context, userID, ingredientID uuid.UUID) (*entities.UserIngredientCompletion, error)
		GetOrCreateStepCompletion(ctx context.Context, userID, stepID uuid.UUID) (*entities.UserStepCompletion, error)
		ToggleIngredientCompletion(ctx context.Context, userID, ingredientID uuid.UUID) (bool, error)
		ToggleStepCompletion(ctx context.Context, userID, stepID uuid.UUID) (bool, error)

		IsFavorite(ctx context.Context, userID, recipeID string) (bool, error)
		AddFavorite(ctx context.Context, userID, recipeID string) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order asc")
		}).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeByName(ctx context.Context, name string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order asc")
		}).
		Where("name = ?", name).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) searchQuery(ctx context.Context, req domain.SearchRecipeRequest) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if req.Name != "" {
		q = q.Where("LOWER(recipes.name) LIKE LOWER(?)", "%"+req.Name+"%")
	}
	if req.Ingredient != "" {
		q = q.Joins("JOIN ingredients ON ingredients.recipe_id = recipes.id").
			Where("LOWER(ingredients.name) LIKE LOWER(?)", "%"+req.Ingredient+"%")
	}
	if req.MaxPrepTime > 0 {
		q = q.Where("recipes.preparation_time IS NOT NULL AND recipes.preparation_time <= ?", req.MaxPrepTime)
	}

	return q
}

func (r *recipeRepository) SearchRecipes(ctx context.Context, req domain.SearchRecipeRequest, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.searchQuery(ctx, req).
		Distinct("recipes.id").
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.searchQuery(ctx, req).
		Distinct("recipes.*").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// UpdateRecipe replaces the recipe's ingredient and step collections wholesale.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []entities.Ingredient, steps []entities.Step) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]any{
			"name":             recipe.Name,
			"preparation_time": recipe.PreparationTime,
			"min_portion":      recipe.MinPortion,
			"max_portion":      recipe.MaxPortion,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Step{}).Error; err != nil {
			return err
		}

		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}
		if len(steps) > 0 {
			if err := tx.Create(&steps).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateRecipeInfo changes the recipe's own fields without touching its
// ingredient and step collections.
func (r *recipeRepository) UpdateRecipeInfo(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]any{
			"name":             recipe.Name,
			"preparation_time": recipe.PreparationTime,
			"min_portion":      recipe.MinPortion,
			"max_portion":      recipe.MaxPortion,
		}).Error
}

func (r *recipeRepository) AddIngredients(ctx context.Context, ingredients []entities.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ingredients).Error
}

func (r *recipeRepository) AddSteps(ctx context.Context, steps []entities.Step) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&steps).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) SetRecipeImageURL(ctx context.Context, id string, url string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("image_url", url).Error
}

func (r *recipeRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *recipeRepository) GetStepByID(ctx context.Context, id string) (*entities.Step, error) {
	var step entities.Step
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&step).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

// GetOrCreateIngredientCompletion lazily creates the (user, ingredient) record
// with completed=false. A lost insert race against the unique index degrades
// to reading the row the winner created.
func (r *recipeRepository) GetOrCreateIngredientCompletion(ctx context.Context, userID, ingredientID uuid.UUID) (*entities.UserIngredientCompletion, error) {
	var completion entities.UserIngredientCompletion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		First(&completion).Error
	if err == nil {
		return &completion, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	completion = entities.UserIngredientCompletion{
		ID:           uuid.New(),
		UserID:       userID,
		IngredientID: ingredientID,
		Completed:    false,
	}
	if createErr := r.db.WithContext(ctx).Create(&completion).Error; createErr != nil {
		var existing entities.UserIngredientCompletion
		if readErr := r.db.WithContext(ctx).
			Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
			First(&existing).Error; readErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &completion, nil
}

func (r *recipeRepository) GetOrCreateStepCompletion(ctx context.Context, userID, stepID uuid.UUID) (*entities.UserStepCompletion, error) {
	var completion entities.UserStepCompletion
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND step_id = ?", userID, stepID).
		First(&completion).Error
	if err == nil {
		return &completion, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	completion = entities.UserStepCompletion{
		ID:        uuid.New(),
		UserID:    userID,
		StepID:    stepID,
		Completed: false,
	}
	if createErr := r.db.WithContext(ctx).Create(&completion).Error; createErr != nil {
		var existing entities.UserStepCompletion
		if readErr := r.db.WithContext(ctx).
			Where("user_id = ? AND step_id = ?", userID, stepID).
			First(&existing).Error; readErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &completion, nil
}

// ToggleIngredientCompletion flips the (user, ingredient) record and returns
// the stored value. The flip is a single `completed = NOT completed` statement,
// so two concurrent toggles serialize on the row and net out to the original
// value instead of both landing on true.
func (r *recipeRepository) ToggleIngredientCompletion(ctx context.Context, userID, ingredientID uuid.UUID) (bool, error) {
	if _, err := r.GetOrCreateIngredientCompletion(ctx, userID, ingredientID); err != nil {
		return false, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.UserIngredientCompletion{}).
		Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		Update("completed", gorm.Expr("NOT completed")).Error; err != nil {
		return false, err
	}

	var completion entities.UserIngredientCompletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		First(&completion).Error; err != nil {
		return false, err
	}
	return completion.Completed, nil
}

func (r *recipeRepository) ToggleStepCompletion(ctx context.Context, userID, stepID uuid.UUID) (bool, error) {
	if _, err := r.GetOrCreateStepCompletion(ctx, userID, stepID); err != nil {
		return false, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.UserStepCompletion{}).
		Where("user_id = ? AND step_id = ?", userID, stepID).
		Update("completed", gorm.Expr("NOT completed")).Error; err != nil {
		return false, err
	}

	var completion entities.UserStepCompletion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND step_id = ?", userID, stepID).
		First(&completion).Error; err != nil {
		return false, err
	}
	return completion.Completed, nil
}

func (r *recipeRepository) IsFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}

	favorite := entities.FavoriteRecipe{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.FavoriteRecipe{}).Error
}

func (r *recipeRepository) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN favorite_recipes ON recipes.id = favorite_recipes.recipe_id").
		Where("favorite_recipes.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN favorite_recipes ON recipes.id = favorite_recipes.recipe_id").
		Where("favorite_recipes.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("favorite_recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}
