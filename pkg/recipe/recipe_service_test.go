package recipe

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"Recipe-Hub-Backend/pkg/pdf"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Step{},
		&entities.UserIngredientCompletion{},
		&entities.UserStepCompletion{},
		&entities.FavoriteRecipe{},
	))
	return db
}

func newTestService(t *testing.T) (RecipeService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return NewRecipeService(NewRecipeRepository(db), pdf.NewRenderer(), nil), db
}

func createTestUser(t *testing.T, db *gorm.DB) string {
	t.Helper()

	user := entities.User{
		ID:    uuid.New(),
		Name:  "tester",
		Email: uuid.NewString() + "@example.com",
		Role:  "user",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID.String()
}

func pancakeRequest() domain.SaveRecipeRequest {
	prep := 25.0
	minPortion, maxPortion := 2, 4
	return domain.SaveRecipeRequest{
		Name:            "Fluffy Pancakes",
		PreparationTime: &prep,
		MinPortion:      &minPortion,
		MaxPortion:      &maxPortion,
		Ingredients: []domain.IngredientRequest{
			{Name: "Flour"},
			{Name: "Milk"},
		},
		Steps: []domain.StepRequest{
			{Description: "1- Mix the dry ingredients", Order: 1},
			{Description: "2- Add milk and whisk", Order: 2},
			{Description: "Fry until golden", Order: 3},
		},
	}
}

func TestGetRecipeDetailCreatesCompletions(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)

	detail, err := svc.GetRecipeDetail(ctx, created.ID, userID)
	require.NoError(t, err)

	require.Len(t, detail.Ingredients, 2)
	require.Len(t, detail.Steps, 3)
	for _, ingredient := range detail.Ingredients {
		assert.False(t, ingredient.Completed)
	}
	for _, step := range detail.Steps {
		assert.False(t, step.Completed)
	}

	// A second fetch reuses the lazily created records instead of duplicating.
	_, err = svc.GetRecipeDetail(ctx, created.ID, userID)
	require.NoError(t, err)

	var ingredientRecords, stepRecords int64
	require.NoError(t, db.Model(&entities.UserIngredientCompletion{}).Count(&ingredientRecords).Error)
	require.NoError(t, db.Model(&entities.UserStepCompletion{}).Count(&stepRecords).Error)
	assert.Equal(t, int64(2), ingredientRecords)
	assert.Equal(t, int64(3), stepRecords)
}

func TestGetRecipeDetailCleansStepText(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)

	detail, err := svc.GetRecipeDetail(ctx, created.ID, userID)
	require.NoError(t, err)

	require.Len(t, detail.Steps, 3)
	assert.Equal(t, "1- Mix the dry ingredients", detail.Steps[0].Description)
	assert.Equal(t, "Mix the dry ingredients", detail.Steps[0].CleanedDescription)
	assert.Equal(t, "Fry until golden", detail.Steps[2].CleanedDescription)
}

func TestGetRecipeDetailStepsSorted(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	req := domain.SaveRecipeRequest{
		Name: "Scrambled Order",
		Steps: []domain.StepRequest{
			{Description: "third", Order: 3},
			{Description: "first", Order: 1},
			{Description: "second", Order: 2},
		},
	}
	created, err := svc.CreateRecipe(ctx, req, userID)
	require.NoError(t, err)

	detail, err := svc.GetRecipeDetail(ctx, created.ID, userID)
	require.NoError(t, err)

	require.Len(t, detail.Steps, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{detail.Steps[0].Order, detail.Steps[1].Order, detail.Steps[2].Order})
	assert.Equal(t, "first", detail.Steps[0].Description)
}

func TestToggleStepFlipsSingleRecord(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)
	detail, err := svc.GetRecipeDetail(ctx, created.ID, userID)
	require.NoError(t, err)
	stepID := detail.Steps[0].ID

	res, err := svc.ToggleStep(ctx, stepID, userID)
	require.NoError(t, err)
	assert.True(t, res.Completed)

	var stored entities.UserStepCompletion
	require.NoError(t, db.Where("step_id = ?", stepID).First(&stored).Error)
	assert.True(t, stored.Completed)

	res, err = svc.ToggleStep(ctx, stepID, userID)
	require.NoError(t, err)
	assert.False(t, res.Completed)

	// Two toggles return the stored value to where it started, on one record.
	require.NoError(t, db.Where("step_id = ?", stepID).First(&stored).Error)
	assert.False(t, stored.Completed)

	var records int64
	require.NoError(t, db.Model(&entities.UserStepCompletion{}).
		Where("step_id = ?", stepID).Count(&records).Error)
	assert.Equal(t, int64(1), records)
}

func TestToggleIngredientFlipsStoredValue(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)
	detail, err := svc.GetRecipeDetail(ctx, created.ID, userID)
	require.NoError(t, err)
	ingredientID := detail.Ingredients[0].ID

	// The completion record already exists from the detail merge; the toggle
	// must flip that same row rather than create another.
	res, err := svc.ToggleIngredient(ctx, ingredientID, userID)
	require.NoError(t, err)
	assert.True(t, res.Completed)

	res, err = svc.ToggleIngredient(ctx, ingredientID, userID)
	require.NoError(t, err)
	assert.False(t, res.Completed)

	var records int64
	require.NoError(t, db.Model(&entities.UserIngredientCompletion{}).
		Where("ingredient_id = ?", ingredientID).Count(&records).Error)
	assert.Equal(t, int64(1), records)
}

func TestToggleIngredientUnknownID(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	_, err := svc.ToggleIngredient(ctx, uuid.NewString(), userID)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestCompletionIsPerUser(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := createTestUser(t, db)
	viewer := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), owner)
	require.NoError(t, err)
	detail, err := svc.GetRecipeDetail(ctx, created.ID, owner)
	require.NoError(t, err)

	_, err = svc.ToggleStep(ctx, detail.Steps[0].ID, owner)
	require.NoError(t, err)

	viewerDetail, err := svc.GetRecipeDetail(ctx, created.ID, viewer)
	require.NoError(t, err)
	assert.False(t, viewerDetail.Steps[0].Completed)

	ownerDetail, err := svc.GetRecipeDetail(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.True(t, ownerDetail.Steps[0].Completed)
}

func TestToggleFavorite(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)

	res, err := svc.ToggleFavorite(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.True(t, res.Favorited)

	favorites, count, err := svc.GetFavorites(ctx, 1, 10, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].IsFavorite)

	res, err = svc.ToggleFavorite(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.False(t, res.Favorited)

	_, count, err = svc.GetFavorites(ctx, 1, 10, userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestToggleFavoriteUnknownRecipe(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	_, err := svc.ToggleFavorite(ctx, uuid.NewString(), userID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestSearchRecipes(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	_, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)

	slowPrep := 90.0
	_, err = svc.CreateRecipe(ctx, domain.SaveRecipeRequest{
		Name:            "Beef Stew",
		PreparationTime: &slowPrep,
		Ingredients:     []domain.IngredientRequest{{Name: "Beef"}, {Name: "Carrot"}},
	}, userID)
	require.NoError(t, err)

	byName, count, err := svc.SearchRecipes(ctx, domain.SearchRecipeRequest{Name: "pancake"}, 1, 10, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, byName, 1)
	assert.Equal(t, "Fluffy Pancakes", byName[0].Name)

	byIngredient, count, err := svc.SearchRecipes(ctx, domain.SearchRecipeRequest{Ingredient: "carrot"}, 1, 10, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, byIngredient, 1)
	assert.Equal(t, "Beef Stew", byIngredient[0].Name)

	quick, count, err := svc.SearchRecipes(ctx, domain.SearchRecipeRequest{MaxPrepTime: 30}, 1, 10, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, quick, 1)
	assert.Equal(t, "Fluffy Pancakes", quick[0].Name)
}

func TestUpdateRecipeReplacesChildren(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)

	err = svc.UpdateRecipe(ctx, created.ID, domain.SaveRecipeRequest{
		Name:        "Thin Crepes",
		Ingredients: []domain.IngredientRequest{{Name: "Eggs"}},
		Steps:       []domain.StepRequest{{Description: "Whisk and fry thin", Order: 1}},
	}, userID)
	require.NoError(t, err)

	detail, err := svc.GetRecipeDetail(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Thin Crepes", detail.Name)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "Eggs", detail.Ingredients[0].Name)
	require.Len(t, detail.Steps, 1)
}

func TestUpdateAndDeleteRequireOwnership(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := createTestUser(t, db)
	intruder := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), owner)
	require.NoError(t, err)

	err = svc.UpdateRecipe(ctx, created.ID, pancakeRequest(), intruder)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	err = svc.DeleteRecipe(ctx, created.ID, intruder)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID, owner))

	_, err = svc.GetRecipeDetail(ctx, created.ID, owner)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestExportPDFRecipe(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := createTestUser(t, db)

	created, err := svc.CreateRecipe(ctx, pancakeRequest(), userID)
	require.NoError(t, err)

	out, filename, err := svc.ExportPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "fluffy-pancakes.pdf", filename)

	_, _, err = svc.ExportPDF(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
