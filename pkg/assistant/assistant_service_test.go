package assistant

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/entities"
	"Recipe-Hub-Backend/pkg/recipe"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) (recipe.RecipeRepository, string) {
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
	))

	user := entities.User{ID: uuid.New(), Name: "tester", Email: "tester@example.com"}
	require.NoError(t, db.Create(&user).Error)

	rec := entities.Recipe{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "Fluffy Pancakes",
		Ingredients: []entities.Ingredient{
			{ID: uuid.New(), Name: "Flour"},
			{ID: uuid.New(), Name: "Milk"},
		},
		Steps: []entities.Step{
			{ID: uuid.New(), Description: "1- Mix everything", Order: 1},
			{ID: uuid.New(), Description: "2- Fry until golden", Order: 2},
		},
	}
	require.NoError(t, db.Create(&rec).Error)

	return recipe.NewRecipeRepository(db), rec.ID.String()
}

func newTestService(repo recipe.RecipeRepository, apiKey, baseURL string) *assistantService {
	return &assistantService{
		recipeRepository: repo,
		apiKey:           apiKey,
		model:            "gemini-test",
		baseURL:          baseURL,
		httpClient:       &http.Client{Timeout: 5 * time.Second},
	}
}

func geminiReplyJSON(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func TestAskWithoutCredentialFallsBack(t *testing.T) {
	repo, recipeID := newTestRepository(t)
	svc := newTestService(repo, "", "https://example.invalid")

	res, err := svc.AskAboutRecipe(context.Background(), domain.AskAssistantRequest{
		Message:  "Can I use oat milk?",
		RecipeID: recipeID,
	})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, res.Reply)
	assert.Contains(t, res.Reply, "[assistant unavailable]")
}

func TestAskUpstreamFailureFallsBack(t *testing.T) {
	repo, recipeID := newTestRepository(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := newTestService(repo, "test-key", srv.URL)

	res, err := svc.AskAboutRecipe(context.Background(), domain.AskAssistantRequest{
		Message:  "Can I use oat milk?",
		RecipeID: recipeID,
	})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, res.Reply)
}

func TestAskEmptyCandidatesFallsBack(t *testing.T) {
	repo, recipeID := newTestRepository(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	svc := newTestService(repo, "test-key", srv.URL)

	res, err := svc.AskAboutRecipe(context.Background(), domain.AskAssistantRequest{
		Message:  "Can I use oat milk?",
		RecipeID: recipeID,
	})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, res.Reply)
}

func TestAskReturnsUpstreamReply(t *testing.T) {
	repo, recipeID := newTestRepository(t)

	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Contents, 1)
		prompt = req.Contents[0].Parts[0].Text

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, geminiReplyJSON("Yes, oat milk works fine here."))
	}))
	defer srv.Close()

	svc := newTestService(repo, "test-key", srv.URL)

	res, err := svc.AskAboutRecipe(context.Background(), domain.AskAssistantRequest{
		Message:  "Can I use oat milk?",
		RecipeID: recipeID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Yes, oat milk works fine here.", res.Reply)

	// The prompt carries recipe context with cleaned step text.
	assert.Contains(t, prompt, "Fluffy Pancakes")
	assert.Contains(t, prompt, "Flour, Milk")
	assert.Contains(t, prompt, "1. Mix everything")
	assert.False(t, strings.Contains(prompt, "1- Mix everything"))
	assert.Contains(t, prompt, "Can I use oat milk?")
}

func TestAskUnknownRecipe(t *testing.T) {
	repo, _ := newTestRepository(t)
	svc := newTestService(repo, "test-key", "https://example.invalid")

	_, err := svc.AskAboutRecipe(context.Background(), domain.AskAssistantRequest{
		Message:  "Can I use oat milk?",
		RecipeID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}
