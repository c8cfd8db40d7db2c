package assistant

import (
	"Recipe-Hub-Backend/domain"
	"Recipe-Hub-Backend/internal/utils"
	"Recipe-Hub-Backend/pkg/recipe"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
)

// FallbackReply is returned whenever no credential is configured or the
// upstream call fails. It is deliberately labeled so a caller can tell it
// apart from a genuine answer.
const FallbackReply = "[assistant unavailable] The cooking assistant is currently unavailable, so I can't answer that right now. Please try again later."

type (
	AssistantService interface {
		AskAboutRecipe(ctx context.Context, req domain.AskAssistantRequest) (domain.AskAssistantResponse, error)
	}

	assistantService struct {
		recipeRepository recipe.RecipeRepository
		apiKey           string
		model            string
		baseURL          string
		httpClient       *http.Client
	}
)

func NewAssistantService(recipeRepository recipe.RecipeRepository) AssistantService {
	return &assistantService{
		recipeRepository: recipeRepository,
		apiKey:           utils.GetConfig("GEMINI_API_KEY"),
		model:            utils.GetConfig("GEMINI_MODEL"),
		baseURL:          "https://generativelanguage.googleapis.com",
		httpClient:       &http.Client{Timeout: 30 * time.Second},
	}
}

// AskAboutRecipe answers a free-text question using the recipe's ingredients
// and steps as context. Upstream failures never reach the caller as errors;
// they degrade to the canned fallback reply.
func (s *assistantService) AskAboutRecipe(ctx context.Context, req domain.AskAssistantRequest) (domain.AskAssistantResponse, error) {
	rec, err := s.recipeRepository.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AskAssistantResponse{}, domain.ErrRecipeNotFound
		}
		return domain.AskAssistantResponse{}, err
	}

	ingredientNames := make([]string, 0, len(rec.Ingredients))
	for _, ingredient := range rec.Ingredients {
		ingredientNames = append(ingredientNames, ingredient.Name)
	}

	stepTexts := make([]string, 0, len(rec.Steps))
	for idx, step := range rec.Steps {
		stepTexts = append(stepTexts, fmt.Sprintf("%d. %s", idx+1, recipe.CleanStepDescription(step.Description)))
	}

	prompt := fmt.Sprintf(
		"You are a professional chef answering questions about a specific recipe. "+
			"Recipe: %s. "+
			"Ingredients: %s. "+
			"Steps: %s. "+
			"Answer the following question about this recipe clearly and concisely, "+
			"in plain text without markdown. Question: %s",
		rec.Name,
		strings.Join(ingredientNames, ", "),
		strings.Join(stepTexts, " "),
		req.Message,
	)

	if s.apiKey == "" || s.model == "" {
		return domain.AskAssistantResponse{Reply: FallbackReply}, nil
	}

	reply, err := s.ask(ctx, prompt)
	if err != nil {
		return domain.AskAssistantResponse{Reply: FallbackReply}, nil
	}

	return domain.AskAssistantResponse{Reply: reply}, nil
}

func (s *assistantService) ask(ctx context.Context, prompt string) (string, error) {
	geminiURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiAPIFailed
	}

	reply := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	if reply == "" {
		return "", domain.ErrGeminiAPIFailed
	}
	return reply, nil
}
