package domain

import (
	"errors"
)

var (
	MessageSuccessAskAssistant = "success get assistant reply"

	MessageFailedAskAssistant = "failed to ask assistant"

	ErrGeminiAPIFailed = errors.New("gemini API processing failed")
)

type (
	AskAssistantRequest struct {
		Message  string `json:"message" validate:"required"`
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	AskAssistantResponse struct {
		Reply string `json:"reply"`
	}
)
