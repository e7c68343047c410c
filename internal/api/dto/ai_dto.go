package dto

import "github.com/spec-kit/quickplate-service/internal/ai"

// ChatRequest payload for the assistant endpoint.
type ChatRequest struct {
	Message string    `json:"message"`
	History []ai.Turn `json:"history"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Message string `json:"message"`
}

// RecommendationsResponse carries meal suggestions.
type RecommendationsResponse struct {
	Recommendations []ai.Recommendation `json:"recommendations"`
}
