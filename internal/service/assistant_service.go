package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/ai"
	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/repository"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

const chatSystemPrompt = `You are QuickPlate AI Assistant, a helpful chatbot for a campus food ordering app.

Your knowledge:
- QuickPlate is a campus dining app that helps students order food quickly
- We serve Breakfast, Lunch, Dinner, and Snacks
- Popular items: Masala Dosa, Idli Sambar, Veg Thali, Paneer Tikka, Coffee
- Pickup is at the main canteen counter
- Orders typically take 10-20 minutes to prepare
- We accept UPI, Cash, and Loyalty points program: Earn 5% of order total as points (1 point = 1 rupee)

Answer questions about:
- Menu items and ingredients
- Allergen information (ask user to specify allergies)
- Order status and timing
- Loyalty points program (Earn 5% of bill, 1 point = 1 rupee, redeem for discounts)
- App features

Be friendly, concise, and helpful. If you don't know something, suggest contacting support at support@quickplate.com.`

const recommendationHistoryLimit = 10

// AssistantService wraps the generative model for chat and meal
// recommendations. Stateless per call: no history is retained, no retries,
// no caching; every failure degrades to the deterministic fallback.
type AssistantService struct {
	generator ai.Generator
	users     repository.UserRepository
	orders    repository.OrderRepository
	logger    *zap.Logger
}

// NewAssistantService builds the service around an injected generator.
func NewAssistantService(generator ai.Generator, users repository.UserRepository, orders repository.OrderRepository, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		generator: generator,
		users:     users,
		orders:    orders,
		logger:    logger,
	}
}

// Chat produces a reply for a free-form message with optional prior turns.
// It never fails: any generator error falls back to the keyword responder.
func (s *AssistantService) Chat(ctx context.Context, message string, history []ai.Turn) string {
	var sb strings.Builder
	sb.WriteString(chatSystemPrompt)
	for _, turn := range history {
		if turn.User != "" {
			sb.WriteString("\nUser: " + turn.User)
		}
		if turn.Assistant != "" {
			sb.WriteString("\nAssistant: " + turn.Assistant)
		}
	}
	sb.WriteString("\nUser: " + message)

	reply, err := s.generator.Generate(ctx, sb.String())
	if err != nil {
		s.logger.Debug("chat generation failed, using fallback", zap.Error(err))
		return ai.FallbackReply(message)
	}
	return reply
}

// Recommendations suggests three meals based on the user's recent orders.
func (s *AssistantService) Recommendations(ctx context.Context, userID string) ([]ai.Recommendation, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	orders, err := s.orders.ListByUser(ctx, userID, recommendationHistoryLimit)
	if err != nil {
		return nil, err
	}

	raw, err := s.generator.Generate(ctx, recommendationPrompt(orders))
	if err != nil {
		s.logger.Debug("recommendation generation failed, using fallback", zap.Error(err))
		return ai.FallbackRecommendations(), nil
	}

	recs, err := parseRecommendations(raw)
	if err != nil {
		s.logger.Debug("recommendation parse failed, using fallback", zap.Error(err))
		return ai.FallbackRecommendations(), nil
	}
	return recs, nil
}

func recommendationPrompt(orders []domain.Order) string {
	const format = `Return as JSON array with format:
[{"name": "Meal Name", "reason": "Why recommended", "category": "Breakfast/Lunch/Dinner/Snacks"}]`

	if len(orders) == 0 {
		return "Suggest 3 popular meals from QuickPlate menu for a new user.\n" +
			"Consider it's currently daytime. " + format
	}

	var sb strings.Builder
	sb.WriteString("Based on this user's order history:\n")
	for _, order := range orders {
		names := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			names = append(names, item.Name)
		}
		sb.WriteString(fmt.Sprintf("- Ordered: %s at %s\n",
			strings.Join(names, ", "),
			order.CreatedAt.Format("Monday 3:04 PM")))
	}
	sb.WriteString(`
Suggest 3 personalized meal recommendations. Consider:
- Their favorite items
- Time of day patterns
- Variety (don't repeat same items)

`)
	sb.WriteString(format)
	return sb.String()
}

// parseRecommendations decodes the model output, tolerating markdown code
// fences. Exactly three suggestions are required.
func parseRecommendations(raw string) ([]ai.Recommendation, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var recs []ai.Recommendation
	if err := json.Unmarshal([]byte(cleaned), &recs); err != nil {
		return nil, err
	}
	if len(recs) != 3 {
		return nil, fmt.Errorf("expected 3 recommendations, got %d", len(recs))
	}
	return recs, nil
}
