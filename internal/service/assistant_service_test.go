package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/ai"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newAssistantService(store *fakeStore, gen ai.Generator) *AssistantService {
	repos := store.repos()
	return NewAssistantService(gen, repos.Users, repos.Orders, zap.NewNop())
}

func TestAssistantService_Chat(t *testing.T) {
	gen := &stubGenerator{reply: "The Veg Thali is our most popular lunch."}
	svc := newAssistantService(newFakeStore(), gen)

	reply := svc.Chat(context.Background(), "what should I get for lunch?", nil)
	assert.Equal(t, "The Veg Thali is our most popular lunch.", reply)
	assert.Contains(t, gen.lastPrompt, "QuickPlate AI Assistant")
	assert.Contains(t, gen.lastPrompt, "User: what should I get for lunch?")
}

func TestAssistantService_Chat_IncludesHistory(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	svc := newAssistantService(newFakeStore(), gen)

	history := []ai.Turn{{User: "do you have dosa?", Assistant: "Yes, Masala Dosa."}}
	svc.Chat(context.Background(), "how much is it?", history)

	assert.Contains(t, gen.lastPrompt, "User: do you have dosa?")
	assert.Contains(t, gen.lastPrompt, "Assistant: Yes, Masala Dosa.")
}

func TestAssistantService_Chat_FallbackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	svc := newAssistantService(newFakeStore(), gen)

	reply := svc.Chat(context.Background(), "tell me about the menu", nil)
	assert.Equal(t, ai.FallbackReply("tell me about the menu"), reply)
	assert.NotEmpty(t, reply)
}

func TestAssistantService_Recommendations(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	gen := &stubGenerator{reply: "```json\n" + `[
		{"name": "Masala Dosa", "reason": "You order it often", "category": "Breakfast"},
		{"name": "Paneer Tikka", "reason": "Something new", "category": "Dinner"},
		{"name": "Coffee", "reason": "Good companion", "category": "Snacks"}
	]` + "\n```"}
	svc := newAssistantService(store, gen)

	recs, err := svc.Recommendations(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Masala Dosa", recs[0].Name)
	assert.Equal(t, "Dinner", recs[1].Category)
}

func TestAssistantService_Recommendations_PromptReflectsHistory(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	orderSvc := newOrderService(store, nil)
	_, _, err := orderSvc.Create(context.Background(), orderInput(user.ID))
	require.NoError(t, err)

	gen := &stubGenerator{err: errors.New("stop after prompt")}
	svc := newAssistantService(store, gen)

	_, err = svc.Recommendations(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "order history")
	assert.Contains(t, gen.lastPrompt, "Masala Dosa")
}

func TestAssistantService_Recommendations_FallbackOnError(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	svc := newAssistantService(store, gen)

	recs, err := svc.Recommendations(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, ai.FallbackRecommendations(), recs)
}

func TestAssistantService_Recommendations_FallbackOnBadOutput(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)

	cases := []struct {
		name  string
		reply string
	}{
		{"not json", "Sure! I recommend the dosa."},
		{"wrong count", `[{"name": "Coffee", "reason": "x", "category": "Snacks"}]`},
		{"empty array", `[]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newAssistantService(store, &stubGenerator{reply: tc.reply})
			recs, err := svc.Recommendations(context.Background(), user.ID)
			require.NoError(t, err)
			assert.Equal(t, ai.FallbackRecommendations(), recs)
		})
	}
}

func TestAssistantService_Recommendations_UnknownUser(t *testing.T) {
	svc := newAssistantService(newFakeStore(), &stubGenerator{reply: "[]"})

	_, err := svc.Recommendations(context.Background(), "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
