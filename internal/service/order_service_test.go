package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/events"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

func newOrderService(store *fakeStore, dispatcher events.Dispatcher) *OrderService {
	return NewOrderService(OrderDependencies{
		Repos:      store.repos(),
		TxManager:  &fakeTxManager{store: store},
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func orderInput(userID string) OrderCreateInput {
	return OrderCreateInput{
		UserID: userID,
		Items: []domain.OrderItem{
			{Name: "Masala Dosa", Quantity: 1, Price: 60},
			{Name: "Coffee", Quantity: 2, Price: 20},
		},
		Total:         100,
		PickupTime:    "12:30",
		PaymentMethod: "UPI",
	}
}

func TestOrderService_Create_EarnsPoints(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	dispatcher := &recordingDispatcher{}
	svc := newOrderService(store, dispatcher)

	order, earned, err := svc.Create(context.Background(), orderInput(user.ID))
	require.NoError(t, err)

	assert.Equal(t, 5, earned, "5 percent of a 100 bill")
	assert.Equal(t, 5, store.users[user.ID].LoyaltyPoints)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
	assert.True(t, strings.HasPrefix(order.ExternalKey, "ORD-"))
	assert.Len(t, store.orders, 1)

	event, ok := dispatcher.lastOfType(events.EventOrderPlaced)
	require.True(t, ok)
	payload, ok := event.Payload.(events.OrderPlacedPayload)
	require.True(t, ok)
	assert.Equal(t, 5, payload.PointsEarned)
	assert.Equal(t, 100.0, payload.Total)
}

func TestOrderService_Create_RedeemsThenEarnsOnNet(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 10)
	svc := newOrderService(store, nil)

	input := orderInput(user.ID)
	input.PointsUsed = 10

	order, earned, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	// Earning base is the net charge: 100 - 10 = 90, floored 5% = 4.
	assert.Equal(t, 4, earned)
	assert.Equal(t, 4, store.users[user.ID].LoyaltyPoints)
	assert.Equal(t, 100.0, order.Total, "recorded total stays gross")
}

func TestOrderService_Create_FullRedemptionEarnsNothing(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 100)
	svc := newOrderService(store, nil)

	input := orderInput(user.ID)
	input.PointsUsed = 100

	_, earned, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, earned)
	assert.Equal(t, 0, store.users[user.ID].LoyaltyPoints)
}

func TestOrderService_Create_InsufficientBalanceRollsBack(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 5)
	svc := newOrderService(store, nil)

	input := orderInput(user.ID)
	input.PointsUsed = 10

	_, _, err := svc.Create(context.Background(), input)
	assert.True(t, apperrors.IsCode(err, "INSUFFICIENT_BALANCE"))
	assert.Equal(t, 5, store.users[user.ID].LoyaltyPoints)
	assert.Empty(t, store.orders, "no order row may survive a failed settlement")
}

func TestOrderService_Create_UnknownUser(t *testing.T) {
	store := newFakeStore()
	svc := newOrderService(store, nil)

	_, _, err := svc.Create(context.Background(), orderInput("missing"))
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	assert.Empty(t, store.orders)
}

func TestOrderService_Create_Validation(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	svc := newOrderService(store, nil)

	cases := []struct {
		name   string
		mutate func(*OrderCreateInput)
	}{
		{"missing user id", func(in *OrderCreateInput) { in.UserID = "" }},
		{"no items", func(in *OrderCreateInput) { in.Items = nil }},
		{"zero total", func(in *OrderCreateInput) { in.Total = 0 }},
		{"negative total", func(in *OrderCreateInput) { in.Total = -10 }},
		{"negative points", func(in *OrderCreateInput) { in.PointsUsed = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := orderInput(user.ID)
			tc.mutate(&input)
			_, _, err := svc.Create(context.Background(), input)
			assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
		})
	}
	assert.Empty(t, store.orders)
}

func TestOrderService_ListForUser_NewestFirst(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	other := store.addUser("SAP002", 0)
	svc := newOrderService(store, nil)

	first, _, err := svc.Create(context.Background(), orderInput(user.ID))
	require.NoError(t, err)
	second, _, err := svc.Create(context.Background(), orderInput(user.ID))
	require.NoError(t, err)
	_, _, err = svc.Create(context.Background(), orderInput(other.ID))
	require.NoError(t, err)

	orders, err := svc.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	dispatcher := &recordingDispatcher{}
	svc := newOrderService(store, dispatcher)

	order, _, err := svc.Create(context.Background(), orderInput(user.ID))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReady, updated.Status)
	assert.Equal(t, domain.OrderStatusReady, store.orders[0].Status)

	event, ok := dispatcher.lastOfType(events.EventOrderStatusChanged)
	require.True(t, ok)
	payload, ok := event.Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusPlaced, payload.OldStatus)
	assert.Equal(t, domain.OrderStatusReady, payload.NewStatus)
}

func TestOrderService_UpdateStatus_RejectsUnknownLabel(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 0)
	svc := newOrderService(store, nil)

	order, _, err := svc.Create(context.Background(), orderInput(user.ID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatus("Cooked"))
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	assert.Equal(t, domain.OrderStatusPlaced, store.orders[0].Status, "prior status stands")
}

func TestOrderService_UpdateStatus_UnknownOrder(t *testing.T) {
	store := newFakeStore()
	svc := newOrderService(store, nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", domain.OrderStatusCompleted)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
