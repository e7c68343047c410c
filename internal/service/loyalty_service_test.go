package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/events"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

func newLoyaltyService(store *fakeStore, dispatcher events.Dispatcher) *LoyaltyService {
	return NewLoyaltyService(LoyaltyDependencies{
		Repos:      store.repos(),
		TxManager:  &fakeTxManager{store: store},
		Cache:      newFakeCache(),
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func TestComputeEarnings(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   int
	}{
		{"zero bill", 0, 0},
		{"negative bill", -50, 0},
		{"below one point", 19, 0},
		{"exactly one point", 20, 1},
		{"round amount", 100, 5},
		{"fraction floors down", 99, 4},
		{"large bill", 1250, 62},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeEarnings(tc.amount))
		})
	}
}

func TestLoyaltyService_Balance(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 42)
	svc := newLoyaltyService(store, nil)

	balance, err := svc.Balance(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, balance)

	_, err = svc.Balance(context.Background(), "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestLoyaltyService_RedeemOffer(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 100)
	offer := store.addOffer(50, 40, true)

	dispatcher := &recordingDispatcher{}
	svc := newLoyaltyService(store, dispatcher)

	remaining, discount, err := svc.RedeemOffer(context.Background(), user.ID, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, remaining)
	assert.Equal(t, 40.0, discount)
	assert.Equal(t, 50, store.users[user.ID].LoyaltyPoints)

	event, ok := dispatcher.lastOfType(events.EventOfferRedeemed)
	require.True(t, ok)
	payload, ok := event.Payload.(events.OfferRedeemedPayload)
	require.True(t, ok)
	assert.Equal(t, 50, payload.PointsSpent)
	assert.Equal(t, 50, payload.RemainingPoints)
}

func TestLoyaltyService_RedeemOffer_InsufficientBalance(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 30)
	offer := store.addOffer(50, 40, true)
	svc := newLoyaltyService(store, nil)

	_, _, err := svc.RedeemOffer(context.Background(), user.ID, offer.ID)
	assert.True(t, apperrors.IsCode(err, "INSUFFICIENT_BALANCE"))
	assert.Equal(t, 30, store.users[user.ID].LoyaltyPoints, "failed redemption must not touch the balance")
}

func TestLoyaltyService_RedeemOffer_InactiveOffer(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 500)
	offer := store.addOffer(50, 40, false)
	svc := newLoyaltyService(store, nil)

	_, _, err := svc.RedeemOffer(context.Background(), user.ID, offer.ID)
	assert.True(t, apperrors.IsCode(err, "OFFER_INACTIVE"), "balance is irrelevant when the offer is inactive")
	assert.Equal(t, 500, store.users[user.ID].LoyaltyPoints)
}

func TestLoyaltyService_RedeemOffer_NotFound(t *testing.T) {
	store := newFakeStore()
	user := store.addUser("SAP001", 100)
	offer := store.addOffer(50, 40, true)
	svc := newLoyaltyService(store, nil)

	_, _, err := svc.RedeemOffer(context.Background(), user.ID, "missing-offer")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, _, err = svc.RedeemOffer(context.Background(), "missing-user", offer.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestLoyaltyService_ListOffers_Cached(t *testing.T) {
	store := newFakeStore()
	offer := store.addOffer(15, 10, true)
	store.addOffer(25, 20, false)
	svc := newLoyaltyService(store, nil)

	offers, err := svc.ListOffers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 1, "inactive offers are hidden")
	assert.Equal(t, offer.ID, offers[0].ID)

	// The second read is served from cache: removing the row must not be
	// visible until the TTL expires.
	delete(store.offers, offer.ID)
	offers, err = svc.ListOffers(context.Background())
	require.NoError(t, err)
	assert.Len(t, offers, 1)
}
