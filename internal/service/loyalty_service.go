package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/events"
	"github.com/spec-kit/quickplate-service/internal/repository"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

const (
	// loyaltyEarnRate is the share of the net billed amount credited back
	// as points.
	loyaltyEarnRate = 0.05
	// PointValue is the fixed exchange rate: 1 point = 1 currency unit.
	PointValue = 1.0

	offersCacheKey = "offers:active"
	offersCacheTTL = time.Minute
)

// ComputeEarnings returns the points earned on a billed amount. The base is
// the amount actually charged, net of any points redeemed in the same
// settlement, so money never charged cannot mint points.
func ComputeEarnings(billAmount float64) int {
	if billAmount <= 0 {
		return 0
	}
	return int(math.Floor(billAmount * loyaltyEarnRate))
}

// Cache is the subset of the redis wrapper the services need. A nil-safe
// implementation allows running without redis.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// LoyaltyService owns point balances and offer redemption.
type LoyaltyService struct {
	repos      repository.Repositories
	txm        repository.TxManager
	cache      Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// LoyaltyDependencies bundles requirements for the loyalty service.
type LoyaltyDependencies struct {
	Repos      repository.Repositories
	TxManager  repository.TxManager
	Cache      Cache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewLoyaltyService builds the service.
func NewLoyaltyService(deps LoyaltyDependencies) *LoyaltyService {
	return &LoyaltyService{
		repos:      deps.Repos,
		txm:        deps.TxManager,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Balance returns the user's current point balance.
func (s *LoyaltyService) Balance(ctx context.Context, userID string) (int, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return 0, err
	}
	return user.LoyaltyPoints, nil
}

// ListOffers returns active offers, cached briefly.
func (s *LoyaltyService) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, offersCacheKey); err == nil && cached != "" {
			var offers []domain.Offer
			if err := json.Unmarshal([]byte(cached), &offers); err == nil {
				return offers, nil
			}
		}
	}

	offers, err := s.repos.Offers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(offers); err == nil {
			if err := s.cache.Set(ctx, offersCacheKey, string(encoded), offersCacheTTL); err != nil {
				s.logger.Debug("offer cache set failed", zap.Error(err))
			}
		}
	}
	return offers, nil
}

// RedeemOffer spends points for a catalog offer. The balance check and
// decrement run in one transaction with the user row locked.
func (s *LoyaltyService) RedeemOffer(ctx context.Context, userID, offerID string) (remaining int, discount float64, err error) {
	var offer *domain.Offer

	err = s.txm.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var txErr error
		offer, txErr = repos.Offers.GetByID(ctx, offerID)
		if txErr != nil {
			if txErr == pgx.ErrNoRows {
				return apperrors.NewNotFound("offer", map[string]any{"offer_id": offerID})
			}
			return txErr
		}
		if !offer.Active {
			return apperrors.NewOfferInactive(offerID)
		}

		user, txErr := repos.Users.GetForUpdate(ctx, userID)
		if txErr != nil {
			if txErr == pgx.ErrNoRows {
				return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
			}
			return txErr
		}
		if user.LoyaltyPoints < offer.PointsRequired {
			return apperrors.NewInsufficientBalance(map[string]any{
				"required":  offer.PointsRequired,
				"available": user.LoyaltyPoints,
			})
		}

		remaining = user.LoyaltyPoints - offer.PointsRequired
		discount = offer.DiscountAmount
		return repos.Users.SetLoyaltyPoints(ctx, user.ID, remaining)
	})
	if err != nil {
		return 0, 0, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventOfferRedeemed,
		SubjectID: offerID,
		Payload: events.OfferRedeemedPayload{
			UserID:          userID,
			OfferTitle:      offer.Title,
			PointsSpent:     offer.PointsRequired,
			DiscountAmount:  discount,
			RemainingPoints: remaining,
		},
	})
	return remaining, discount, nil
}

// applyRedemption deducts points inside an open settlement transaction and
// returns the equivalent bill discount. The caller holds the user row lock.
func applyRedemption(ctx context.Context, users repository.UserRepository, user *domain.User, points int) (float64, error) {
	if points > user.LoyaltyPoints {
		return 0, apperrors.NewInsufficientBalance(map[string]any{
			"required":  points,
			"available": user.LoyaltyPoints,
		})
	}
	user.LoyaltyPoints -= points
	if err := users.SetLoyaltyPoints(ctx, user.ID, user.LoyaltyPoints); err != nil {
		return 0, err
	}
	return float64(points) * PointValue, nil
}

func (s *LoyaltyService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Debug("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
