package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/events"
	"github.com/spec-kit/quickplate-service/internal/repository"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

// OrderService settles and tracks orders. Settlement (balance check, point
// redemption, order insert, point earning) runs as one transaction.
type OrderService struct {
	repos      repository.Repositories
	txm        repository.TxManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles requirements for the order service.
type OrderDependencies struct {
	Repos      repository.Repositories
	TxManager  repository.TxManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// OrderCreateInput describes an order placement request. Total is the
// client-declared amount; items are recorded verbatim.
type OrderCreateInput struct {
	UserID        string
	Items         []domain.OrderItem
	Total         float64
	PointsUsed    int
	PickupTime    string
	PaymentMethod string
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		repos:      deps.Repos,
		txm:        deps.TxManager,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create settles a new order. On any failure no partial state is committed:
// the balance decrement, the order insert and the earning credit are visible
// together or not at all.
func (s *OrderService) Create(ctx context.Context, input OrderCreateInput) (*domain.Order, int, error) {
	if input.UserID == "" {
		return nil, 0, apperrors.NewValidationError("userId is required", nil)
	}
	if len(input.Items) == 0 {
		return nil, 0, apperrors.NewValidationError("order needs at least one item", nil)
	}
	if input.Total <= 0 {
		return nil, 0, apperrors.NewValidationError("total must be positive", nil)
	}
	if input.PointsUsed < 0 {
		return nil, 0, apperrors.NewValidationError("pointsUsed cannot be negative", nil)
	}

	order := &domain.Order{
		ExternalKey:   generateOrderKey(),
		UserID:        input.UserID,
		Items:         input.Items,
		Total:         input.Total,
		Status:        domain.OrderStatusPlaced,
		PickupTime:    strings.TrimSpace(input.PickupTime),
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
	}

	var pointsEarned int
	err := s.txm.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		user, err := repos.Users.GetForUpdate(ctx, input.UserID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewNotFound("user", map[string]any{"user_id": input.UserID})
			}
			return err
		}

		var discount float64
		if input.PointsUsed > 0 {
			discount, err = applyRedemption(ctx, repos.Users, user, input.PointsUsed)
			if err != nil {
				return err
			}
		}

		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}

		pointsEarned = ComputeEarnings(input.Total - discount)
		if pointsEarned > 0 {
			user.LoyaltyPoints += pointsEarned
			if err := repos.Users.SetLoyaltyPoints(ctx, user.ID, user.LoyaltyPoints); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventOrderPlaced,
		SubjectID: order.ID,
		Payload: events.OrderPlacedPayload{
			UserID:       order.UserID,
			ExternalKey:  order.ExternalKey,
			Total:        order.Total,
			PointsUsed:   input.PointsUsed,
			PointsEarned: pointsEarned,
		},
	})
	return order, pointsEarned, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repos.Orders.ListByUser(ctx, userID, 0)
}

// UpdateStatus overwrites the order status with one of the four defined
// labels. Anything else is rejected and the prior status stands.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}

	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("order", map[string]any{"order_id": orderID})
		}
		return nil, err
	}

	oldStatus := order.Status
	if err := s.repos.Orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	s.publish(ctx, events.Event{
		Type:      events.EventOrderStatusChanged,
		SubjectID: order.ID,
		Payload: events.OrderStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return order, nil
}

func generateOrderKey() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
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
