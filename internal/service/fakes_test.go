package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/events"
	"github.com/spec-kit/quickplate-service/internal/repository"
)

// fakeStore is a shared in-memory backing for the fake repositories.
type fakeStore struct {
	users  map[string]domain.User
	meals  map[string]domain.Meal
	offers map[string]domain.Offer
	orders []domain.Order
	nextID int
	clock  time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]domain.User{},
		meals:  map[string]domain.Meal{},
		offers: map[string]domain.Offer{},
		clock:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *fakeStore) repos() repository.Repositories {
	return repository.Repositories{
		Users:  &fakeUserRepo{store: s},
		Meals:  &fakeMealRepo{store: s},
		Orders: &fakeOrderRepo{store: s},
		Offers: &fakeOfferRepo{store: s},
	}
}

func (s *fakeStore) clone() *fakeStore {
	dup := newFakeStore()
	dup.nextID = s.nextID
	dup.clock = s.clock
	for k, v := range s.users {
		dup.users[k] = v
	}
	for k, v := range s.meals {
		dup.meals[k] = v
	}
	for k, v := range s.offers {
		dup.offers[k] = v
	}
	dup.orders = append(dup.orders, s.orders...)
	return dup
}

func (s *fakeStore) replaceWith(other *fakeStore) {
	s.users = other.users
	s.meals = other.meals
	s.offers = other.offers
	s.orders = other.orders
	s.nextID = other.nextID
	s.clock = other.clock
}

func (s *fakeStore) addUser(sapID string, points int) domain.User {
	user := domain.User{
		ID:            s.id("user"),
		SapID:         sapID,
		Name:          "Test User",
		LoyaltyPoints: points,
		CreatedAt:     s.tick(),
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeStore) addOffer(pointsRequired int, discount float64, active bool) domain.Offer {
	offer := domain.Offer{
		ID:             s.id("offer"),
		Title:          fmt.Sprintf("Offer %d", pointsRequired),
		PointsRequired: pointsRequired,
		DiscountAmount: discount,
		Active:         active,
	}
	s.offers[offer.ID] = offer
	return offer
}

// --- user repo ---

type fakeUserRepo struct {
	store *fakeStore
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range f.store.users {
		if existing.SapID == user.SapID {
			return fmt.Errorf("duplicate sap_id %q", user.SapID)
		}
	}
	user.ID = f.store.id("user")
	user.CreatedAt = f.store.tick()
	user.UpdatedAt = user.CreatedAt
	f.store.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.store.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.store.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.store.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) GetBySapID(_ context.Context, sapID string) (*domain.User, error) {
	for _, user := range f.store.users {
		if user.SapID == sapID {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) SetLoyaltyPoints(_ context.Context, id string, points int) error {
	user, ok := f.store.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.LoyaltyPoints = points
	f.store.users[id] = user
	return nil
}

// --- meal repo ---

type fakeMealRepo struct {
	store *fakeStore
}

func (f *fakeMealRepo) Create(_ context.Context, meal *domain.Meal) error {
	meal.ID = f.store.id("meal")
	f.store.meals[meal.ID] = *meal
	return nil
}

func (f *fakeMealRepo) GetByID(_ context.Context, id string) (*domain.Meal, error) {
	meal, ok := f.store.meals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &meal, nil
}

func (f *fakeMealRepo) GetByName(_ context.Context, name string) (*domain.Meal, error) {
	for _, meal := range f.store.meals {
		if meal.Name == name {
			m := meal
			return &m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMealRepo) List(_ context.Context, filter repository.MealFilter) ([]domain.Meal, error) {
	var result []domain.Meal
	for _, meal := range f.store.meals {
		if filter.AvailableOnly && !meal.Available {
			continue
		}
		if filter.Category != nil && meal.Category != *filter.Category {
			continue
		}
		result = append(result, meal)
	}
	return result, nil
}

func (f *fakeMealRepo) SetAvailability(_ context.Context, id string, available bool) error {
	meal, ok := f.store.meals[id]
	if !ok {
		return pgx.ErrNoRows
	}
	meal.Available = available
	f.store.meals[id] = meal
	return nil
}

// --- order repo ---

type fakeOrderRepo struct {
	store *fakeStore
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	order.ID = f.store.id("order")
	order.CreatedAt = f.store.tick()
	f.store.orders = append(f.store.orders, *order)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	for _, order := range f.store.orders {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.Order, error) {
	var result []domain.Order
	for i := len(f.store.orders) - 1; i >= 0; i-- {
		if f.store.orders[i].UserID != userID {
			continue
		}
		result = append(result, f.store.orders[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	for i := range f.store.orders {
		if f.store.orders[i].ID == id {
			f.store.orders[i].Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

// --- offer repo ---

type fakeOfferRepo struct {
	store *fakeStore
}

func (f *fakeOfferRepo) Create(_ context.Context, offer *domain.Offer) error {
	offer.ID = f.store.id("offer")
	f.store.offers[offer.ID] = *offer
	return nil
}

func (f *fakeOfferRepo) GetByID(_ context.Context, id string) (*domain.Offer, error) {
	offer, ok := f.store.offers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &offer, nil
}

func (f *fakeOfferRepo) GetByTitle(_ context.Context, title string) (*domain.Offer, error) {
	for _, offer := range f.store.offers {
		if offer.Title == title {
			o := offer
			return &o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeOfferRepo) ListActive(_ context.Context) ([]domain.Offer, error) {
	var result []domain.Offer
	for _, offer := range f.store.offers {
		if offer.Active {
			result = append(result, offer)
		}
	}
	return result, nil
}

func (f *fakeOfferRepo) SetActive(_ context.Context, id string, active bool) error {
	offer, ok := f.store.offers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	offer.Active = active
	f.store.offers[id] = offer
	return nil
}

// --- tx manager ---

// fakeTxManager stages mutations on a copy of the store and only commits
// them when the callback succeeds, mirroring transaction rollback.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	staged := m.store.clone()
	if err := fn(ctx, staged.repos()); err != nil {
		return err
	}
	m.store.replaceWith(staged)
	return nil
}

// --- cache ---

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

// --- dispatcher ---

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) lastOfType(eventType events.EventType) (events.Event, bool) {
	for i := len(d.published) - 1; i >= 0; i-- {
		if d.published[i].Type == eventType {
			return d.published[i], true
		}
	}
	return events.Event{}, false
}
