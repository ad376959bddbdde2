package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
)

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers account unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches account by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CartRepositoryStub keeps cart snapshots in-memory and records writes.
type CartRepositoryStub struct {
	GetFn     func(context.Context, int64) ([]model.CartLine, error)
	ReplaceFn func(context.Context, int64, []model.CartLine) error
	ClearFn   func(context.Context, int64) error

	mu        sync.Mutex
	Snapshots map[int64][]model.CartLine
	Replaced  int
	Cleared   int
}

// NewCartRepositoryStub constructs stub repository with initialized map.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Snapshots: make(map[int64][]model.CartLine)}
}

// Get returns stored snapshot or delegates to override.
func (s *CartRepositoryStub) Get(ctx context.Context, userID int64) ([]model.CartLine, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Snapshots[userID], nil
}

// Replace stores the new snapshot wholesale.
func (s *CartRepositoryStub) Replace(ctx context.Context, userID int64, lines []model.CartLine) error {
	if s.ReplaceFn != nil {
		return s.ReplaceFn(ctx, userID, lines)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Snapshots[userID] = lines
	s.Replaced++
	return nil
}

// Clear drops the snapshot.
func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Snapshots, userID)
	s.Cleared++
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	ListByUserFn   func(context.Context, int64, *model.OrderStatus) ([]model.Order, error)
	ListAllFn      func(context.Context, *model.OrderStatus) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus, *time.Time) (*model.Order, error)

	Created     []model.Order
	Orders      []model.Order
	UpdateCalls []OrderStatusCall
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID      string
	Status       model.OrderStatus
	DeliveryDate *time.Time
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.Created = append(s.Created, *order)
	return nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice filtered by owner.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID, status)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID != userID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// ListAll returns every configured order, optionally filtered by status.
func (s *OrderRepositoryStub) ListAll(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx, status)
	}
	if status == nil {
		return s.Orders, nil
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.Status == *status {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus records update invocations and mutates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, deliveryDate *time.Time) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status, deliveryDate)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderStatusCall{OrderID: orderID, Status: status, DeliveryDate: deliveryDate})
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Status = status
			if deliveryDate != nil {
				s.Orders[i].DeliveryDate = deliveryDate
			}
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}
