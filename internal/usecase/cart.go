package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
	"github.com/dahorta/freshmarket/internal/domain/repository"
)

// Syncer schedules asynchronous persistence of a full cart snapshot. The
// in-memory cart stays authoritative for the session; sync failures are
// logged by the syncer and never surfaced here.
type Syncer interface {
	Enqueue(userID int64, lines []model.CartLine)
}

// SnapshotCache keeps the last-known cart per identity for fallback recovery
// when the remote store is unreachable.
type SnapshotCache interface {
	Load(userID int64) ([]model.CartLine, bool)
	Store(userID int64, lines []model.CartLine)
	Drop(userID int64)
}

// ProductSource reads current catalog data for a product.
type ProductSource interface {
	Product(ctx context.Context, id string) (*model.Product, error)
}

// LineView decorates a cart line with derived pricing and confirmation state
// for the presentation layer.
type LineView struct {
	model.CartLine
	EffectivePrice float64
	LineTotal      float64
	PendingRemoval bool
}

// CartView is the full presentation snapshot of a cart.
type CartView struct {
	Lines      []LineView
	TotalItems float64
	Subtotal   float64
	Savings    float64
}

// CartUseCase owns the in-memory carts per identity and orchestrates the
// quantity guard, pricing and persistence. Mutations update memory
// synchronously; remote persistence runs in the background.
type CartUseCase struct {
	carts   repository.CartRepository
	cache   SnapshotCache
	catalog ProductSource
	guard   *QuantityGuard
	syncer  Syncer
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*model.Cart
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, cache SnapshotCache, catalog ProductSource, guard *QuantityGuard, syncer Syncer, logger *slog.Logger) *CartUseCase {
	return &CartUseCase{
		carts:    carts,
		cache:    cache,
		catalog:  catalog,
		guard:    guard,
		syncer:   syncer,
		logger:   logger,
		sessions: make(map[int64]*model.Cart),
	}
}

// Load fetches the cart from the remote store, falling back to the local
// snapshot and finally to an empty cart. It never fails: a transient network
// failure must not lose an in-progress cart.
func (u *CartUseCase) Load(ctx context.Context, userID int64) CartView {
	lines, err := u.carts.Get(ctx, userID)
	if err != nil {
		u.logger.Warn("cart load from remote failed, using local snapshot",
			slog.Int64("user", userID), slog.String("error", err.Error()))
		if cached, ok := u.cache.Load(userID); ok {
			lines = cached
		} else {
			lines = nil
		}
	} else {
		u.cache.Store(userID, lines)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	cart := &model.Cart{UserID: userID, Lines: lines}
	u.sessions[userID] = cart
	return u.view(cart)
}

// View returns the current presentation snapshot without touching the remote
// store.
func (u *CartUseCase) View(ctx context.Context, userID int64) CartView {
	u.mu.Lock()
	cart, ok := u.sessions[userID]
	u.mu.Unlock()
	if !ok {
		return u.Load(ctx, userID)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.view(cart)
}

// AddProduct inserts a new line with one minimum-order unit, or increments
// an existing line by the same step. The catalog snapshot taken here is what
// the line carries until checkout.
func (u *CartUseCase) AddProduct(ctx context.Context, userID int64, productID string) (CartMutation, error) {
	product, err := u.catalog.Product(ctx, productID)
	if err != nil {
		return CartMutation{}, fmt.Errorf("fetch product: %w", err)
	}

	cart, err := u.session(ctx, userID)
	if err != nil {
		return CartMutation{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if existing := cart.Find(productID); existing != nil {
		// Refresh stock/pricing before applying the step so the ceiling
		// reflects current inventory.
		existing.Stock = product.Stock
		existing.BasePrice = product.Price
		existing.PromoPrice = product.PromoPrice
		existing.IsPromo = product.IsPromo
		mutation, mutated, err := u.guard.ApplyDelta(cart, productID, existing.MinimumOrder())
		if err != nil {
			return CartMutation{}, err
		}
		if mutated {
			u.persistLocked(cart)
		}
		return mutation, nil
	}

	line := product.CartLine(0)
	line.Quantity = line.MinimumOrder()
	if line.Quantity > product.Stock {
		return CartMutation{Kind: MutationBlocked, Warning: "Insufficient stock"}, nil
	}
	cart.Lines = append(cart.Lines, line)
	u.persistLocked(cart)
	added := line
	return CartMutation{Kind: MutationUpdated, Line: &added}, nil
}

// ApplyDelta adjusts a line quantity by delta through the quantity guard.
func (u *CartUseCase) ApplyDelta(ctx context.Context, userID int64, productID string, delta float64) (CartMutation, error) {
	cart, err := u.session(ctx, userID)
	if err != nil {
		return CartMutation{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	mutation, mutated, err := u.guard.ApplyDelta(cart, productID, delta)
	if err != nil {
		return CartMutation{}, err
	}
	if mutated {
		u.persistLocked(cart)
	}
	return mutation, nil
}

// SetQuantity applies a typed-in quantity, clamped to the admissible range.
func (u *CartUseCase) SetQuantity(ctx context.Context, userID int64, productID string, quantity float64) (CartMutation, error) {
	cart, err := u.session(ctx, userID)
	if err != nil {
		return CartMutation{}, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	mutation, mutated, err := u.guard.SetAbsolute(cart, productID, quantity)
	if err != nil {
		return CartMutation{}, err
	}
	if mutated {
		u.persistLocked(cart)
	}
	return mutation, nil
}

// Remove deletes a line outright, bypassing the two-step confirmation.
func (u *CartUseCase) Remove(ctx context.Context, userID int64, productID string) error {
	cart, err := u.session(ctx, userID)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if !cart.Remove(productID) {
		return domainErrors.ErrNotFound
	}
	u.guard.Disarm(userID, productID)
	u.persistLocked(cart)
	return nil
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) {
	cart, err := u.session(ctx, userID)
	if err != nil {
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	cart.Lines = nil
	u.guard.Forget(userID)
	u.persistLocked(cart)
}

// Snapshot returns a copy of the current lines for checkout.
func (u *CartUseCase) Snapshot(ctx context.Context, userID int64) ([]model.CartLine, error) {
	cart, err := u.session(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return cart.Snapshot(), nil
}

// FinishCheckout discards the cart after a successful order submission. The
// remote delete is best effort: the order already owns its line snapshot.
func (u *CartUseCase) FinishCheckout(ctx context.Context, userID int64) {
	u.mu.Lock()
	if cart, ok := u.sessions[userID]; ok {
		cart.Lines = nil
	}
	u.mu.Unlock()

	u.guard.Forget(userID)
	u.cache.Drop(userID)
	if err := u.carts.Clear(ctx, userID); err != nil {
		u.logger.Warn("clearing remote cart after checkout failed",
			slog.Int64("user", userID), slog.String("error", err.Error()))
	}
}

// session returns the loaded cart for the identity, loading it on first
// access.
func (u *CartUseCase) session(ctx context.Context, userID int64) (*model.Cart, error) {
	u.mu.Lock()
	cart, ok := u.sessions[userID]
	u.mu.Unlock()
	if ok {
		return cart, nil
	}
	u.Load(ctx, userID)

	u.mu.Lock()
	defer u.mu.Unlock()
	cart, ok = u.sessions[userID]
	if !ok {
		return nil, fmt.Errorf("cart session missing for user %d", userID)
	}
	return cart, nil
}

// persistLocked refreshes the local snapshot and schedules the remote write.
// Callers hold u.mu.
func (u *CartUseCase) persistLocked(cart *model.Cart) {
	snapshot := cart.Snapshot()
	u.cache.Store(cart.UserID, snapshot)
	u.syncer.Enqueue(cart.UserID, snapshot)
}

func (u *CartUseCase) view(cart *model.Cart) CartView {
	view := CartView{
		TotalItems: cart.TotalItems(),
		Subtotal:   CartSubtotal(cart.Lines),
		Savings:    CartSavings(cart.Lines),
	}
	for _, line := range cart.Lines {
		view.Lines = append(view.Lines, LineView{
			CartLine:       line,
			EffectivePrice: EffectivePrice(line),
			LineTotal:      LineTotal(line),
			PendingRemoval: u.guard.PendingRemoval(cart.UserID, line.ProductID),
		})
	}
	return view
}
