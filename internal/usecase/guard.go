package usecase

import (
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
)

// MutationKind classifies the outcome of a cart quantity operation.
type MutationKind string

const (
	// MutationUpdated means the quantity changed and the cart needs persisting.
	MutationUpdated MutationKind = "updated"
	// MutationRemoved means the line was deleted after a confirmed decrement.
	MutationRemoved MutationKind = "removed"
	// MutationWarned means the decrement crossed below the minimum and now
	// awaits confirmation; nothing was mutated.
	MutationWarned MutationKind = "warned"
	// MutationBlocked means the change exceeded available stock; nothing was
	// mutated.
	MutationBlocked MutationKind = "blocked"
)

// ClampBound reports which boundary corrected a typed-in quantity.
type ClampBound string

const (
	ClampNone ClampBound = ""
	ClampMin  ClampBound = "min"
	ClampMax  ClampBound = "max"
)

// CartMutation describes the outcome of a quantity operation for the caller.
// Line holds the state after the operation and is nil when the line was
// removed.
type CartMutation struct {
	Kind    MutationKind
	Warning string
	Clamped ClampBound
	Line    *model.CartLine
}

type pendingKey struct {
	userID    int64
	productID string
}

// QuantityGuard enforces minimum-order and stock-ceiling constraints and owns
// the two-step decrement-to-remove confirmation per cart line. Crossing below
// the minimum once arms a per-line flag that expires after the configured
// TTL; repeating the decrement while armed removes the line.
type QuantityGuard struct {
	ttl time.Duration

	mu      sync.Mutex
	pending map[pendingKey]*time.Timer
}

// NewQuantityGuard constructs a guard whose pending-removal flags expire
// after ttl of inactivity.
func NewQuantityGuard(ttl time.Duration) *QuantityGuard {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &QuantityGuard{ttl: ttl, pending: make(map[pendingKey]*time.Timer)}
}

// ApplyDelta adjusts the quantity of an existing line by delta. The boolean
// result reports whether the cart changed and needs persisting.
func (g *QuantityGuard) ApplyDelta(cart *model.Cart, productID string, delta float64) (CartMutation, bool, error) {
	item := cart.Find(productID)
	if item == nil {
		return CartMutation{}, false, domainErrors.ErrNotFound
	}

	minOrder := item.MinimumOrder()
	newQty := item.Quantity + delta
	key := pendingKey{userID: cart.UserID, productID: productID}

	if newQty < minOrder {
		if g.consume(key) {
			cart.Remove(productID)
			return CartMutation{Kind: MutationRemoved}, true, nil
		}
		g.arm(key)
		line := *item
		return CartMutation{
			Kind:    MutationWarned,
			Warning: fmt.Sprintf("Minimum quantity: %v %s. Repeat to remove the item.", minOrder, item.Unit),
			Line:    &line,
		}, false, nil
	}

	if newQty > item.Stock {
		line := *item
		return CartMutation{
			Kind:    MutationBlocked,
			Warning: "Insufficient stock",
			Line:    &line,
		}, false, nil
	}

	g.disarm(key)
	item.Quantity = newQty
	line := *item
	return CartMutation{Kind: MutationUpdated, Line: &line}, true, nil
}

// SetAbsolute applies a typed-in quantity, clamping it to the admissible
// range. Sub-minimum input is corrected in place rather than treated as a
// removal gesture, so this path never arms the pending-removal flag.
func (g *QuantityGuard) SetAbsolute(cart *model.Cart, productID string, newQty float64) (CartMutation, bool, error) {
	item := cart.Find(productID)
	if item == nil {
		return CartMutation{}, false, domainErrors.ErrNotFound
	}

	clamped := ClampNone
	warning := ""
	minOrder := item.MinimumOrder()

	if newQty < minOrder {
		newQty = minOrder
		clamped = ClampMin
		warning = fmt.Sprintf("Minimum quantity: %v %s", minOrder, item.Unit)
	}
	if newQty > item.Stock {
		newQty = item.Stock
		clamped = ClampMax
		warning = fmt.Sprintf("Insufficient stock. Maximum: %v", item.Stock)
	}

	g.disarm(pendingKey{userID: cart.UserID, productID: productID})

	if newQty == item.Quantity {
		line := *item
		return CartMutation{Kind: MutationUpdated, Clamped: clamped, Warning: warning, Line: &line}, false, nil
	}

	item.Quantity = newQty
	line := *item
	return CartMutation{Kind: MutationUpdated, Clamped: clamped, Warning: warning, Line: &line}, true, nil
}

// PendingRemoval reports whether the line currently awaits a removal
// confirmation.
func (g *QuantityGuard) PendingRemoval(userID int64, productID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[pendingKey{userID: userID, productID: productID}]
	return ok
}

// Disarm cancels the pending-removal flag for one line.
func (g *QuantityGuard) Disarm(userID int64, productID string) {
	g.disarm(pendingKey{userID: userID, productID: productID})
}

// Forget drops every pending flag belonging to the identity.
func (g *QuantityGuard) Forget(userID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for key, timer := range g.pending {
		if key.userID == userID {
			timer.Stop()
			delete(g.pending, key)
		}
	}
}

func (g *QuantityGuard) arm(key pendingKey) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if timer, ok := g.pending[key]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(g.ttl, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		// A later arm may have replaced the timer; only the owner clears.
		if g.pending[key] == timer {
			delete(g.pending, key)
		}
	})
	g.pending[key] = timer
}

// consume clears the flag and reports whether it was armed.
func (g *QuantityGuard) consume(key pendingKey) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	timer, ok := g.pending[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(g.pending, key)
	return true
}

func (g *QuantityGuard) disarm(key pendingKey) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if timer, ok := g.pending[key]; ok {
		timer.Stop()
		delete(g.pending, key)
	}
}
