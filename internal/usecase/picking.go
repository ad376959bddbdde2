package usecase

import (
	"sort"
	"sync"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
)

// PickingTracker records which lines of an order in preparation have been
// picked. State is kept in memory for the duration of the preparing phase
// and discarded once the order leaves it.
type PickingTracker struct {
	mu     sync.Mutex
	picked map[string]map[int]struct{}
	totals map[string]int
}

// NewPickingTracker constructs PickingTracker.
func NewPickingTracker() *PickingTracker {
	return &PickingTracker{
		picked: make(map[string]map[int]struct{}),
		totals: make(map[string]int),
	}
}

// Begin opens a picking session for an order with the given line count.
// Reopening resets any earlier marks.
func (t *PickingTracker) Begin(orderID string, totalLines int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.picked[orderID] = make(map[int]struct{})
	t.totals[orderID] = totalLines
}

// Toggle flips the picked mark of one line.
func (t *PickingTracker) Toggle(orderID string, lineIndex int) (model.PickingProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	total, ok := t.totals[orderID]
	if !ok {
		return model.PickingProgress{}, domainErrors.ErrNotFound
	}
	if lineIndex < 0 || lineIndex >= total {
		return model.PickingProgress{}, domainErrors.ErrInvalidLineIndex
	}

	marks := t.picked[orderID]
	if _, on := marks[lineIndex]; on {
		delete(marks, lineIndex)
	} else {
		marks[lineIndex] = struct{}{}
	}
	return t.progressLocked(orderID), nil
}

// MarkAll marks every line picked.
func (t *PickingTracker) MarkAll(orderID string) (model.PickingProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	total, ok := t.totals[orderID]
	if !ok {
		return model.PickingProgress{}, domainErrors.ErrNotFound
	}
	marks := make(map[int]struct{}, total)
	for i := 0; i < total; i++ {
		marks[i] = struct{}{}
	}
	t.picked[orderID] = marks
	return t.progressLocked(orderID), nil
}

// Clear unmarks every line, keeping the session open.
func (t *PickingTracker) Clear(orderID string) (model.PickingProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.totals[orderID]; !ok {
		return model.PickingProgress{}, domainErrors.ErrNotFound
	}
	t.picked[orderID] = make(map[int]struct{})
	return t.progressLocked(orderID), nil
}

// Discard drops the session entirely.
func (t *PickingTracker) Discard(orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.picked, orderID)
	delete(t.totals, orderID)
}

// IsComplete reports whether every line of the session is picked. An order
// with no open session is not complete, and neither is a session opened with
// zero lines.
func (t *PickingTracker) IsComplete(orderID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	total, ok := t.totals[orderID]
	if !ok || total == 0 {
		return false
	}
	return len(t.picked[orderID]) == total
}

// Progress returns the current picking state of an order.
func (t *PickingTracker) Progress(orderID string) (model.PickingProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.totals[orderID]; !ok {
		return model.PickingProgress{}, domainErrors.ErrNotFound
	}
	return t.progressLocked(orderID), nil
}

func (t *PickingTracker) progressLocked(orderID string) model.PickingProgress {
	marks := t.picked[orderID]
	indices := make([]int, 0, len(marks))
	for i := range marks {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return model.PickingProgress{
		OrderID: orderID,
		Picked:  indices,
		Total:   t.totals[orderID],
	}
}
