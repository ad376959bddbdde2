package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
)

func TestPickingTrackerUnknownOrder(t *testing.T) {
	tracker := NewPickingTracker()
	if _, err := tracker.Toggle("missing", 0); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if tracker.IsComplete("missing") {
		t.Fatalf("order without a session must not be complete")
	}
}

func TestPickingTrackerToggle(t *testing.T) {
	tracker := NewPickingTracker()
	tracker.Begin("o1", 3)

	progress, err := tracker.Toggle("o1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(progress.Picked) != 1 || progress.Picked[0] != 1 || progress.Total != 3 {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	progress, err = tracker.Toggle("o1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(progress.Picked) != 0 {
		t.Fatalf("second toggle must unmark the line: %+v", progress)
	}
}

func TestPickingTrackerToggleRejectsOutOfRangeIndex(t *testing.T) {
	tracker := NewPickingTracker()
	tracker.Begin("o1", 2)

	if _, err := tracker.Toggle("o1", 2); !errors.Is(err, domainErrors.ErrInvalidLineIndex) {
		t.Fatalf("expected ErrInvalidLineIndex, got %v", err)
	}
	if _, err := tracker.Toggle("o1", -1); !errors.Is(err, domainErrors.ErrInvalidLineIndex) {
		t.Fatalf("expected ErrInvalidLineIndex, got %v", err)
	}
}

func TestPickingTrackerMarkAllAndClear(t *testing.T) {
	tracker := NewPickingTracker()
	tracker.Begin("o1", 3)

	progress, err := tracker.MarkAll("o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(progress.Picked) != 3 || !tracker.IsComplete("o1") {
		t.Fatalf("expected every line picked: %+v", progress)
	}

	progress, err = tracker.Clear("o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(progress.Picked) != 0 || tracker.IsComplete("o1") {
		t.Fatalf("expected cleared session: %+v", progress)
	}
}

func TestPickingTrackerBeginResetsEarlierMarks(t *testing.T) {
	tracker := NewPickingTracker()
	tracker.Begin("o1", 2)
	if _, err := tracker.MarkAll("o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tracker.Begin("o1", 2)
	if tracker.IsComplete("o1") {
		t.Fatalf("reopening must reset marks")
	}
}

func TestPickingTrackerDiscard(t *testing.T) {
	tracker := NewPickingTracker()
	tracker.Begin("o1", 1)
	tracker.Discard("o1")

	if _, err := tracker.Progress("o1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}
}

func TestPickingTrackerZeroLineOrderNeverCompletes(t *testing.T) {
	tracker := NewPickingTracker()
	tracker.Begin("o1", 0)
	if tracker.IsComplete("o1") {
		t.Fatalf("a session with no lines must not count as complete")
	}
}
