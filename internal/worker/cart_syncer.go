package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dahorta/freshmarket/internal/domain/model"
	"github.com/dahorta/freshmarket/internal/domain/repository"
)

type syncJob struct {
	userID   int64
	lines    []model.CartLine
	revision uint64
}

// CartSyncer persists cart snapshots in the background. Enqueue never blocks
// the caller: the in-memory cart is already authoritative and a failed write
// only costs durability until the next mutation.
//
// Snapshots per identity carry a monotonically increasing revision; workers
// skip any snapshot that a newer enqueue has already superseded, so the
// remote store converges on the latest state regardless of worker
// interleaving.
type CartSyncer struct {
	carts   repository.CartRepository
	workers int
	logger  *slog.Logger

	jobs chan syncJob
	wg   sync.WaitGroup

	mu      sync.Mutex
	baseCtx context.Context
	started bool
	closed  bool

	revMu     sync.Mutex
	revisions map[int64]uint64
	latest    map[int64]uint64
	applied   map[int64]uint64
	userLocks map[int64]*sync.Mutex
}

// NewCartSyncer constructs the background sync worker pool.
func NewCartSyncer(carts repository.CartRepository, workers, queueSize int, logger *slog.Logger) *CartSyncer {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &CartSyncer{
		carts:     carts,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan syncJob, queueSize),
		revisions: make(map[int64]uint64),
		latest:    make(map[int64]uint64),
		applied:   make(map[int64]uint64),
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// Start launches the worker pool. Writes outlive the start context so queued
// snapshots still persist during shutdown.
func (s *CartSyncer) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.baseCtx = context.WithoutCancel(ctx)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// Stop drains queued work and waits for all workers to finish.
func (s *CartSyncer) Stop() {
	s.mu.Lock()
	if !s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	s.wg.Wait()
}

// Enqueue schedules a snapshot write. When the queue is full the snapshot is
// dropped; a later mutation re-enqueues the then-current state.
func (s *CartSyncer) Enqueue(userID int64, lines []model.CartLine) {
	s.revMu.Lock()
	s.revisions[userID]++
	revision := s.revisions[userID]
	s.latest[userID] = revision
	s.revMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.jobs <- syncJob{userID: userID, lines: lines, revision: revision}:
	default:
		s.logger.Warn("cart sync queue full, dropping snapshot", slog.Int64("user", userID))
	}
}

func (s *CartSyncer) worker() {
	defer s.wg.Done()
	for job := range s.jobs {
		s.handle(job)
	}
}

// handle writes one snapshot. The per-identity lock keeps the supersession
// check and the write atomic with respect to other workers, so a snapshot
// that lost the race to a newer revision can never land after it.
func (s *CartSyncer) handle(job syncJob) {
	lock := s.userLock(job.userID)
	lock.Lock()
	defer lock.Unlock()

	s.revMu.Lock()
	superseded := s.latest[job.userID] > job.revision || s.applied[job.userID] >= job.revision
	s.revMu.Unlock()
	if superseded {
		return
	}

	if err := s.carts.Replace(s.baseCtx, job.userID, job.lines); err != nil {
		s.logger.Warn("cart sync failed",
			slog.Int64("user", job.userID),
			slog.String("error", err.Error()))
		return
	}

	s.revMu.Lock()
	if s.applied[job.userID] < job.revision {
		s.applied[job.userID] = job.revision
	}
	s.revMu.Unlock()
}

func (s *CartSyncer) userLock(userID int64) *sync.Mutex {
	s.revMu.Lock()
	defer s.revMu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}
