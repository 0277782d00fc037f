package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

const (
	auditBuffer     = 100
	auditBatchSize  = 10
	auditFlushEvery = time.Second
)

// PledgeRecorder receives one entry per pledge attempt.
type PledgeRecorder interface {
	Record(ctx context.Context, entry model.PledgeLog)
}

// PledgeAuditor persists pledge attempts asynchronously in batches.
type PledgeAuditor struct {
	repo       repository.PledgeLogRepository
	log        zerolog.Logger
	entries    chan model.PledgeLog
	done       chan struct{}
	batchSize  int
	flushEvery time.Duration

	mu     sync.RWMutex
	closed bool
}

// Ensure PledgeAuditor implements PledgeRecorder
var _ PledgeRecorder = (*PledgeAuditor)(nil)

// NewPledgeAuditor starts the background writer. Call Close on shutdown to
// flush what is still buffered.
func NewPledgeAuditor(repo repository.PledgeLogRepository, log zerolog.Logger) *PledgeAuditor {
	return newPledgeAuditor(repo, log, auditBuffer, auditBatchSize, auditFlushEvery)
}

func newPledgeAuditor(repo repository.PledgeLogRepository, log zerolog.Logger, buffer, batchSize int, flushEvery time.Duration) *PledgeAuditor {
	a := &PledgeAuditor{
		repo:       repo,
		log:        log.With().Str("component", "pledge_auditor").Logger(),
		entries:    make(chan model.PledgeLog, buffer),
		done:       make(chan struct{}),
		batchSize:  batchSize,
		flushEvery: flushEvery,
	}
	go a.run()
	return a
}

// Record queues an entry without blocking. When the buffer is full or the
// auditor is closed the entry is written synchronously instead.
func (a *PledgeAuditor) Record(ctx context.Context, entry model.PledgeLog) {
	a.mu.RLock()
	if !a.closed {
		select {
		case a.entries <- entry:
			a.mu.RUnlock()
			return
		default:
		}
	}
	a.mu.RUnlock()

	if err := a.repo.Create(context.WithoutCancel(ctx), &entry); err != nil {
		a.log.Error().Err(err).Uint("wish_id", entry.WishID).Msg("write pledge log")
	}
}

// Close stops accepting queued entries and waits for the final flush.
func (a *PledgeAuditor) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.entries)
	}
	a.mu.Unlock()
	<-a.done
}

func (a *PledgeAuditor) run() {
	defer close(a.done)

	batch := make([]model.PledgeLog, 0, a.batchSize)
	ticker := time.NewTicker(a.flushEvery)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := a.repo.CreateBatch(context.Background(), batch); err != nil {
			a.log.Error().Err(err).Int("entries", len(batch)).Msg("flush pledge logs")
		}
		batch = make([]model.PledgeLog, 0, a.batchSize)
	}

	for {
		select {
		case entry, ok := <-a.entries:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= a.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
