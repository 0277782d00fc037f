package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"giftregistry/internal/model"
)

func TestPledgeAuditor_FlushesBatchesAndDrainsOnClose(t *testing.T) {
	mockRepo := new(MockPledgeLogRepository)
	var flushed atomic.Int64
	mockRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		flushed.Add(int64(len(args.Get(1).([]model.PledgeLog))))
	})

	auditor := newPledgeAuditor(mockRepo, zerolog.Nop(), 10, 3, time.Hour)
	for i := 0; i < 4; i++ {
		auditor.Record(context.Background(), model.PledgeLog{WishID: uint(i + 1), Status: model.PledgeStatusAccepted})
	}
	auditor.Close()

	assert.Equal(t, int64(4), flushed.Load())
	mockRepo.AssertNumberOfCalls(t, "CreateBatch", 2)
}

func TestPledgeAuditor_FlushesOnTicker(t *testing.T) {
	mockRepo := new(MockPledgeLogRepository)
	var flushed atomic.Int64
	mockRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		flushed.Add(int64(len(args.Get(1).([]model.PledgeLog))))
	})

	auditor := newPledgeAuditor(mockRepo, zerolog.Nop(), 10, 100, 20*time.Millisecond)
	defer auditor.Close()

	auditor.Record(context.Background(), model.PledgeLog{WishID: 1, Status: model.PledgeStatusRejected, Reason: "over funded"})

	assert.Eventually(t, func() bool { return flushed.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestPledgeAuditor_WritesSynchronouslyAfterClose(t *testing.T) {
	mockRepo := new(MockPledgeLogRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.PledgeLog")).Return(nil).Once()

	auditor := newPledgeAuditor(mockRepo, zerolog.Nop(), 10, 10, time.Hour)
	auditor.Close()

	auditor.Record(context.Background(), model.PledgeLog{WishID: 1, Status: model.PledgeStatusAccepted})

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestPledgeAuditor_WritesSynchronouslyWhenBufferFull(t *testing.T) {
	mockRepo := new(MockPledgeLogRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.PledgeLog")).Return(nil)
	mockRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	auditor := &PledgeAuditor{
		repo:    mockRepo,
		log:     zerolog.Nop(),
		entries: make(chan model.PledgeLog),
		done:    make(chan struct{}),
	}

	auditor.Record(context.Background(), model.PledgeLog{WishID: 1})

	mockRepo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*model.PledgeLog"))
}
