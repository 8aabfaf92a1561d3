package services

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentGateway charges a vendor for a checkout
type PaymentGateway interface {
	Pay(ctx context.Context, orderID string, amount decimal.Decimal) (bool, error)
}

// MockPayment approves a fixed share of payments at random after a short delay
type MockPayment struct {
	successRate float64
	delay       time.Duration
	logger      *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockPayment creates a mock gateway. successRate is clamped to [0, 1].
func NewMockPayment(successRate float64, delay time.Duration, logger *zap.Logger) *MockPayment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockPayment{
		successRate: min(max(successRate, 0), 1),
		delay:       delay,
		logger:      logger,
		rng:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6261617a)),
	}
}

// Pay waits for the configured delay, then approves or declines the payment
func (p *MockPayment) Pay(ctx context.Context, orderID string, amount decimal.Decimal) (bool, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}

	p.mu.Lock()
	ok := p.rng.Float64() < p.successRate
	p.mu.Unlock()

	p.logger.Info("mock payment processed",
		zap.String("order_id", orderID),
		zap.String("amount", amount.StringFixed(2)),
		zap.Bool("approved", ok))
	return ok, nil
}
