package services

import (
	"errors"
	"sync"

	"fulfillment/internal/pkg/errs"
)

var ErrRetryBudgetExhausted = errors.New("retry budget exhausted")

// RetryBudget is a token bucket that recovers faster than it drains: Spend takes one
// token, Success gives back up to two. Once empty it stays empty unless a caller
// explicitly reports success; the budget never refills on its own.
type RetryBudget struct {
	mu        sync.Mutex
	tokens    int
	maxTokens int
}

func NewRetryBudget(maxTokens int) (*RetryBudget, error) {
	if maxTokens <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("maxTokens", maxTokens, 1, "unbounded")
	}
	return &RetryBudget{
		tokens:    maxTokens,
		maxTokens: maxTokens,
	}, nil
}

// Spend consumes one token.
func (b *RetryBudget) Spend() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tokens == 0 {
		return ErrRetryBudgetExhausted
	}
	b.tokens--
	return nil
}

// Success refunds two tokens, or one when a single token is missing.
func (b *RetryBudget) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += min(2, b.maxTokens-b.tokens)
}

func (b *RetryBudget) HasTokens() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.tokens > 0
}

func (b *RetryBudget) Tokens() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.tokens
}

func (b *RetryBudget) MaxTokens() int {
	return b.maxTokens
}
