package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

type sheetLock struct {
	mu   sync.Mutex
	refs int
}

// sheetLocks hands out one mutex per order sheet and forgets it once no
// writer holds or waits for it.
type sheetLocks struct {
	mu    sync.Mutex
	locks map[int64]*sheetLock
}

func newSheetLocks() *sheetLocks {
	return &sheetLocks{locks: make(map[int64]*sheetLock)}
}

func (l *sheetLocks) lock(sheet int64) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[sheet]
	if !ok {
		entry = &sheetLock{}
		l.locks[sheet] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sheet)
		}
		l.mu.Unlock()
	}
}

func (l *sheetLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Transitions is the single writer of order status.
type Transitions struct {
	orders repository.OrderRepository
	locks  *sheetLocks
	logger *slog.Logger
}

// NewTransitions constructs Transitions.
func NewTransitions(orders repository.OrderRepository, logger *slog.Logger) *Transitions {
	return &Transitions{orders: orders, locks: newSheetLocks(), logger: logger}
}

// Apply moves the order to status to. Writing the current status again is a
// no-op success reported through the advisory. guard, when set, runs against
// the current order under the lock before anything is written.
func (t *Transitions) Apply(ctx context.Context, sheet int64, to model.OrderStatus, guard func(*model.Order) error) (model.MutationResult, error) {
	if !to.Valid() {
		return model.MutationResult{}, fmt.Errorf("%w: status %q", domainErrors.ErrInvalidField, to)
	}

	unlock := t.locks.lock(sheet)
	defer unlock()

	order, err := t.orders.Find(ctx, sheet)
	if err != nil {
		return model.MutationResult{}, err
	}
	if guard != nil {
		if err := guard(order); err != nil {
			return model.MutationResult{}, err
		}
	}

	if order.Status == to {
		return model.MutationResult{
			Advisory: fmt.Sprintf("order %d is already %s", sheet, strings.ToLower(string(to))),
		}, nil
	}
	if !model.CanTransition(order.Status, to) {
		return model.MutationResult{}, fmt.Errorf("%w: order %d is %s, cannot become %s",
			domainErrors.ErrInvalidTransition, sheet, order.Status, to)
	}

	var result model.MutationResult
	if to == model.OrderStatusCancelled {
		result, err = t.orders.Cancel(ctx, sheet)
	} else {
		result, err = t.orders.UpdateStatus(ctx, sheet, to)
	}
	if err != nil {
		return model.MutationResult{}, err
	}

	t.logger.Info("order status changed",
		slog.Int64("sheet", sheet),
		slog.String("from", string(order.Status)),
		slog.String("to", string(to)),
	)
	return result, nil
}
