package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Sender delivers a single notification and reports success.
type Sender interface {
	Send(ctx context.Context, n model.Notification) bool
}

// NotificationDispatcher delivers queued notifications with a fixed pool of
// workers. Requests never wait for delivery.
type NotificationDispatcher struct {
	sender  Sender
	workers int
	timeout time.Duration
	logger  *slog.Logger

	jobs    chan model.Notification
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
	closed  bool
}

// NewNotificationDispatcher constructs the worker pool.
func NewNotificationDispatcher(sender Sender, workers, queueSize int, timeout time.Duration, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &NotificationDispatcher{
		sender:  sender,
		workers: workers,
		timeout: timeout,
		logger:  logger,
		jobs:    make(chan model.Notification, queueSize),
	}
}

// Start launches the workers. ctx only scopes values; workers run until Stop.
// A stopped dispatcher cannot be restarted.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running || d.closed {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.running = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Enqueue queues n without blocking. It reports false when the queue is
// full or the dispatcher is not running.
func (d *NotificationDispatcher) Enqueue(n model.Notification) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		d.logger.Warn("notification dropped, dispatcher stopped", slog.String("to", n.To))
		return false
	}
	select {
	case d.jobs <- n:
		return true
	default:
		d.logger.Warn("notification dropped, queue full", slog.String("to", n.To))
		return false
	}
}

// Stop delivers what is already queued and waits for all workers to finish.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	d.cancel()
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for n := range d.jobs {
		d.deliver(ctx, n)
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n model.Notification) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if !d.sender.Send(ctx, n) {
		d.logger.Warn("notification not delivered", slog.String("to", n.To), slog.String("subject", n.Subject))
	}
}
