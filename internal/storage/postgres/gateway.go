package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// routineConn is a pooled connection borrowed for exactly one routine call.
type routineConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	OnNotice(fn func(*pgconn.Notice)) (unregister func())
	Release()
}

type pgxPool interface {
	Acquire(ctx context.Context) (routineConn, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// noticeRouter fans server notices out to the listener registered for the
// connection that received them.
type noticeRouter struct {
	mu        sync.Mutex
	listeners map[*pgconn.PgConn]func(*pgconn.Notice)
}

func newNoticeRouter() *noticeRouter {
	return &noticeRouter{listeners: make(map[*pgconn.PgConn]func(*pgconn.Notice))}
}

func (r *noticeRouter) handle(conn *pgconn.PgConn, notice *pgconn.Notice) {
	r.mu.Lock()
	fn := r.listeners[conn]
	r.mu.Unlock()
	if fn != nil {
		fn(notice)
	}
}

func (r *noticeRouter) listen(conn *pgconn.PgConn, fn func(*pgconn.Notice)) func() {
	r.mu.Lock()
	r.listeners[conn] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, conn)
		r.mu.Unlock()
	}
}

type noticePool struct {
	*pgxpool.Pool
	notices *noticeRouter
}

func (p *noticePool) Acquire(ctx context.Context) (routineConn, error) {
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConn{conn: conn, notices: p.notices}, nil
}

type pooledConn struct {
	conn    *pgxpool.Conn
	notices *noticeRouter
}

func (c *pooledConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func (c *pooledConn) OnNotice(fn func(*pgconn.Notice)) func() {
	return c.notices.listen(c.conn.Conn().PgConn(), fn)
}

func (c *pooledConn) Release() {
	c.conn.Release()
}

// Gateway invokes named stored procedures and set-returning functions.
type Gateway struct {
	pool    pgxPool
	timeout time.Duration
	logger  *slog.Logger
}

func newGateway(pool pgxPool, timeout time.Duration, logger *slog.Logger) *Gateway {
	return &Gateway{pool: pool, timeout: timeout, logger: logger}
}

// InvokeMutation runs CALL name($1..$n). The first notice raised by the
// procedure is returned as the advisory message.
func (g *Gateway) InvokeMutation(ctx context.Context, name string, params ...any) (model.MutationResult, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return model.MutationResult{}, dataAccessError(name, err)
	}
	defer conn.Release()

	var (
		mu       sync.Mutex
		advisory string
		captured bool
	)
	unregister := conn.OnNotice(func(n *pgconn.Notice) {
		mu.Lock()
		defer mu.Unlock()
		if !captured {
			advisory = n.Message
			captured = true
		}
	})
	defer unregister()

	rows, err := g.collect(ctx, conn, routineSQL("CALL", name, len(params)), params)
	if err != nil {
		return model.MutationResult{}, dataAccessError(name, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if captured {
		g.logger.Debug("routine notice", slog.String("routine", name), slog.String("message", advisory))
	}
	return model.MutationResult{Rows: rows, Advisory: advisory}, nil
}

// InvokeQuery runs SELECT * FROM name($1..$n).
func (g *Gateway) InvokeQuery(ctx context.Context, name string, params ...any) ([]model.Row, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return nil, dataAccessError(name, err)
	}
	defer conn.Release()

	rows, err := g.collect(ctx, conn, routineSQL("SELECT * FROM", name, len(params)), params)
	if err != nil {
		return nil, dataAccessError(name, err)
	}
	return rows, nil
}

func (g *Gateway) collect(ctx context.Context, conn routineConn, sql string, params []any) ([]model.Row, error) {
	rows, err := conn.Query(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	result := make([]model.Row, 0, len(maps))
	for _, m := range maps {
		result = append(result, model.Row(m))
	}
	return result, nil
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func routineSQL(verb, name string, n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	ident := pgx.Identifier(strings.Split(name, ".")).Sanitize()
	return fmt.Sprintf("%s %s(%s)", verb, ident, strings.Join(placeholders, ", "))
}

func dataAccessError(routine string, err error) error {
	message := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		message = pgErr.Message
	}
	return &domainErrors.DataAccessError{Routine: routine, Message: message, Err: err}
}
