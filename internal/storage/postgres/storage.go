package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

//go:embed schema.sql
var schemaSQL string

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config, notices *noticeRouter) (pgxPool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &noticePool{Pool: pool, notices: notices}, nil
}

// Storage owns the connection pool and hands out repositories backed by
// stored routines.
type Storage struct {
	pool    pgxPool
	gateway *Gateway
	logger  *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, timeout time.Duration, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	notices := newNoticeRouter()
	cfg.ConnConfig.OnNotice = notices.handle

	pool, err := newPgxPool(ctx, cfg, notices)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := newStorage(pool, timeout, logger)
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

func newStorage(pool pgxPool, timeout time.Duration, logger *slog.Logger) *Storage {
	return &Storage{
		pool:    pool,
		gateway: newGateway(pool, timeout, logger),
		logger:  logger,
	}
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Gateway exposes the routine invoker shared by all repositories.
func (s *Storage) Gateway() *Gateway {
	return s.gateway
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{gateway: s.gateway}
}

func (s *Storage) Clients() repository.ClientRepository {
	return &clientRepository{gateway: s.gateway}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{gateway: s.gateway}
}

func (s *Storage) Staff() repository.StaffRepository {
	return &staffRepository{gateway: s.gateway}
}

func (s *Storage) initSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
