package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(Setup, newRateLimiter)

func newRateLimiter(cfg *config.Config) *middleware.IPRateLimiter {
	return middleware.NewIPRateLimiter(cfg.PublicRateLimit)
}
