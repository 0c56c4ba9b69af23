package auth

import (
	"time"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Strategy issues and verifies bearer tokens carrying a principal.
type Strategy interface {
	IssueToken(principal model.Principal) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
