package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/polkiloo/orderdesk/internal/dispatch"
	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

func parseSheet(raw string) (int64, error) {
	sheet, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || sheet <= 0 {
		return 0, fmt.Errorf("%w: sheet %q", domainErrors.ErrInvalidField, raw)
	}
	return sheet, nil
}

// mutation reports the advisory of a store call, or fallback when the store
// raised none.
func mutation(result model.MutationResult, fallback string) dispatch.Envelope {
	message := result.Advisory
	if message == "" {
		message = fallback
	}
	return dispatch.Message(result.Rows, message)
}
