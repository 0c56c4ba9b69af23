package dispatch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
)

// Fields maps field names to raw values: strings, json.Number, decoded JSON
// arrays and objects.
type Fields map[string]any

// String returns the field rendered as text; absent fields yield "".
func (f Fields) String(name string) string {
	switch v := f[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (f Fields) Int64(name string) (int64, error) {
	switch v := f[name].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, invalid(name, err)
		}
		return n, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, invalid(name, fmt.Errorf("%v is not an integer", v))
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, invalid(name, err)
		}
		return n, nil
	}
	return 0, invalid(name, fmt.Errorf("unexpected type %T", f[name]))
}

func (f Fields) Int(name string) (int, error) {
	n, err := f.Int64(name)
	return int(n), err
}

// Decimal parses a money amount; absent and blank fields are zero.
func (f Fields) Decimal(name string) (decimal.Decimal, error) {
	switch v := f[name].(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, invalid(name, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, invalid(name, err)
		}
		return d, nil
	}
	return decimal.Zero, invalid(name, fmt.Errorf("unexpected type %T", f[name]))
}

// Decode unmarshals a structured field into dst. String values are parsed
// as JSON text, which is how multipart forms carry arrays.
func (f Fields) Decode(name string, dst any) error {
	var raw []byte
	switch v := f[name].(type) {
	case nil:
		return invalid(name, fmt.Errorf("missing value"))
	case string:
		raw = []byte(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return invalid(name, err)
		}
		raw = encoded
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalid(name, err)
	}
	return nil
}

func invalid(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", domainErrors.ErrInvalidField, name, err)
}
