package dtos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Haleralex/lasercare/internal/domain/entities"
)

// ============================================
// Boundary value types
// ============================================

// Amount is a decimal that is rendered as a JSON number and accepted both
// as a number (120.5) and as a numeric string ("120.50").
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON renders the amount without quotes.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts quoted and unquoted numbers.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("invalid amount %s", string(b))
	}
	return nil
}

// Date is a calendar date rendered as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate wraps a time.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// MarshalJSON renders the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(entities.DateLayout) + `"`), nil
}

// PulseCount is an optional pulse count coming from the client.
//
// null, "" and an absent key all mean "not recorded"; a JSON integer or a
// numeric string is taken as given. Anything else is rejected.
type PulseCount struct {
	value *int
}

// NewPulseCount returns a recorded pulse count.
func NewPulseCount(v int) PulseCount {
	return PulseCount{value: &v}
}

// Value returns nil when the count was not recorded.
func (p PulseCount) Value() *int {
	return p.value
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PulseCount) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if bytes.Equal(raw, []byte("null")) {
		p.value = nil
		return nil
	}

	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("invalid pulsaciones %s", string(b))
		}
		text = strings.TrimSpace(text)
		if text == "" {
			p.value = nil
			return nil
		}
	}

	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsInteger() || d.LessThan(minPulses) || d.GreaterThan(maxPulses) {
		return fmt.Errorf("invalid pulsaciones %s", string(b))
	}
	v := int(d.IntPart())
	p.value = &v
	return nil
}

// MarshalJSON renders null or the integer.
func (p PulseCount) MarshalJSON() ([]byte, error) {
	if p.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*p.value)
}

// INTEGER column bounds.
var (
	minPulses = decimal.NewFromInt(-2147483648)
	maxPulses = decimal.NewFromInt(2147483647)
)
