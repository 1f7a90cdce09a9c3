package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one source->target conversion record. A price in the
// source currency divided by the ratio gives the price in the target
// currency. Immutable.
type ExchangeRate struct {
	source string
	target string
	ratio  decimal.Decimal
}

func NewExchangeRate(rec Record) (*ExchangeRate, error) {
	source := nestedCode(rec, "source_currency", "code")
	target := nestedCode(rec, "target_currency", "code")
	if source == "" || target == "" {
		return nil, fmt.Errorf("exchange rate record without currency codes")
	}

	ratio, ok := pickDecimal(rec, "ratio")
	if !ok || ratio.IsZero() {
		return nil, fmt.Errorf("exchange rate %s-%s has no usable ratio", source, target)
	}

	return &ExchangeRate{source: source, target: target, ratio: ratio}, nil
}

// Code is the composite lookup key, "SOURCE-TARGET".
func (r *ExchangeRate) Code() string {
	return r.source + "-" + r.target
}

func (r *ExchangeRate) SourceCurrency() string { return r.source }
func (r *ExchangeRate) TargetCurrency() string { return r.target }
func (r *ExchangeRate) Ratio() decimal.Decimal { return r.ratio }
