package engine

import (
	"errors"
	"fmt"
	"time"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

var ErrInvalidWeights = errors.New("sum of weights exceeds 1.0")

var one = decimal.NewFromInt(1)

// validateWeights returns the target weights of a setting after checking that
// they do not over-allocate. The comparison against 1.0 is exact, no epsilon.
// The error names the portfolio and date at fault.
func validateWeights(setting types.WeightSetting, name string, date time.Time) (map[string]decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range setting.Weights {
		total = total.Add(w)
	}
	if total.GreaterThan(one) {
		return nil, fmt.Errorf("portfolio %q on %s: %w", name, date.Format(time.DateOnly), ErrInvalidWeights)
	}
	return setting.Weights, nil
}
