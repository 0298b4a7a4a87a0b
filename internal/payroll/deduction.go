package payroll

import "github.com/shopspring/decimal"

// DeductionPolicy computes the deduction for a gross amount. The wizard takes
// it as a dependency so jurisdictional rules can be swapped without touching
// the pipeline.
type DeductionPolicy interface {
	Compute(gross decimal.Decimal) decimal.Decimal
}

// FlatRatePolicy withholds a fixed fraction of the gross, rounded to cents.
type FlatRatePolicy struct {
	Rate decimal.Decimal
}

func NewFlatRatePolicy(rate float64) FlatRatePolicy {
	return FlatRatePolicy{Rate: decimal.NewFromFloat(rate)}
}

// DefaultDeductionPolicy is the stand-in 10% withholding used until a real
// tax table is configured.
func DefaultDeductionPolicy() DeductionPolicy {
	return NewFlatRatePolicy(0.10)
}

func (p FlatRatePolicy) Compute(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(p.Rate).Round(2)
}
