package payroll

import "github.com/shopspring/decimal"

const overtimeMultiplier = 1.5

// PayBreakdown holds the money columns of one computed payroll, each rounded
// to cents.
type PayBreakdown struct {
	RegularPay  float64
	OvertimePay float64
	GrossPay    float64
	Deductions  float64
	NetPay      float64
}

// computePay turns aggregated hours into a pay breakdown. All arithmetic is
// decimal so repeated float sums cannot drift the cents.
func computePay(regularHours, overtimeHours, hourlyRate float64, policy DeductionPolicy) PayBreakdown {
	rate := decimal.NewFromFloat(hourlyRate)
	regular := decimal.NewFromFloat(regularHours).Mul(rate).Round(2)
	overtime := decimal.NewFromFloat(overtimeHours).
		Mul(rate).
		Mul(decimal.NewFromFloat(overtimeMultiplier)).
		Round(2)
	gross := regular.Add(overtime)
	deductions := policy.Compute(gross)
	net := gross.Sub(deductions)

	return PayBreakdown{
		RegularPay:  regular.InexactFloat64(),
		OvertimePay: overtime.InexactFloat64(),
		GrossPay:    gross.InexactFloat64(),
		Deductions:  deductions.InexactFloat64(),
		NetPay:      net.InexactFloat64(),
	}
}

// recompute re-derives the dependent money fields after a manual edit so
// net_pay always equals gross_pay minus deductions.
func recompute(p *Payroll) {
	rate := decimal.NewFromFloat(p.HourlyRate)
	base := decimal.NewFromFloat(p.TotalHours - p.OvertimeHours).Mul(rate).Round(2)
	overtimePay := decimal.NewFromFloat(p.OvertimeHours).
		Mul(rate).
		Mul(decimal.NewFromFloat(overtimeMultiplier)).
		Round(2)
	bonus := decimal.NewFromFloat(p.Bonus)
	gross := base.Add(overtimePay).Add(bonus)

	itemized := decimal.NewFromFloat(p.Tax).
		Add(decimal.NewFromFloat(p.Superannuation)).
		Add(decimal.NewFromFloat(p.OtherDeductions)).
		Round(2)
	deductions := decimal.NewFromFloat(p.Deductions)
	if !itemized.IsZero() {
		deductions = itemized
	}

	p.OvertimePay = overtimePay.InexactFloat64()
	p.GrossPay = gross.InexactFloat64()
	p.Deductions = deductions.InexactFloat64()
	p.NetPay = gross.Sub(deductions).InexactFloat64()
}

// recomputeWithGross is recompute with a manually entered gross_pay taking
// the place of the hours-derived one. Deductions resolve the same way and
// net_pay still equals gross minus deductions.
func recomputeWithGross(p *Payroll, grossPay float64) {
	recompute(p)
	gross := decimal.NewFromFloat(grossPay).Round(2)
	p.GrossPay = gross.InexactFloat64()
	p.NetPay = gross.Sub(decimal.NewFromFloat(p.Deductions)).InexactFloat64()
}
