package money

// Line is the minimal shape the calculator needs from a line item.
type Line struct {
	Quantity  Number
	UnitPrice Number
}

// Total returns quantity times unit price with no display rounding.
func (l Line) Total() float64 {
	return l.Quantity.Float64() * l.UnitPrice.Float64()
}

// Subtotal sums quantity times unit price across all lines. Empty
// numeric fields count as zero. The result is recomputed on every
// call, never cached.
func Subtotal(lines []Line) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Total()
	}
	return sum
}

// BalanceDue is the subtotal minus the amount already paid. A negative
// result means overpayment and is returned as-is, never clamped.
func BalanceDue(lines []Line, amountPaid Number) float64 {
	return Subtotal(lines) - amountPaid.Float64()
}
