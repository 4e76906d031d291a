package domain

import "github.com/shopspring/decimal"

var percentBase = decimal.NewFromInt(100)

// LineAmounts holds the derived amounts of a single line item.
type LineAmounts struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// DocumentTotals holds the aggregate amounts of a document.
type DocumentTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Amounts computes subtotal, tax, and total for the line. Zero-valued inputs
// (an item still being typed into a form) yield zero amounts rather than an
// error; no rounding is applied here, display rounding belongs to the
// presentation layer.
func (li LineItem) Amounts() LineAmounts {
	subtotal := li.Quantity.Mul(li.UnitPrice)
	tax := subtotal.Mul(li.TaxRatePercent).Div(percentBase)
	return LineAmounts{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// NetWeight returns gross minus tare when both weights are recorded.
func (li LineItem) NetWeight() decimal.NullDecimal {
	if !li.GrossWeight.Valid || !li.TareWeight.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: li.GrossWeight.Decimal.Sub(li.TareWeight.Decimal),
		Valid:   true,
	}
}

// TotalsOf sums the per-line amounts. An empty item list yields an all-zero
// aggregate.
func TotalsOf(items []LineItem) DocumentTotals {
	var t DocumentTotals
	for _, li := range items {
		a := li.Amounts()
		t.Subtotal = t.Subtotal.Add(a.Subtotal)
		t.Tax = t.Tax.Add(a.Tax)
		t.Total = t.Total.Add(a.Total)
	}
	return t
}

// ValidateLineItems enforces the persisted-path invariants: at least one item,
// quantity strictly positive, unit price non-negative, and tax rate within
// [0, 100].
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoLineItems
	}
	for _, li := range items {
		if !li.Quantity.IsPositive() {
			return ErrInvalidLineItem
		}
		if li.UnitPrice.IsNegative() {
			return ErrInvalidLineItem
		}
		if li.TaxRatePercent.IsNegative() || li.TaxRatePercent.GreaterThan(percentBase) {
			return ErrInvalidLineItem
		}
	}
	return nil
}
