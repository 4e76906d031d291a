package service

import (
	"github.com/shopspring/decimal"

	"agrodesk/internal/domain"
)

// LineItemInput is the DTO for one priced row of a document. Quantity, price,
// and tax rate ranges are enforced by domain.ValidateLineItems on the
// persisted path; in-progress form rows may legitimately hold zero values.
type LineItemInput struct {
	Description    string          `json:"description" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`

	GrossWeight       *decimal.Decimal `json:"gross_weight"`
	TareWeight        *decimal.Decimal `json:"tare_weight"`
	CleanWeight       *decimal.Decimal `json:"clean_weight"`
	OilContentPercent *decimal.Decimal `json:"oil_content_percent"`
}

func (in LineItemInput) toDomain() domain.LineItem {
	return domain.LineItem{
		Description:       in.Description,
		Quantity:          in.Quantity,
		UnitPrice:         in.UnitPrice,
		TaxRatePercent:    in.TaxRatePercent,
		GrossWeight:       toNullDecimal(in.GrossWeight),
		TareWeight:        toNullDecimal(in.TareWeight),
		CleanWeight:       toNullDecimal(in.CleanWeight),
		OilContentPercent: toNullDecimal(in.OilContentPercent),
	}
}

func lineItemsToDomain(inputs []LineItemInput) []domain.LineItem {
	items := make([]domain.LineItem, len(inputs))
	for i, in := range inputs {
		items[i] = in.toDomain()
	}
	return items
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
