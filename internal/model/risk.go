package model

// PV01 is the PV01 risk value for a product or a bucketed sector: the
// change in present value from a 1bp yield shift, scaled by quantity.
// For a single security PV01 holds the per-unit value; for a bucketed
// sector it holds the sector's total value (sum of pv01*quantity).
type PV01[T any] struct {
	Product  T
	Value    float64
	Quantity int64
}

// UpdateQuantity adds quantity (positive or negative) to the PV01
// value's tracked quantity.
func (p *PV01[T]) UpdateQuantity(quantity int64) {
	p.Quantity += quantity
}

// BucketedSector groups a set of products for aggregated risk
// reporting.
type BucketedSector[T Identifiable] struct {
	Products []T
	Name     string
}
