package model

import "github.com/yanun0323/decimal"

// Price is a mid/spread quote for a product, keyed externally by the
// product's CUSIP. Mid and BidOfferSpread are stored as decimal.Decimal
// so a value parsed from a fractional-price text line never drifts
// through a float reformat on its way back out.
type Price[T Identifiable] struct {
	Product        T
	Mid            decimal.Decimal
	BidOfferSpread decimal.Decimal
}

// NewPrice builds a Price from float64 mid/spread values, the shape a
// connector computes them in off bid/ask.
func NewPrice[T Identifiable](product T, mid, spread float64) Price[T] {
	return Price[T]{
		Product:        product,
		Mid:            decimal.NewFromFloat(mid),
		BidOfferSpread: decimal.NewFromFloat(spread),
	}
}

// MidFloat returns the mid price as a float64.
func (p Price[T]) MidFloat() float64 {
	f, _ := p.Mid.Float64()
	return f
}

// SpreadFloat returns the bid/offer spread as a float64.
func (p Price[T]) SpreadFloat() float64 {
	f, _ := p.BidOfferSpread.Float64()
	return f
}

// Bid returns the bid side price implied by mid and spread.
func (p Price[T]) Bid() float64 {
	return p.MidFloat() - p.SpreadFloat()/2.0
}

// Offer returns the offer side price implied by mid and spread.
func (p Price[T]) Offer() float64 {
	return p.MidFloat() + p.SpreadFloat()/2.0
}
