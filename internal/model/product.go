// Package model defines the generic data types the pipeline's services
// operate on (products, prices, orders, streams, trades, positions,
// risk, and inquiries), instantiated throughout at Bond.
package model

import "time"

// Identifiable is the constraint every product type instantiating the
// generic service/stream/order types in this package must satisfy.
type Identifiable interface {
	GetProductId() string
}

// Bond is the one product type this pipeline instantiates its generic
// types at: a US Treasury security identified by CUSIP.
type Bond struct {
	CUSIP    string
	Ticker   string
	Coupon   float64
	Maturity time.Time
}

// GetProductId satisfies Identifiable.
func (b Bond) GetProductId() string {
	return b.CUSIP
}
