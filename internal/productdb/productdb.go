// Package productdb provides the static CUSIP-keyed tables this
// pipeline treats as its universe of tradable products: the seven US
// Treasuries it was seeded with, and the yield/coupon inputs needed to
// price each one's PV01.
package productdb

import (
	"math"
	"time"

	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
)

const dateLayout = "2006/01/02"

func mustDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

var bonds = map[string]model.Bond{
	"91282CAV3": {CUSIP: "91282CAV3", Ticker: "US2Y", Coupon: 0.04500, Maturity: mustDate("2026/11/30")},
	"91282CBL4": {CUSIP: "91282CBL4", Ticker: "US3Y", Coupon: 0.04750, Maturity: mustDate("2027/12/15")},
	"91282CCB5": {CUSIP: "91282CCB5", Ticker: "US5Y", Coupon: 0.04875, Maturity: mustDate("2029/11/30")},
	"91282CCS8": {CUSIP: "91282CCS8", Ticker: "US7Y", Coupon: 0.05000, Maturity: mustDate("2031/11/30")},
	"91282CDH2": {CUSIP: "91282CDH2", Ticker: "US10Y", Coupon: 0.05125, Maturity: mustDate("2034/12/15")},
	"912810TM0": {CUSIP: "912810TM0", Ticker: "US20Y", Coupon: 0.05250, Maturity: mustDate("2044/12/15")},
	"912810TL2": {CUSIP: "912810TL2", Ticker: "US30Y", Coupon: 0.05375, Maturity: mustDate("2054/12/15")},
}

// universe lists every CUSIP this pipeline knows about, in the fixed
// order the original bond list used.
var universe = []string{
	"91282CAV3", "91282CBL4", "91282CCB5", "91282CCS8", "91282CDH2", "912810TM0", "912810TL2",
}

// Universe returns the CUSIPs of every product in the static table, in
// a fixed order, for callers that need to drive data generation across
// the whole bond universe.
func Universe() []string {
	out := make([]string, len(universe))
	copy(out, universe)
	return out
}

type pv01Inputs struct {
	faceValue       float64
	couponRate      float64
	yieldRate       float64
	yearsToMaturity int
	frequency       int
}

var pv01Table = map[string]pv01Inputs{
	"91282CAV3": {1000, 0.04500, 0.0464, 2, 2},
	"91282CBL4": {1000, 0.04750, 0.0440, 3, 2},
	"91282CCB5": {1000, 0.04875, 0.0412, 5, 2},
	"91282CCS8": {1000, 0.05000, 0.0430, 7, 2},
	"91282CDH2": {1000, 0.05125, 0.0428, 10, 2},
	"912810TM0": {1000, 0.05250, 0.0461, 20, 2},
	"912810TL2": {1000, 0.05375, 0.0443, 30, 2},
}

// QueryProduct returns the Bond registered for cusip, or
// errorsx.ErrUnknownProduct if cusip is not in the table.
func QueryProduct(cusip string) (model.Bond, error) {
	b, ok := bonds[cusip]
	if !ok {
		return model.Bond{}, errorsx.Wrap(errorsx.ErrUnknownProduct, cusip)
	}
	return b, nil
}

// CalculatePV discounts faceValue plus its coupon stream at yieldRate,
// compounded frequency times a year over yearsToMaturity years.
func CalculatePV(faceValue, couponRate, yieldRate float64, yearsToMaturity, frequency int) float64 {
	coupon := faceValue * couponRate / float64(frequency)
	presentValue := 0.0

	periods := yearsToMaturity * frequency
	for t := 1; t <= periods; t++ {
		presentValue += coupon / math.Pow(1.0+yieldRate/float64(frequency), float64(t))
	}
	presentValue += faceValue / math.Pow(1.0+yieldRate/float64(frequency), float64(periods))

	return presentValue
}

// CalculatePV01 is the drop in present value from a 1bp increase in
// yield: PV(yield) - PV(yield+1bp).
func CalculatePV01(faceValue, couponRate, yieldRate float64, yearsToMaturity, frequency int) float64 {
	pvInitial := CalculatePV(faceValue, couponRate, yieldRate, yearsToMaturity, frequency)
	pvAdjusted := CalculatePV(faceValue, couponRate, yieldRate+0.0001, yearsToMaturity, frequency)
	return pvInitial - pvAdjusted
}

// QueryPV01 returns the per-unit PV01 for cusip, or
// errorsx.ErrUnknownProduct if cusip is not in the table.
func QueryPV01(cusip string) (float64, error) {
	in, ok := pv01Table[cusip]
	if !ok {
		return 0, errorsx.Wrap(errorsx.ErrUnknownProduct, cusip)
	}
	return CalculatePV01(in.faceValue, in.couponRate, in.yieldRate, in.yearsToMaturity, in.frequency), nil
}
