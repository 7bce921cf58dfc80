package model

// Trade is an executed trade booked into a particular book.
type Trade[T Identifiable] struct {
	Product  T
	TradeID  string
	Price    float64
	Book     string
	Quantity int64
	Side     TradeSide
}
