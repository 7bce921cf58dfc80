package model

// ExecutionOrder is an order routed for execution, optionally a child
// of a parent order split across multiple venues.
type ExecutionOrder[T Identifiable] struct {
	Product         T
	Side            Side
	OrderID         string
	OrderType       OrderType
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChildOrder    bool
}

// AlgoExecution wraps an ExecutionOrder by value together with the
// venue it is routed to, copied the same way AlgoStream copies its
// PriceStream.
type AlgoExecution[T Identifiable] struct {
	ExecutionOrder ExecutionOrder[T]
	Market         Market
}
