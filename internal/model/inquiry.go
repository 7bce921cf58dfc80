package model

// InquiryState is the lifecycle state of a client inquiry.
type InquiryState int

const (
	Received InquiryState = iota
	Quoted
	Done
	Rejected
	CustomerRejected
)

func (s InquiryState) String() string {
	switch s {
	case Received:
		return "RECEIVED"
	case Quoted:
		return "QUOTED"
	case Done:
		return "DONE"
	case Rejected:
		return "REJECTED"
	case CustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Inquiry models a client-initiated request concerning a product.
type Inquiry[T Identifiable] struct {
	InquiryID string
	Product   T
	Side      TradeSide
	Quantity  int64
	Price     float64
	State     InquiryState
}

// SetPrice returns a copy of the inquiry with Price updated.
func (i Inquiry[T]) SetPrice(price float64) Inquiry[T] {
	i.Price = price
	return i
}

// SetState returns a copy of the inquiry with State updated.
func (i Inquiry[T]) SetState(state InquiryState) Inquiry[T] {
	i.State = state
	return i
}
