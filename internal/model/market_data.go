package model

// Order is a single resting order on one side of a book.
type Order struct {
	Price    float64
	Quantity int64
	Side     Side
}

// BidOffer is the best bid and best offer of a book.
type BidOffer struct {
	BidOrder   Order
	OfferOrder Order
}

// OrderBook holds the bid and offer stacks for a product.
type OrderBook[T Identifiable] struct {
	Product    T
	BidStack   []Order
	OfferStack []Order
}

// BestBidOffer returns the best (highest) bid and best (lowest) offer
// in the book. ok is false, signaling an InvariantViolation to the
// caller, when either stack is empty.
func (b OrderBook[T]) BestBidOffer() (BidOffer, bool) {
	if len(b.BidStack) == 0 || len(b.OfferStack) == 0 {
		return BidOffer{}, false
	}
	bestBid := b.BidStack[0]
	for _, o := range b.BidStack[1:] {
		if o.Price > bestBid.Price {
			bestBid = o
		}
	}
	bestOffer := b.OfferStack[0]
	for _, o := range b.OfferStack[1:] {
		if o.Price < bestOffer.Price {
			bestOffer = o
		}
	}
	return BidOffer{BidOrder: bestBid, OfferOrder: bestOffer}, true
}

// AggregateDepth collapses duplicate price levels on each side into a
// single Order per distinct price, summing quantity.
func (b OrderBook[T]) AggregateDepth() OrderBook[T] {
	return OrderBook[T]{
		Product:    b.Product,
		BidStack:   aggregateSide(b.BidStack, Bid),
		OfferStack: aggregateSide(b.OfferStack, Offer),
	}
}

func aggregateSide(stack []Order, side Side) []Order {
	byPrice := make(map[float64]int64, len(stack))
	seenOrder := make([]float64, 0, len(stack))
	for _, o := range stack {
		if _, seen := byPrice[o.Price]; !seen {
			seenOrder = append(seenOrder, o.Price)
		}
		byPrice[o.Price] += o.Quantity
	}
	out := make([]Order, 0, len(seenOrder))
	for _, price := range seenOrder {
		out = append(out, Order{Price: price, Quantity: byPrice[price], Side: side})
	}
	return out
}
