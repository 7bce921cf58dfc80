// Package algoexecution implements AlgoExecutionService, which turns
// market data updates into algorithmic execution orders via a
// pluggable OrderFactory, and its default SimpleOrderFactory.
package algoexecution

import (
	"math/rand"
	"time"

	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/soa"
)

// OrderFactory builds an execution order from the current state of a
// product's order book.
type OrderFactory interface {
	CreateExecutionOrder(book model.OrderBook[model.Bond], count int64) model.ExecutionOrder[model.Bond]
}

// Service manages algorithmic execution orders, one per product, each
// freshly produced by its OrderFactory on every AlgoExecuteOrder call.
type Service struct {
	soa.ListenerSet[model.AlgoExecution[model.Bond]]
	executions map[string]model.AlgoExecution[model.Bond]
	factory    OrderFactory
	count      int64
}

// New constructs an algo execution service driven by factory.
func New(factory OrderFactory) *Service {
	return &Service{
		executions: make(map[string]model.AlgoExecution[model.Bond]),
		factory:    factory,
	}
}

// GetData returns the last algo execution produced for key.
func (s *Service) GetData(key string) (model.AlgoExecution[model.Bond], error) {
	v, ok := s.executions[key]
	if !ok {
		return model.AlgoExecution[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, key)
	}
	return v, nil
}

// OnMessage is a no-op placeholder, matching AlgoExecutionService::OnMessage.
func (s *Service) OnMessage(model.AlgoExecution[model.Bond]) error { return nil }

// AlgoExecuteOrder asks the factory for an execution order against
// book, wraps it into an AlgoExecution destined for Brokertec, stores
// it keyed by product, and notifies listeners. It returns
// errorsx.ErrInvariantViolation, without calling the factory, when
// either side of book is empty.
func (s *Service) AlgoExecuteOrder(book model.OrderBook[model.Bond]) error {
	if _, ok := book.BestBidOffer(); !ok {
		return errorsx.Wrap(errorsx.ErrInvariantViolation, "best bid/offer on empty side for "+book.Product.GetProductId())
	}
	order := s.factory.CreateExecutionOrder(book, s.count)
	s.count++

	algoExec := model.AlgoExecution[model.Bond]{ExecutionOrder: order, Market: model.Brokertec}
	key := order.Product.GetProductId()
	s.executions[key] = algoExec
	return s.NotifyAdd(algoExec)
}

// idCharset mirrors RandomUtils::GenerateRandomId's alphabet.
const idCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SimpleOrderFactory alternates between bid and offer orders when the
// book is tight, and otherwise defaults to hitting the bid.
type SimpleOrderFactory struct {
	rng *rand.Rand
}

// NewSimpleOrderFactory builds a factory seeded from seed. A seed of 0
// derives one from the current time.
func NewSimpleOrderFactory(seed int64) *SimpleOrderFactory {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	return &SimpleOrderFactory{rng: rand.New(rand.NewSource(seed))}
}

// tightSpreadThreshold is the widest spread, in price points, at or
// below which CreateExecutionOrder alternates sides instead of always
// hitting the bid.
const tightSpreadThreshold = 1.0 / 128.0

func (f *SimpleOrderFactory) CreateExecutionOrder(book model.OrderBook[model.Bond], count int64) model.ExecutionOrder[model.Bond] {
	product := book.Product
	orderID := "Algo" + f.generateID(11)
	parentOrderID := "AlgoParent" + f.generateID(5)

	bidOffer, _ := book.BestBidOffer()
	bid, offer := bidOffer.BidOrder, bidOffer.OfferOrder

	var side model.Side
	var price float64
	var quantity int64

	if offer.Price-bid.Price <= tightSpreadThreshold {
		if count%2 == 0 {
			side, price, quantity = model.Bid, offer.Price, bid.Quantity
		} else {
			side, price, quantity = model.Offer, bid.Price, offer.Quantity
		}
	} else {
		side, price, quantity = model.Bid, bid.Price, bid.Quantity
	}

	return model.ExecutionOrder[model.Bond]{
		Product:         product,
		Side:            side,
		OrderID:         orderID,
		OrderType:       model.MarketOrder,
		Price:           price,
		VisibleQuantity: quantity,
		HiddenQuantity:  0,
		ParentOrderID:   parentOrderID,
		IsChildOrder:    false,
	}
}

func (f *SimpleOrderFactory) generateID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idCharset[f.rng.Intn(len(idCharset))]
	}
	return string(b)
}
