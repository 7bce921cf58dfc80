// Package algostreaming turns a Price into an AlgoStream: a bid/offer
// PriceStreamOrder pair quoted off mid and spread, with a visible
// quantity that alternates 1,000,000 / 2,000,000 on every call and a
// hidden quantity twice the visible one.
package algostreaming

import (
	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/soa"
)

// Service keeps the most recently published AlgoStream per product.
type Service struct {
	soa.ListenerSet[model.AlgoStream[model.Bond]]
	streams map[string]model.AlgoStream[model.Bond]
	count   int64
}

// New constructs an empty algo streaming service.
func New() *Service {
	return &Service{streams: make(map[string]model.AlgoStream[model.Bond])}
}

// GetData returns the current AlgoStream for a CUSIP.
func (s *Service) GetData(key string) (model.AlgoStream[model.Bond], error) {
	v, ok := s.streams[key]
	if !ok {
		return model.AlgoStream[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, key)
	}
	return v, nil
}

// OnMessage is a no-op placeholder, matching
// AlgoStreamingService::OnMessage in the original service.
func (s *Service) OnMessage(model.AlgoStream[model.Bond]) error {
	return nil
}

// PublishAlgoStream builds a bid/offer quote from price's mid and
// spread, alternates the visible quantity on every call, replaces the
// stored stream for the product, and notifies listeners.
func (s *Service) PublishAlgoStream(price model.Price[model.Bond]) error {
	product := price.Product
	key := product.GetProductId()
	mid := price.MidFloat()
	spread := price.SpreadFloat()
	bidPrice := mid - spread/2
	offerPrice := mid + spread/2

	visibleQuantity := int64(1_000_000)
	if s.count%2 != 0 {
		visibleQuantity = 2_000_000
	}
	hiddenQuantity := visibleQuantity * 2
	s.count++

	bidOrder := model.PriceStreamOrder{Price: bidPrice, VisibleQuantity: visibleQuantity, HiddenQuantity: hiddenQuantity, Side: model.Bid}
	offerOrder := model.PriceStreamOrder{Price: offerPrice, VisibleQuantity: visibleQuantity, HiddenQuantity: hiddenQuantity, Side: model.Offer}

	priceStream := model.PriceStream[model.Bond]{Product: product, BidOrder: bidOrder, OfferOrder: offerOrder}
	algoStream := model.AlgoStream[model.Bond]{PriceStream: priceStream}

	s.streams[key] = algoStream

	return s.NotifyAdd(algoStream)
}
