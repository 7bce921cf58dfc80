// Package position implements PositionService, which tracks per-book
// and aggregate positions keyed by product, fed by TradeBookingService
// trades through PositionListener.
package position

import (
	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/soa"
)

// Service manages positions across multiple books, keyed by product id.
type Service struct {
	soa.ListenerSet[model.Position[model.Bond]]
	positions map[string]model.Position[model.Bond]
}

// New constructs an empty position service.
func New() *Service {
	return &Service{positions: make(map[string]model.Position[model.Bond])}
}

// GetData returns the stored position for productId.
func (s *Service) GetData(productId string) (model.Position[model.Bond], error) {
	v, ok := s.positions[productId]
	if !ok {
		return model.Position[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, productId)
	}
	return v, nil
}

// OnMessage is a no-op placeholder, matching PositionService::OnMessage.
func (s *Service) OnMessage(model.Position[model.Bond]) error { return nil }

// AddTrade folds trade into the position for its product, creating the
// position on first reference, and notifies listeners.
func (s *Service) AddTrade(trade model.Trade[model.Bond]) error {
	productId := trade.Product.GetProductId()
	quantity := trade.Quantity
	if trade.Side == model.Sell {
		quantity = -quantity
	}

	pos, ok := s.positions[productId]
	if !ok {
		pos = model.NewPosition(trade.Product)
	}
	pos.AddPosition(trade.Book, quantity)
	s.positions[productId] = pos

	return s.NotifyAdd(pos)
}

// TradeListener subscribes to TradeBookingService and folds every
// booked trade into the position service, matching
// PositionServiceListener::ProcessAdd.
type TradeListener struct {
	service *Service
}

// NewTradeListener builds a listener wired to service.
func NewTradeListener(service *Service) *TradeListener {
	return &TradeListener{service: service}
}

func (l *TradeListener) ProcessAdd(data model.Trade[model.Bond]) error {
	return l.service.AddTrade(data)
}

func (l *TradeListener) ProcessRemove(model.Trade[model.Bond]) error { return nil }
func (l *TradeListener) ProcessUpdate(model.Trade[model.Bond]) error { return nil }
