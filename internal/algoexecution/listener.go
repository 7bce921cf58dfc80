package algoexecution

import "tradingpipeline/internal/model"

// MarketDataListener subscribes to MarketDataService and drives an
// execution order off every aggregated book update.
type MarketDataListener struct {
	service *Service
}

// NewMarketDataListener builds a listener wired to service.
func NewMarketDataListener(service *Service) *MarketDataListener {
	return &MarketDataListener{service: service}
}

func (l *MarketDataListener) ProcessAdd(data model.OrderBook[model.Bond]) error {
	return l.service.AlgoExecuteOrder(data)
}

func (l *MarketDataListener) ProcessRemove(model.OrderBook[model.Bond]) error { return nil }
func (l *MarketDataListener) ProcessUpdate(model.OrderBook[model.Bond]) error { return nil }
