package algostreaming

import "tradingpipeline/internal/model"

// PriceListener subscribes to PricingService and republishes every
// price update as an algo stream.
type PriceListener struct {
	service *Service
}

// NewPriceListener builds a listener wired to service.
func NewPriceListener(service *Service) *PriceListener {
	return &PriceListener{service: service}
}

func (l *PriceListener) ProcessAdd(data model.Price[model.Bond]) error {
	return l.service.PublishAlgoStream(data)
}

func (l *PriceListener) ProcessRemove(model.Price[model.Bond]) error { return nil }
func (l *PriceListener) ProcessUpdate(model.Price[model.Bond]) error { return nil }
