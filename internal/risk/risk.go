// Package risk implements RiskService, which tracks PV01 exposure per
// product and rolls it up into bucketed sectors, fed by PositionService
// positions through PositionListener.
package risk

import (
	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/productdb"
	"tradingpipeline/internal/soa"
)

// Service tracks PV01 risk per product, keyed by product id.
type Service struct {
	soa.ListenerSet[model.PV01[model.Bond]]
	pv01Data map[string]model.PV01[model.Bond]
}

// New constructs an empty risk service.
func New() *Service {
	return &Service{pv01Data: make(map[string]model.PV01[model.Bond])}
}

// GetData returns the stored PV01 risk for productId.
func (s *Service) GetData(productId string) (model.PV01[model.Bond], error) {
	v, ok := s.pv01Data[productId]
	if !ok {
		return model.PV01[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, productId)
	}
	return v, nil
}

// OnMessage is a no-op placeholder, matching RiskService::OnMessage.
func (s *Service) OnMessage(model.PV01[model.Bond]) error { return nil }

// AddPosition derives the PV01 risk for position's current aggregate
// quantity and notifies listeners. position already carries the full
// cumulative quantity across every book, so the stored PV01 quantity
// is set to match it rather than accumulated across calls.
func (s *Service) AddPosition(position model.Position[model.Bond]) error {
	product := position.Product
	productId := product.GetProductId()
	quantity := position.GetAggregatePosition()

	pv01Value, err := productdb.QueryPV01(productId)
	if err != nil {
		return err
	}

	pv01 := model.PV01[model.Bond]{Product: product, Value: pv01Value, Quantity: quantity}
	s.pv01Data[productId] = pv01

	return s.NotifyAdd(pv01)
}

// GetBucketedRisk returns the quantity-weighted PV01 risk for every
// product in sector that this service has risk for.
func (s *Service) GetBucketedRisk(sector model.BucketedSector[model.Bond]) model.PV01[model.BucketedSector[model.Bond]] {
	var totalPV01 float64
	var totalQuantity int64

	for _, product := range sector.Products {
		pv01, ok := s.pv01Data[product.GetProductId()]
		if !ok {
			continue
		}
		totalPV01 += pv01.Value * float64(pv01.Quantity)
		totalQuantity += pv01.Quantity
	}

	return model.PV01[model.BucketedSector[model.Bond]]{
		Product:  sector,
		Value:    totalPV01,
		Quantity: totalQuantity,
	}
}

// PositionListener subscribes to PositionService and feeds every
// position update into the risk service, matching
// RiskServiceListener::ProcessAdd.
type PositionListener struct {
	service *Service
}

// NewPositionListener builds a listener wired to service.
func NewPositionListener(service *Service) *PositionListener {
	return &PositionListener{service: service}
}

func (l *PositionListener) ProcessAdd(data model.Position[model.Bond]) error {
	return l.service.AddPosition(data)
}

func (l *PositionListener) ProcessRemove(model.Position[model.Bond]) error { return nil }
func (l *PositionListener) ProcessUpdate(model.Position[model.Bond]) error { return nil }
