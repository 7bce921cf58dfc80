// Package execution implements ExecutionService, which books execution
// orders off AlgoExecution updates and publishes them to a market
// through its Connector.
package execution

import (
	"fmt"
	"io"

	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/soa"
)

// Service stores the latest execution order per order id and forwards
// it to a Connector for publication to a market.
type Service struct {
	soa.ListenerSet[model.ExecutionOrder[model.Bond]]
	orders    map[string]model.ExecutionOrder[model.Bond]
	connector *Connector
}

// New constructs an execution service that publishes through w.
func New(w io.Writer) *Service {
	s := &Service{orders: make(map[string]model.ExecutionOrder[model.Bond])}
	s.connector = &Connector{w: w}
	return s
}

// GetData returns the stored order for orderID.
func (s *Service) GetData(orderID string) (model.ExecutionOrder[model.Bond], error) {
	v, ok := s.orders[orderID]
	if !ok {
		return model.ExecutionOrder[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, orderID)
	}
	return v, nil
}

// OnMessage is a no-op placeholder, matching ExecutionService::OnMessage.
func (s *Service) OnMessage(model.ExecutionOrder[model.Bond]) error { return nil }

// AddExecutionOrder stores algoExecution's order keyed by order id and
// notifies listeners.
func (s *Service) AddExecutionOrder(algoExecution model.AlgoExecution[model.Bond]) error {
	order := algoExecution.ExecutionOrder
	s.orders[order.OrderID] = order
	return s.NotifyAdd(order)
}

// ExecuteOrder publishes order to market through the connector.
func (s *Service) ExecuteOrder(order model.ExecutionOrder[model.Bond], market model.Market) error {
	return s.connector.Publish(order, market)
}

// Connector is the outbound market-facing writer for execution orders.
type Connector struct {
	w io.Writer
}

// Publish renders order's full detail, as an exchange gateway would
// log it before acking.
func (c *Connector) Publish(order model.ExecutionOrder[model.Bond], market model.Market) error {
	childOrder := "No"
	if order.IsChildOrder {
		childOrder = "Yes"
	}
	_, err := fmt.Fprintf(c.w,
		"ExecutionOrder:\n\tProduct: %s\tOrderId: %s\tMarket: %s\n\tPricingSide: %s\tOrderType: %s\tChildOrder: %s\n\tPrice: %.6f\tVisibleQty: %d\tHiddenQty: %d\n",
		order.Product.GetProductId(), order.OrderID, market,
		order.Side, order.OrderType, childOrder,
		order.Price, order.VisibleQuantity, order.HiddenQuantity,
	)
	return err
}

// AlgoExecutionListener subscribes to AlgoExecutionService and books
// plus publishes every algo execution it receives, matching
// ExecutionServiceListener::ProcessAdd.
type AlgoExecutionListener struct {
	service *Service
}

// NewAlgoExecutionListener builds a listener wired to service.
func NewAlgoExecutionListener(service *Service) *AlgoExecutionListener {
	return &AlgoExecutionListener{service: service}
}

func (l *AlgoExecutionListener) ProcessAdd(data model.AlgoExecution[model.Bond]) error {
	if err := l.service.AddExecutionOrder(data); err != nil {
		return err
	}
	return l.service.ExecuteOrder(data.ExecutionOrder, data.Market)
}

func (l *AlgoExecutionListener) ProcessRemove(model.AlgoExecution[model.Bond]) error { return nil }
func (l *AlgoExecutionListener) ProcessUpdate(model.AlgoExecution[model.Bond]) error { return nil }
