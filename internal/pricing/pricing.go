// Package pricing implements PricingService, which keeps the latest
// mid/spread quote for every product, and PricingConnector, the
// inbound connector that subscribes pricing text lines into it.
package pricing

import (
	"bufio"
	"io"
	"strings"

	"github.com/yanun0323/logs"

	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/priceutil"
	"tradingpipeline/internal/productdb"
	"tradingpipeline/internal/soa"
)

// Service keeps the latest Price for each product, keyed by CUSIP.
type Service struct {
	soa.ListenerSet[model.Price[model.Bond]]
	prices map[string]model.Price[model.Bond]
}

// New constructs an empty pricing service.
func New() *Service {
	return &Service{prices: make(map[string]model.Price[model.Bond])}
}

// GetData returns the latest price for a CUSIP.
func (s *Service) GetData(key string) (model.Price[model.Bond], error) {
	p, ok := s.prices[key]
	if !ok {
		return model.Price[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, key)
	}
	return p, nil
}

// OnMessage replaces the stored price for the product and notifies
// listeners, in that order, matching PricingService::OnMessage.
func (s *Service) OnMessage(data model.Price[model.Bond]) error {
	s.prices[data.Product.GetProductId()] = data
	return s.NotifyAdd(data)
}

// Connector reads pricing text lines and feeds them into a Service.
type Connector struct {
	service *Service
}

// NewConnector builds a connector wired to service.
func NewConnector(service *Service) *Connector {
	return &Connector{service: service}
}

// Subscribe reads Timestamp,CUSIP,Bid,Ask lines (skipping the header
// row) from r, computing mid and spread from bid/ask and feeding the
// result into the service. Lines referencing an unknown CUSIP or that
// fail to parse are logged and skipped rather than aborting the run.
func (c *Connector) Subscribe(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	if scanner.Scan() {
		lineNo++ // header
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 4 {
			logs.Warnf("pricing: line %d malformed: %q", lineNo, line)
			continue
		}

		cusip := fields[1]
		bid, err := priceutil.Decode(fields[2])
		if err != nil {
			logs.Warnf("pricing: line %d bad bid: %v", lineNo, err)
			continue
		}
		ask, err := priceutil.Decode(fields[3])
		if err != nil {
			logs.Warnf("pricing: line %d bad ask: %v", lineNo, err)
			continue
		}

		bond, err := productdb.QueryProduct(cusip)
		if err != nil {
			logs.Warnf("pricing: line %d unknown product %q", lineNo, cusip)
			continue
		}

		mid := (bid + ask) / 2.0
		spread := ask - bid

		if err := c.service.OnMessage(model.NewPrice(bond, mid, spread)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
