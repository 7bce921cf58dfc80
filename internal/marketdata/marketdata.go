// Package marketdata implements MarketDataService, which maintains a
// per-product order book aggregated to one Order per distinct price
// level, and MarketDataConnector, the inbound connector that parses
// depth-of-book text lines into it.
package marketdata

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/yanun0323/logs"

	"tradingpipeline/internal/model"
	"tradingpipeline/internal/priceutil"
	"tradingpipeline/internal/productdb"
	"tradingpipeline/internal/soa"
)

// BookDepth is the number of bid/offer level pairs each input line
// carries.
const BookDepth = 5

// Service manages and aggregates order books, keyed by CUSIP.
type Service struct {
	soa.ListenerSet[model.OrderBook[model.Bond]]
	books map[string]model.OrderBook[model.Bond]
}

// New constructs an empty market data service.
func New() *Service {
	return &Service{books: make(map[string]model.OrderBook[model.Bond])}
}

// GetData returns the order book for key, creating an empty one seeded
// from the product table if this is the first reference to key.
func (s *Service) GetData(key string) (model.OrderBook[model.Bond], error) {
	if book, ok := s.books[key]; ok {
		return book, nil
	}
	bond, err := productdb.QueryProduct(key)
	if err != nil {
		return model.OrderBook[model.Bond]{}, err
	}
	book := model.OrderBook[model.Bond]{Product: bond}
	s.books[key] = book
	return book, nil
}

// OnMessage aggregates data's duplicate price levels, replaces the
// stored book for the product with the aggregated result, and
// notifies listeners of that result, matching
// MarketDataService::OnMessage's aggregate-then-notify flow.
func (s *Service) OnMessage(data model.OrderBook[model.Bond]) error {
	agg := data.AggregateDepth()
	s.books[agg.Product.GetProductId()] = agg
	return s.NotifyAdd(agg)
}

// BestBidOffer returns the best bid/offer for productId.
func (s *Service) BestBidOffer(productId string) (model.BidOffer, bool) {
	book, ok := s.books[productId]
	if !ok {
		return model.BidOffer{}, false
	}
	return book.BestBidOffer()
}

// AggregateDepth collapses the stored book's duplicate price levels,
// stores the aggregated result, and returns it.
func (s *Service) AggregateDepth(productId string) (model.OrderBook[model.Bond], error) {
	book, err := s.GetData(productId)
	if err != nil {
		return model.OrderBook[model.Bond]{}, err
	}
	agg := book.AggregateDepth()
	s.books[productId] = agg
	return agg, nil
}

// Connector feeds depth-of-book text lines into a Service.
type Connector struct {
	service *Service
}

// NewConnector builds a connector wired to service.
func NewConnector(service *Service) *Connector {
	return &Connector{service: service}
}

// Subscribe reads Timestamp,CUSIP,Bid1,Qty1,Offer1,Qty1,...,Bid5,Qty5,Offer5,Qty5
// lines (skipping the header row) from r, appends BookDepth levels to
// each side of the named product's book, aggregates duplicate price
// levels, and notifies listeners of the result.
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
		if len(fields) < 2+4*BookDepth {
			logs.Warnf("marketdata: line %d malformed: %q", lineNo, line)
			continue
		}

		productId := fields[1]
		book, err := c.service.GetData(productId)
		if err != nil {
			logs.Warnf("marketdata: line %d unknown product %q", lineNo, productId)
			continue
		}

		malformed := false
		for i := 0; i < BookDepth; i++ {
			bidPrice, err := priceutil.Decode(fields[4*i+2])
			if err != nil {
				malformed = true
				break
			}
			bidQty, err := strconv.ParseInt(fields[4*i+3], 10, 64)
			if err != nil {
				malformed = true
				break
			}
			offerPrice, err := priceutil.Decode(fields[4*i+4])
			if err != nil {
				malformed = true
				break
			}
			offerQty, err := strconv.ParseInt(fields[4*i+5], 10, 64)
			if err != nil {
				malformed = true
				break
			}
			book.BidStack = append(book.BidStack, model.Order{Price: bidPrice, Quantity: bidQty, Side: model.Bid})
			book.OfferStack = append(book.OfferStack, model.Order{Price: offerPrice, Quantity: offerQty, Side: model.Offer})
		}
		if malformed {
			logs.Warnf("marketdata: line %d malformed depth fields", lineNo)
			continue
		}

		if err := c.service.OnMessage(book); err != nil {
			return err
		}
	}
	return scanner.Err()
}
