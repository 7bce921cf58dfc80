// Package tradebooking implements TradeBookingService, the keyed
// store of booked trades, its inbound text Connector, and the listener
// that turns filled ExecutionOrders into Trades.
package tradebooking

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/yanun0323/logs"

	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/priceutil"
	"tradingpipeline/internal/productdb"
	"tradingpipeline/internal/soa"
)

// Service stores trades keyed by trade id.
type Service struct {
	soa.ListenerSet[model.Trade[model.Bond]]
	trades map[string]model.Trade[model.Bond]
}

// New constructs an empty trade booking service.
func New() *Service {
	return &Service{trades: make(map[string]model.Trade[model.Bond])}
}

// GetData returns the stored trade for tradeID.
func (s *Service) GetData(tradeID string) (model.Trade[model.Bond], error) {
	v, ok := s.trades[tradeID]
	if !ok {
		return model.Trade[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, tradeID)
	}
	return v, nil
}

// OnMessage stores an inbound trade keyed by trade id and notifies
// listeners, matching TradeBookingService::OnMessage.
func (s *Service) OnMessage(data model.Trade[model.Bond]) error {
	s.trades[data.TradeID] = data
	return s.NotifyAdd(data)
}

// BookTrade notifies listeners of trade without storing it, matching
// TradeBookingService::BookTrade's direct fan-out to listeners.
func (s *Service) BookTrade(trade model.Trade[model.Bond]) error {
	return s.NotifyAdd(trade)
}

// Connector feeds trade text lines into a Service.
type Connector struct {
	service *Service
}

// NewConnector builds a connector wired to service.
func NewConnector(service *Service) *Connector {
	return &Connector{service: service}
}

// Subscribe reads ProductId,TradeId,Price,Book,Quantity,Side lines
// from r and books each one via OnMessage.
func (c *Connector) Subscribe(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 6 {
			logs.Warnf("tradebooking: line %d malformed: %q", lineNo, line)
			continue
		}

		bond, err := productdb.QueryProduct(fields[0])
		if err != nil {
			logs.Warnf("tradebooking: line %d unknown product %q", lineNo, fields[0])
			continue
		}
		price, err := priceutil.Decode(fields[2])
		if err != nil {
			logs.Warnf("tradebooking: line %d malformed price: %q", lineNo, fields[2])
			continue
		}
		quantity, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			logs.Warnf("tradebooking: line %d malformed quantity: %q", lineNo, fields[4])
			continue
		}
		side, ok := parseTradeSide(fields[5])
		if !ok {
			logs.Warnf("tradebooking: line %d unknown side: %q", lineNo, fields[5])
			continue
		}

		trade := model.Trade[model.Bond]{
			Product:  bond,
			TradeID:  fields[1],
			Price:    price,
			Book:     fields[3],
			Quantity: quantity,
			Side:     side,
		}
		if err := c.service.OnMessage(trade); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseTradeSide(s string) (model.TradeSide, bool) {
	switch s {
	case "BUY":
		return model.Buy, true
	case "SELL":
		return model.Sell, true
	default:
		return model.TradeSide(0), false
	}
}

// bookRotation is the number of TRSY books ExecutionListener cycles
// through.
const bookRotation = 3

// ExecutionListener subscribes to ExecutionService and books each
// filled order as a trade, matching TradeBookingServiceListener::ProcessAdd.
type ExecutionListener struct {
	service *Service
	count   int64
}

// NewExecutionListener builds a listener wired to service.
func NewExecutionListener(service *Service) *ExecutionListener {
	return &ExecutionListener{service: service}
}

func (l *ExecutionListener) ProcessAdd(order model.ExecutionOrder[model.Bond]) error {
	totalQuantity := order.VisibleQuantity + order.HiddenQuantity
	tradeSide := model.Sell
	if order.Side == model.Bid {
		tradeSide = model.Buy
	}
	book := "TRSY" + strconv.FormatInt(l.count%bookRotation+1, 10)
	l.count++

	trade := model.Trade[model.Bond]{
		Product:  order.Product,
		TradeID:  order.OrderID,
		Price:    order.Price,
		Book:     book,
		Quantity: totalQuantity,
		Side:     tradeSide,
	}
	return l.service.BookTrade(trade)
}

func (l *ExecutionListener) ProcessRemove(model.ExecutionOrder[model.Bond]) error { return nil }
func (l *ExecutionListener) ProcessUpdate(model.ExecutionOrder[model.Bond]) error { return nil }
