// Package inquiry implements InquiryService, the self-quoting client
// inquiry workflow, and its text Connector.
//
// The original C++ service reaches DONE by way of OnMessage recursing
// into itself through the connector (RECEIVED publishes a QUOTED
// message back into OnMessage, whose QUOTED branch notifies listeners
// and falls through to a second, unconditional notify at the end of
// the outer call) -- a single inbound RECEIVED message can fire three
// listener notifications for what is conceptually one state change.
// Here OnMessage resolves a RECEIVED or QUOTED inquiry straight
// through to DONE in one pass and notifies listeners exactly once.
package inquiry

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

// Service manages inquiries keyed by inquiry id.
type Service struct {
	soa.ListenerSet[model.Inquiry[model.Bond]]
	inquiries map[string]model.Inquiry[model.Bond]
	connector *Connector
}

// New constructs an empty inquiry service.
func New() *Service {
	s := &Service{inquiries: make(map[string]model.Inquiry[model.Bond])}
	s.connector = &Connector{service: s}
	return s
}

// GetData returns the stored inquiry for inquiryID.
func (s *Service) GetData(inquiryID string) (model.Inquiry[model.Bond], error) {
	v, ok := s.inquiries[inquiryID]
	if !ok {
		return model.Inquiry[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, inquiryID)
	}
	return v, nil
}

// Connector returns the service's connector.
func (s *Service) Connector() *Connector { return s.connector }

// OnMessage advances a RECEIVED or QUOTED inquiry straight to DONE,
// leaves any other state as given, stores or evicts it accordingly,
// and notifies listeners exactly once with the resulting inquiry.
func (s *Service) OnMessage(data model.Inquiry[model.Bond]) error {
	switch data.State {
	case model.Received, model.Quoted:
		data = data.SetState(model.Done)
	}

	if data.State == model.Done {
		delete(s.inquiries, data.InquiryID)
	} else {
		s.inquiries[data.InquiryID] = data
	}

	return s.NotifyAdd(data)
}

// SendQuote prices inquiryId and pushes it through OnMessage, which
// carries it to DONE.
func (s *Service) SendQuote(inquiryID string, price float64) error {
	data, err := s.GetData(inquiryID)
	if err != nil {
		return err
	}
	data = data.SetPrice(price).SetState(model.Quoted)
	return s.OnMessage(data)
}

// RejectInquiry marks inquiryId REJECTED and pushes it through OnMessage.
func (s *Service) RejectInquiry(inquiryID string) error {
	data, err := s.GetData(inquiryID)
	if err != nil {
		return err
	}
	data = data.SetState(model.Rejected)
	return s.OnMessage(data)
}

// Connector handles inbound inquiry subscription for the inquiry
// service.
type Connector struct {
	service *Service
}

// Subscribe reads InquiryId,ProductId,Side,Quantity,Price,State lines
// from r and feeds each one into the service via OnMessage.
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
			logs.Warnf("inquiry: line %d malformed: %q", lineNo, line)
			continue
		}

		bond, err := productdb.QueryProduct(fields[1])
		if err != nil {
			logs.Warnf("inquiry: line %d unknown product %q", lineNo, fields[1])
			continue
		}
		side, ok := parseSide(fields[2])
		if !ok {
			logs.Warnf("inquiry: line %d unknown side: %q", lineNo, fields[2])
			continue
		}
		quantity, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			logs.Warnf("inquiry: line %d malformed quantity: %q", lineNo, fields[3])
			continue
		}
		price, err := priceutil.Decode(fields[4])
		if err != nil {
			logs.Warnf("inquiry: line %d malformed price: %q", lineNo, fields[4])
			continue
		}

		inquiry := model.Inquiry[model.Bond]{
			InquiryID: fields[0],
			Product:   bond,
			Side:      side,
			Quantity:  quantity,
			Price:     price,
			State:     parseState(fields[5]),
		}
		if err := c.service.OnMessage(inquiry); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseSide(s string) (model.TradeSide, bool) {
	switch s {
	case "BUY":
		return model.Buy, true
	case "SELL":
		return model.Sell, true
	default:
		return model.TradeSide(0), false
	}
}

func parseState(s string) model.InquiryState {
	switch s {
	case "RECEIVED":
		return model.Received
	case "QUOTED":
		return model.Quoted
	case "DONE":
		return model.Done
	case "REJECTED":
		return model.Rejected
	default:
		return model.CustomerRejected
	}
}
