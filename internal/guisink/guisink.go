// Package guisink implements GUIService, which throttles price
// updates before appending them to a GUI-facing text sink.
package guisink

import (
	"fmt"
	"io"
	"time"

	"tradingpipeline/internal/model"
)

const timeLayout = "2006-01-02 15:04:05.000"

// defaultThrottle mirrors GUIService's hardcoded 300ms interval.
const defaultThrottle = 300 * time.Millisecond

// Service throttles outgoing price updates to at most one per
// throttle interval, publishing that one through its Connector and
// dropping the others.
type Service struct {
	connector *Connector
	throttle  time.Duration
	startTime time.Time
}

// New constructs a GUI service writing through w, throttled to
// defaultThrottle.
func New(w io.Writer) *Service {
	return &Service{
		connector: &Connector{w: w},
		throttle:  defaultThrottle,
		startTime: time.Now(),
	}
}

// OnMessage is a no-op placeholder, matching GUIService::OnMessage.
func (s *Service) OnMessage(model.Price[model.Bond]) error { return nil }

// Throttle returns the current throttling interval.
func (s *Service) Throttle() time.Duration { return s.throttle }

// PublishThrottledPrice publishes price through the connector only if
// more than Throttle has elapsed since the last publication.
func (s *Service) PublishThrottledPrice(price model.Price[model.Bond]) error {
	now := time.Now()
	if now.Sub(s.startTime) <= s.throttle {
		return nil
	}
	s.startTime = now
	return s.connector.Publish(price)
}

// Connector appends throttled price updates to a GUI-facing text file.
type Connector struct {
	w io.Writer
}

// Publish writes a timestamped line of the form
// "<time>,<productId> Mid: <mid>, Spread: <spread>".
func (c *Connector) Publish(price model.Price[model.Bond]) error {
	_, err := fmt.Fprintf(c.w, "%s,%s Mid: %.6f, Spread: %.6f\n",
		time.Now().Format(timeLayout),
		price.Product.GetProductId(), price.MidFloat(), price.SpreadFloat())
	return err
}

// PriceListener subscribes to PricingService and forwards every
// update into the throttled GUI sink, matching
// GUIServiceListener::ProcessAdd.
type PriceListener struct {
	service *Service
}

// NewPriceListener builds a listener wired to service.
func NewPriceListener(service *Service) *PriceListener {
	return &PriceListener{service: service}
}

func (l *PriceListener) ProcessAdd(data model.Price[model.Bond]) error {
	return l.service.PublishThrottledPrice(data)
}

func (l *PriceListener) ProcessRemove(model.Price[model.Bond]) error { return nil }
func (l *PriceListener) ProcessUpdate(model.Price[model.Bond]) error { return nil }
