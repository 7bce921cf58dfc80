// Package streaming implements StreamingService, which republishes
// bid/offer price streams to an io.Writer, and the listener that feeds
// it from AlgoStreamingService.
package streaming

import (
	"fmt"
	"io"

	"tradingpipeline/internal/errorsx"
	"tradingpipeline/internal/model"
	"tradingpipeline/internal/soa"
)

// Service stores the latest outgoing PriceStream per product and hands
// it to its Connector for publication.
type Service struct {
	soa.ListenerSet[model.PriceStream[model.Bond]]
	streams   map[string]model.PriceStream[model.Bond]
	connector *Connector
}

// New constructs a streaming service that writes through w.
func New(w io.Writer) *Service {
	s := &Service{streams: make(map[string]model.PriceStream[model.Bond])}
	s.connector = &Connector{w: w}
	return s
}

// GetData returns the latest PriceStream stored for a CUSIP.
func (s *Service) GetData(key string) (model.PriceStream[model.Bond], error) {
	v, ok := s.streams[key]
	if !ok {
		return model.PriceStream[model.Bond]{}, errorsx.Wrap(errorsx.ErrNotFound, key)
	}
	return v, nil
}

// OnMessage is a no-op placeholder, matching StreamingService::OnMessage.
func (s *Service) OnMessage(model.PriceStream[model.Bond]) error { return nil }

// AddPriceStream unwraps algoStream's PriceStream, replaces the stored
// stream for the product, and notifies listeners.
func (s *Service) AddPriceStream(algoStream model.AlgoStream[model.Bond]) error {
	priceStream := algoStream.PriceStream
	key := priceStream.Product.GetProductId()
	s.streams[key] = priceStream
	return s.NotifyAdd(priceStream)
}

// PublishPrice renders priceStream to the service's connector.
func (s *Service) PublishPrice(priceStream model.PriceStream[model.Bond]) error {
	return s.connector.Publish(priceStream)
}

// Connector is the outbound text writer for price streams.
type Connector struct {
	w io.Writer
}

// Publish renders a formatted representation of the price stream.
func (c *Connector) Publish(data model.PriceStream[model.Bond]) error {
	_, err := fmt.Fprintf(c.w,
		"Price Stream (Product %s):\n\tBid\tPrice: %.6f\tVisibleQuantity: %d\tHiddenQuantity: %d\n\tAsk\tPrice: %.6f\tVisibleQuantity: %d\tHiddenQuantity: %d\n",
		data.Product.GetProductId(),
		data.BidOrder.Price, data.BidOrder.VisibleQuantity, data.BidOrder.HiddenQuantity,
		data.OfferOrder.Price, data.OfferOrder.VisibleQuantity, data.OfferOrder.HiddenQuantity,
	)
	return err
}

// AlgoStreamListener subscribes to AlgoStreamingService and forwards
// every update into the streaming service, matching
// StreamingServiceListener::ProcessAdd.
type AlgoStreamListener struct {
	service *Service
}

// NewAlgoStreamListener builds a listener wired to service.
func NewAlgoStreamListener(service *Service) *AlgoStreamListener {
	return &AlgoStreamListener{service: service}
}

func (l *AlgoStreamListener) ProcessAdd(data model.AlgoStream[model.Bond]) error {
	if err := l.service.AddPriceStream(data); err != nil {
		return err
	}
	return l.service.PublishPrice(data.PriceStream)
}

func (l *AlgoStreamListener) ProcessRemove(model.AlgoStream[model.Bond]) error { return nil }
func (l *AlgoStreamListener) ProcessUpdate(model.AlgoStream[model.Bond]) error { return nil }
