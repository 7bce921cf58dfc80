package marketdata

import (
	"strings"
	"testing"

	"tradingpipeline/internal/model"
)

type recordingListener struct {
	adds []model.OrderBook[model.Bond]
}

func (l *recordingListener) ProcessAdd(data model.OrderBook[model.Bond]) error {
	l.adds = append(l.adds, data)
	return nil
}
func (l *recordingListener) ProcessRemove(model.OrderBook[model.Bond]) error { return nil }
func (l *recordingListener) ProcessUpdate(model.OrderBook[model.Bond]) error { return nil }

func csv(lines ...string) string {
	return "header\n" + strings.Join(lines, "\n") + "\n"
}

func TestSubscribeBuildsAggregatedBook(t *testing.T) {
	svc := New()
	listener := &recordingListener{}
	svc.AddListener(listener)
	conn := NewConnector(svc)

	line := "0,91282CAV3," +
		"99-160,1000000,100-000,1000000," +
		"99-160,2000000,100-000,2000000," +
		"99-140,1000000,100-020,1000000," +
		"99-120,1000000,100-040,1000000," +
		"99-100,1000000,100-060,1000000"

	if err := conn.Subscribe(strings.NewReader(csv(line))); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	book, err := svc.GetData("91282CAV3")
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if len(book.BidStack) != 4 {
		t.Fatalf("expected 4 aggregated bid levels (one duplicate merged), got %d", len(book.BidStack))
	}
	bo, ok := book.BestBidOffer()
	if !ok {
		t.Fatalf("expected a best bid/offer")
	}
	if bo.BidOrder.Price <= 99.0 || bo.BidOrder.Price >= 100.0 {
		t.Fatalf("unexpected best bid price %v", bo.BidOrder.Price)
	}
	if len(listener.adds) == 0 {
		t.Fatalf("expected listener to be notified")
	}
}

func TestSubscribeSkipsUnknownProduct(t *testing.T) {
	svc := New()
	conn := NewConnector(svc)

	line := "0,NOTACUSIP," +
		"99-160,1000000,100-000,1000000," +
		"99-160,1000000,100-000,1000000," +
		"99-160,1000000,100-000,1000000," +
		"99-160,1000000,100-000,1000000," +
		"99-160,1000000,100-000,1000000"

	if err := conn.Subscribe(strings.NewReader(csv(line))); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := svc.GetData("NOTACUSIP"); err == nil {
		t.Fatalf("expected unknown product to stay unrecorded")
	}
}

func TestSubscribeSkipsMalformedLine(t *testing.T) {
	svc := New()
	conn := NewConnector(svc)

	if err := conn.Subscribe(strings.NewReader(csv("0,91282CAV3,bad"))); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	book, err := svc.GetData("91282CAV3")
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if len(book.BidStack) != 0 {
		t.Fatalf("expected malformed line to leave book empty, got %d bid levels", len(book.BidStack))
	}
}
