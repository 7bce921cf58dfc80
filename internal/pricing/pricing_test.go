package pricing

import (
	"strings"
	"testing"

	"tradingpipeline/internal/model"
)

type recordingListener struct {
	added []model.Price[model.Bond]
}

func (l *recordingListener) ProcessAdd(data model.Price[model.Bond]) error {
	l.added = append(l.added, data)
	return nil
}
func (l *recordingListener) ProcessRemove(model.Price[model.Bond]) error { return nil }
func (l *recordingListener) ProcessUpdate(model.Price[model.Bond]) error { return nil }

func TestSubscribeComputesMidAndSpread(t *testing.T) {
	svc := New()
	listener := &recordingListener{}
	svc.AddListener(listener)
	conn := NewConnector(svc)

	data := "Timestamp,CUSIP,Bid,Ask\n" +
		"2024-01-01,91282CAV3,99-160,100-000\n"

	if err := conn.Subscribe(strings.NewReader(data)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	price, err := svc.GetData("91282CAV3")
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if price.MidFloat() <= 99.5 || price.MidFloat() >= 100.0 {
		t.Fatalf("mid = %v, want between 99.5 and 100", price.MidFloat())
	}
	if len(listener.added) != 1 {
		t.Fatalf("expected one notification, got %d", len(listener.added))
	}
}

func TestSubscribeSkipsUnknownProduct(t *testing.T) {
	svc := New()
	conn := NewConnector(svc)
	data := "Timestamp,CUSIP,Bid,Ask\n2024-01-01,BOGUS,99-160,100-000\n"

	if err := conn.Subscribe(strings.NewReader(data)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := svc.GetData("BOGUS"); err == nil {
		t.Fatalf("expected no data stored for unknown product")
	}
}
