package guisink

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tradingpipeline/internal/model"
)

func TestPublishThrottledPriceSkipsWithinInterval(t *testing.T) {
	var buf bytes.Buffer
	svc := New(&buf)
	svc.throttle = time.Hour // never elapses during the test

	bond := model.Bond{CUSIP: "91282CAV3"}
	price := model.NewPrice(bond, 99.5, 0.0625)

	if err := svc.PublishThrottledPrice(price); err != nil {
		t.Fatalf("PublishThrottledPrice: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output before throttle elapses, got %q", buf.String())
	}
}

func TestPublishThrottledPriceWritesAfterIntervalElapses(t *testing.T) {
	var buf bytes.Buffer
	svc := New(&buf)
	svc.throttle = time.Millisecond
	svc.startTime = time.Now().Add(-time.Hour)

	bond := model.Bond{CUSIP: "91282CAV3"}
	price := model.NewPrice(bond, 99.5, 0.0625)

	if err := svc.PublishThrottledPrice(price); err != nil {
		t.Fatalf("PublishThrottledPrice: %v", err)
	}
	if !strings.Contains(buf.String(), "91282CAV3") {
		t.Fatalf("expected output to mention product id, got %q", buf.String())
	}
}

func TestPriceListenerForwardsToPublishThrottledPrice(t *testing.T) {
	var buf bytes.Buffer
	svc := New(&buf)
	svc.startTime = time.Now().Add(-time.Hour)
	listener := NewPriceListener(svc)

	bond := model.Bond{CUSIP: "91282CAV3"}
	price := model.NewPrice(bond, 99.5, 0.0625)
	if err := listener.ProcessAdd(price); err != nil {
		t.Fatalf("ProcessAdd: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected listener to trigger a publish")
	}
}
