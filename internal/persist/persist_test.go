package persist

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"tradingpipeline/internal/model"
)

type bufSink struct {
	records []string
}

func (s *bufSink) Persist(key, line string) error {
	s.records = append(s.records, key+"|"+line)
	return nil
}

func renderPosition(pos model.Position[model.Bond]) string {
	return fmt.Sprintf("%s,%d", pos.Product.GetProductId(), pos.GetAggregatePosition())
}

func keyOfPosition(pos model.Position[model.Bond]) string {
	return pos.Product.GetProductId()
}

func TestListenerPersistsKeyedByProduct(t *testing.T) {
	sink := &bufSink{}
	svc := NewService(sink, keyOfPosition, renderPosition)
	listener := NewListener(svc)

	bond := model.Bond{CUSIP: "91282CAV3"}
	pos := model.NewPosition(bond)
	pos.AddPosition("TRSY1", 1_000_000)

	if err := listener.ProcessAdd(pos); err != nil {
		t.Fatalf("ProcessAdd: %v", err)
	}
	stored, err := svc.GetData(bond.CUSIP)
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if stored.GetAggregatePosition() != 1_000_000 {
		t.Fatalf("cached aggregate = %d, want 1000000", stored.GetAggregatePosition())
	}
	if len(sink.records) != 1 || !strings.Contains(sink.records[0], "91282CAV3") {
		t.Fatalf("expected a persisted record mentioning the product id, got %v", sink.records)
	}
}

type testWriter struct {
	bytes.Buffer
}

func (w *testWriter) WriteString(s string) (int, error) {
	return w.Buffer.WriteString(s)
}

func TestCSVSinkWritesTimestampedLine(t *testing.T) {
	w := &testWriter{}
	sink := NewCSVSink(w)

	if err := sink.Persist("91282CAV3", "Mid: 99.5, Spread: 0.0625"); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if !strings.Contains(w.String(), "91282CAV3") || !strings.Contains(w.String(), "Mid: 99.5") {
		t.Fatalf("unexpected output: %q", w.String())
	}
}
