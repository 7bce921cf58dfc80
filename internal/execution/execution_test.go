package execution

import (
	"bytes"
	"strings"
	"testing"

	"tradingpipeline/internal/model"
)

func TestAlgoExecutionListenerBooksAndPublishes(t *testing.T) {
	var buf bytes.Buffer
	svc := New(&buf)
	listener := NewAlgoExecutionListener(svc)

	bond := model.Bond{CUSIP: "91282CAV3"}
	algoExec := model.AlgoExecution[model.Bond]{
		ExecutionOrder: model.ExecutionOrder[model.Bond]{
			Product: bond, Side: model.Bid, OrderID: "Algo1", OrderType: model.MarketOrder,
			Price: 99.5, VisibleQuantity: 1_000_000, HiddenQuantity: 0,
			ParentOrderID: "AlgoParent1", IsChildOrder: false,
		},
		Market: model.Brokertec,
	}

	if err := listener.ProcessAdd(algoExec); err != nil {
		t.Fatalf("ProcessAdd: %v", err)
	}

	stored, err := svc.GetData("Algo1")
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if stored.Price != 99.5 {
		t.Fatalf("stored price = %v, want 99.5", stored.Price)
	}
	if !strings.Contains(buf.String(), "Algo1") {
		t.Fatalf("expected published output to mention order id, got %q", buf.String())
	}
}

func TestAddExecutionOrderReplacesByOrderID(t *testing.T) {
	var buf bytes.Buffer
	svc := New(&buf)
	bond := model.Bond{CUSIP: "91282CAV3"}
	order := model.ExecutionOrder[model.Bond]{Product: bond, OrderID: "Algo1", Price: 99.0}

	if err := svc.AddExecutionOrder(model.AlgoExecution[model.Bond]{ExecutionOrder: order, Market: model.Brokertec}); err != nil {
		t.Fatalf("AddExecutionOrder: %v", err)
	}
	order.Price = 100.0
	if err := svc.AddExecutionOrder(model.AlgoExecution[model.Bond]{ExecutionOrder: order, Market: model.Brokertec}); err != nil {
		t.Fatalf("AddExecutionOrder: %v", err)
	}

	stored, err := svc.GetData("Algo1")
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if stored.Price != 100.0 {
		t.Fatalf("stored price = %v, want replaced value 100.0", stored.Price)
	}
}
