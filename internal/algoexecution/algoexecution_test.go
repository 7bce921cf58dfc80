package algoexecution

import (
	"testing"

	"tradingpipeline/internal/model"
)

func bookWithSpread(bond model.Bond, bidPrice, offerPrice float64) model.OrderBook[model.Bond] {
	return model.OrderBook[model.Bond]{
		Product: bond,
		BidStack: []model.Order{
			{Price: bidPrice, Quantity: 1_000_000, Side: model.Bid},
		},
		OfferStack: []model.Order{
			{Price: offerPrice, Quantity: 2_000_000, Side: model.Offer},
		},
	}
}

func TestSimpleOrderFactoryAlternatesOnTightSpread(t *testing.T) {
	f := NewSimpleOrderFactory(1)
	bond := model.Bond{CUSIP: "91282CAV3"}
	book := bookWithSpread(bond, 99.5, 99.5+1.0/256.0)

	first := f.CreateExecutionOrder(book, 0)
	if first.Side != model.Bid {
		t.Fatalf("count=0 side = %v, want Bid", first.Side)
	}
	second := f.CreateExecutionOrder(book, 1)
	if second.Side != model.Offer {
		t.Fatalf("count=1 side = %v, want Offer", second.Side)
	}
}

func TestSimpleOrderFactoryHitsBidOnWideSpread(t *testing.T) {
	f := NewSimpleOrderFactory(1)
	bond := model.Bond{CUSIP: "91282CAV3"}
	book := bookWithSpread(bond, 99.0, 101.0)

	order := f.CreateExecutionOrder(book, 1)
	if order.Side != model.Bid {
		t.Fatalf("wide spread side = %v, want Bid", order.Side)
	}
	if order.Price != 99.0 {
		t.Fatalf("wide spread price = %v, want bid price 99.0", order.Price)
	}
}

func TestAlgoExecuteOrderStoresAndNotifies(t *testing.T) {
	svc := New(NewSimpleOrderFactory(7))
	bond := model.Bond{CUSIP: "91282CAV3"}
	book := bookWithSpread(bond, 99.0, 101.0)

	if err := svc.AlgoExecuteOrder(book); err != nil {
		t.Fatalf("AlgoExecuteOrder: %v", err)
	}
	exec, err := svc.GetData(bond.CUSIP)
	if err != nil {
		t.Fatalf("GetData: %v", err)
	}
	if exec.Market != model.Brokertec {
		t.Fatalf("market = %v, want Brokertec", exec.Market)
	}
	if exec.ExecutionOrder.OrderID == "" {
		t.Fatalf("expected a generated order id")
	}
}
