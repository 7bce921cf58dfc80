package main

import (
	"testing"

	"tradingpipeline/internal/model"
	"tradingpipeline/internal/position"
	"tradingpipeline/internal/productdb"
	"tradingpipeline/internal/risk"
	"tradingpipeline/internal/tradebooking"
)

// TestTradeToRiskWiring exercises the same trade booking -> position ->
// risk listener chain wireServices builds, without going through a CLI
// run, and checks the end state after two trades on the same bond.
func TestTradeToRiskWiring(t *testing.T) {
	tradeBookingSvc := tradebooking.New()
	positionSvc := position.New()
	riskSvc := risk.New()

	tradeBookingSvc.AddListener(position.NewTradeListener(positionSvc))
	positionSvc.AddListener(risk.NewPositionListener(riskSvc))

	bond, err := productdb.QueryProduct("91282CAV3")
	if err != nil {
		t.Fatalf("QueryProduct: %v", err)
	}

	trades := []model.Trade[model.Bond]{
		{Product: bond, TradeID: "T1", Book: "TRSY1", Quantity: 1_000_000, Side: model.Buy},
		{Product: bond, TradeID: "T2", Book: "TRSY2", Quantity: 400_000, Side: model.Sell},
	}
	for _, trade := range trades {
		if err := tradeBookingSvc.OnMessage(trade); err != nil {
			t.Fatalf("OnMessage: %v", err)
		}
	}

	pos, err := positionSvc.GetData(bond.GetProductId())
	if err != nil {
		t.Fatalf("position GetData: %v", err)
	}
	if got, want := pos.GetAggregatePosition(), int64(600_000); got != want {
		t.Fatalf("aggregate position = %d, want %d", got, want)
	}

	pv01, err := riskSvc.GetData(bond.GetProductId())
	if err != nil {
		t.Fatalf("risk GetData: %v", err)
	}
	if pv01.Quantity != 600_000 {
		t.Fatalf("risk quantity = %d, want 600000", pv01.Quantity)
	}

	sector := model.BucketedSector[model.Bond]{Name: "ALL", Products: []model.Bond{bond}}
	bucketed := riskSvc.GetBucketedRisk(sector)
	if bucketed.Quantity != 600_000 {
		t.Fatalf("bucketed quantity = %d, want 600000", bucketed.Quantity)
	}
}
