package datagen

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateOrderBookWritesHeaderAndTicks(t *testing.T) {
	var priceBuf, depthBuf bytes.Buffer
	g := New(42)

	if err := g.GenerateOrderBook([]string{"91282CAV3"}, &priceBuf, &depthBuf, 5); err != nil {
		t.Fatalf("GenerateOrderBook: %v", err)
	}

	priceLines := strings.Split(strings.TrimSpace(priceBuf.String()), "\n")
	if len(priceLines) != 6 { // header + 5 ticks
		t.Fatalf("price lines = %d, want 6", len(priceLines))
	}
	if !strings.HasPrefix(priceLines[0], "Timestamp,CUSIP,Bid,Ask,Spread") {
		t.Fatalf("unexpected price header: %q", priceLines[0])
	}

	depthLines := strings.Split(strings.TrimSpace(depthBuf.String()), "\n")
	if len(depthLines) != 6 {
		t.Fatalf("depth lines = %d, want 6", len(depthLines))
	}
	fields := strings.Split(depthLines[1], ",")
	if len(fields) != 2+4*5 {
		t.Fatalf("depth tick field count = %d, want %d", len(fields), 2+4*5)
	}
}

func TestGenerateTradesProducesBothSides(t *testing.T) {
	var buf bytes.Buffer
	g := New(7)
	if err := g.GenerateTrades([]string{"91282CAV3"}, &buf); err != nil {
		t.Fatalf("GenerateTrades: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != ticksPerProduct {
		t.Fatalf("trade lines = %d, want %d", len(lines), ticksPerProduct)
	}
	if !strings.Contains(buf.String(), "BUY") || !strings.Contains(buf.String(), "SELL") {
		t.Fatalf("expected both BUY and SELL trades, got %q", buf.String())
	}
}

func TestGenerateInquiriesStartReceived(t *testing.T) {
	var buf bytes.Buffer
	g := New(7)
	if err := g.GenerateInquiries([]string{"91282CAV3"}, &buf); err != nil {
		t.Fatalf("GenerateInquiries: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != ticksPerProduct {
		t.Fatalf("inquiry lines = %d, want %d", len(lines), ticksPerProduct)
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "RECEIVED") {
			t.Fatalf("expected RECEIVED state, got %q", line)
		}
	}
}
