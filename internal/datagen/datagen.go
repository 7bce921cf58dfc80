// Package datagen produces the synthetic prices/market-data/trades/
// inquiries text files the pipeline's connectors subscribe to, for
// demo and test runs where no real feed is available.
package datagen

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"tradingpipeline/internal/priceutil"
)

const timeLayout = "2006-01-02 15:04:05.000"

// idCharset mirrors RandomUtils::GenerateRandomId's alphabet.
const idCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator produces synthetic market data seeded from a single RNG,
// matching the teacher's pattern of a struct-held *rand.Rand field.
type Generator struct {
	rng *rand.Rand
}

// New constructs a generator seeded from seed. A seed of 0 derives one
// from the current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) randomID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idCharset[g.rng.Intn(len(idCharset))]
	}
	return string(b)
}

// randomSpread mirrors RandomUtils::GenRandomSpread's 1/128..1/64 range.
func (g *Generator) randomSpread() float64 {
	return 1.0/128.0 + g.rng.Float64()*(1.0/64.0-1.0/128.0)
}

// oscillate steps value by step in the current direction, flipping
// direction at the bounds, mirroring DataGenerator::OscillateValue.
func oscillate(value float64, increasing bool, step, upper, lower float64) (float64, bool) {
	if increasing {
		value += step
		if value >= upper {
			increasing = false
		}
	} else {
		value -= step
		if value <= lower {
			increasing = true
		}
	}
	return value, increasing
}

// bookDepth is the number of price levels GenerateOrderBook writes per
// side of the aggregated book output, matching MarketDataService's
// BookDepth.
const bookDepth = 5

// GenerateOrderBook writes numDataPoints ticks per product to both
// priceW ("Timestamp,CUSIP,Bid,Ask,Spread") and depthW
// ("Timestamp,CUSIP,Bid1,BidSize1,Ask1,AskSize1,..."), oscillating a
// synthetic mid price and fixed depth spread over time.
func (g *Generator) GenerateOrderBook(products []string, priceW, depthW io.Writer, numDataPoints int) error {
	if _, err := fmt.Fprintln(priceW, "Timestamp,CUSIP,Bid,Ask,Spread"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(depthW, "Timestamp,CUSIP,Bid1,BidSize1,Ask1,AskSize1,Bid2,BidSize2,Ask2,AskSize2,Bid3,BidSize3,Ask3,AskSize3,Bid4,BidSize4,Ask4,AskSize4,Bid5,BidSize5,Ask5,AskSize5"); err != nil {
		return err
	}

	for _, product := range products {
		midPrice := 99.00
		priceIncreasing := true
		spreadIncreasing := true
		fixSpread := 1.0 / 128.0
		curTime := time.Now().UTC()

		for i := 0; i < numDataPoints; i++ {
			randomSpread := g.randomSpread()
			curTime = curTime.Add(time.Duration(1+g.rng.Intn(20)) * time.Millisecond)
			timestamp := curTime.Format(timeLayout)

			if err := writeOrderBookTick(priceW, depthW, timestamp, product, midPrice, randomSpread, fixSpread); err != nil {
				return err
			}

			midPrice, priceIncreasing = oscillate(midPrice, priceIncreasing, 1.0/256.0, 101.0, 99.0)
			fixSpread, spreadIncreasing = oscillate(fixSpread, spreadIncreasing, 1.0/128.0, 1.0/32.0, 1.0/128.0)
		}
	}
	return nil
}

func writeOrderBookTick(priceW, depthW io.Writer, timestamp, product string, midPrice, randomSpread, fixSpread float64) error {
	randomBid := midPrice - randomSpread/2.0
	randomAsk := midPrice + randomSpread/2.0
	if _, err := fmt.Fprintf(priceW, "%s,%s,%s,%s,%v\n", timestamp, product,
		priceutil.Encode(randomBid), priceutil.Encode(randomAsk), randomSpread); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(depthW, "%s,%s", timestamp, product); err != nil {
		return err
	}
	for level := 1; level <= bookDepth; level++ {
		fixBid := midPrice - fixSpread*float64(level)/2.0
		fixAsk := midPrice + fixSpread*float64(level)/2.0
		size := level * 1_000_000
		if _, err := fmt.Fprintf(depthW, ",%s,%d,%s,%d",
			priceutil.Encode(fixBid), size, priceutil.Encode(fixAsk), size); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(depthW)
	return err
}

// tradeQuantities mirrors DataGenerator::GenTrades' fixed ladder.
var tradeQuantities = []int64{1_000_000, 2_000_000, 3_000_000, 4_000_000, 5_000_000}

// tradeBooks mirrors DataGenerator::GenTrades' book rotation.
var tradeBooks = []string{"TRSY1", "TRSY2", "TRSY3"}

// ticksPerProduct is the number of synthetic trades or inquiries
// GenerateTrades/GenerateInquiries emits per product.
const ticksPerProduct = 10

// GenerateTrades writes ticksPerProduct trades per product to w as
// "ProductId,TradeId,Price,Book,Quantity,Side" lines, alternating
// BUY/SELL and quoting each side around its own price band.
func (g *Generator) GenerateTrades(products []string, w io.Writer) error {
	for _, product := range products {
		for i := 0; i < ticksPerProduct; i++ {
			side := "SELL"
			low, high := 100.0, 101.0
			if i%2 == 0 {
				side = "BUY"
				low, high = 99.0, 100.0
			}
			tradeID := g.randomID(12)
			price := low + g.rng.Float64()*(high-low)
			quantity := tradeQuantities[i%len(tradeQuantities)]
			book := tradeBooks[i%len(tradeBooks)]

			if _, err := fmt.Fprintf(w, "%s,%s,%s,%s,%d,%s\n",
				product, tradeID, priceutil.Encode(price), book, quantity, side); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateInquiries writes ticksPerProduct inquiries per product to w
// as "InquiryId,ProductId,Side,Quantity,Price,State" lines, all
// starting in the RECEIVED state.
func (g *Generator) GenerateInquiries(products []string, w io.Writer) error {
	for _, product := range products {
		for i := 0; i < ticksPerProduct; i++ {
			side := "SELL"
			low, high := 100.0, 101.0
			if i%2 == 0 {
				side = "BUY"
				low, high = 99.0, 100.0
			}
			inquiryID := g.randomID(12)
			price := low + g.rng.Float64()*(high-low)
			quantity := tradeQuantities[i%len(tradeQuantities)]

			if _, err := fmt.Fprintf(w, "%s,%s,%s,%d,%s,RECEIVED\n",
				inquiryID, product, side, quantity, priceutil.Encode(price)); err != nil {
				return err
			}
		}
	}
	return nil
}
