// Package priceutil converts between the "X-YYZ" bond fraction notation
// used in every input/output text file and plain decimal prices.
//
// X is the integer handle, YY the number of 32nds (zero-padded to two
// digits), and Z the number of 256ths within that 32nd, where a Z of 4
// (an exact half of a 32nd, i.e. 1/64) is conventionally written "+".
package priceutil

import (
	"math"
	"strconv"
	"strings"

	"tradingpipeline/internal/errorsx"
)

const (
	base32              = 32.0
	base256             = 256.0
	fractionalLength    = 3
	fractionalThreshold = 8
)

// Decode parses a fractional price string such as "99-162" or "99-16+"
// into its decimal equivalent. It returns errorsx.ErrMalformedInput,
// wrapped with the offending text, on any parse failure.
func Decode(priceFrac string) (float64, error) {
	dash := strings.IndexByte(priceFrac, '-')
	if dash < 0 {
		return 0, errorsx.Wrap(errorsx.ErrMalformedInput, "price fraction: missing '-' in "+priceFrac)
	}

	whole, err := strconv.ParseFloat(priceFrac[:dash], 64)
	if err != nil {
		return 0, errorsx.Wrap(errorsx.ErrMalformedInput, "price fraction: bad integer part in "+priceFrac)
	}

	frac := priceFrac[dash+1:]
	if len(frac) != fractionalLength {
		return 0, errorsx.Wrap(errorsx.ErrMalformedInput, "price fraction: fractional part must be 3 chars in "+priceFrac)
	}

	zDigit := frac[2]
	if zDigit == '+' {
		zDigit = '4'
	}

	xy, err := strconv.ParseFloat(frac[:2], 64)
	if err != nil {
		return 0, errorsx.Wrap(errorsx.ErrMalformedInput, "price fraction: bad 32nds part in "+priceFrac)
	}
	z, err := strconv.ParseFloat(string(zDigit), 64)
	if err != nil {
		return 0, errorsx.Wrap(errorsx.ErrMalformedInput, "price fraction: bad 256ths part in "+priceFrac)
	}

	return whole + xy/base32 + z/base256, nil
}

// Encode renders a decimal price as an "X-YYZ" fractional string, the
// inverse of Decode up to the 1/256 granularity it can represent.
func Encode(price float64) string {
	intPart := int(math.Floor(price))
	fracPart := price - float64(intPart)

	xy := int(fracPart * base32)
	z := int(fracPart*base256) % fractionalThreshold

	var b strings.Builder
	b.WriteString(strconv.Itoa(intPart))
	b.WriteByte('-')
	if xy < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(xy))
	if z == 4 {
		b.WriteByte('+')
	} else {
		b.WriteString(strconv.Itoa(z))
	}
	return b.String()
}
