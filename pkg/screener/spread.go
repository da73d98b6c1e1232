package screener

import (
	"math"
)

// SpreadQuality buckets a spread percentage independently of the RAG
// rating. Boundaries are half-open on the lower bound: exactly 0.5 is
// "normal", not "tight".
type SpreadQuality string

const (
	SpreadTight    SpreadQuality = "tight"     // < 0.5%
	SpreadNormal   SpreadQuality = "normal"    // [0.5%, 2%)
	SpreadWide     SpreadQuality = "wide"      // [2%, 5%)
	SpreadVeryWide SpreadQuality = "very_wide" // >= 5%
	SpreadUnknown  SpreadQuality = "unknown"
)

// Spread returns the bid-ask spread as a percentage of the midpoint:
// ((ask - bid) / ((ask + bid) / 2)) * 100. It returns nil when either
// side is missing, non-finite or non-positive, or when the book is
// crossed (ask < bid). Equal bid and ask yield exactly 0.
func Spread(bid, ask *float64) *float64 {
	if !validQuote(bid) || !validQuote(ask) {
		return nil
	}
	if *ask < *bid {
		return nil
	}
	if *ask == *bid {
		zero := 0.0
		return &zero
	}
	pct := ((*ask - *bid) / ((*ask + *bid) / 2)) * 100
	return &pct
}

// AbsoluteSpread returns ask - bid under the same null rules as Spread.
func AbsoluteSpread(bid, ask *float64) *float64 {
	if !validQuote(bid) || !validQuote(ask) {
		return nil
	}
	if *ask < *bid {
		return nil
	}
	abs := *ask - *bid
	return &abs
}

// MidPrice returns (bid + ask) / 2 under the same null rules as Spread.
func MidPrice(bid, ask *float64) *float64 {
	if !validQuote(bid) || !validQuote(ask) {
		return nil
	}
	if *ask < *bid {
		return nil
	}
	mid := (*bid + *ask) / 2
	return &mid
}

// QualityOf classifies a spread percentage into a quality tier.
func QualityOf(spread *float64) SpreadQuality {
	if spread == nil || !isFinite(*spread) {
		return SpreadUnknown
	}
	switch {
	case *spread < 0.5:
		return SpreadTight
	case *spread < 2:
		return SpreadNormal
	case *spread < 5:
		return SpreadWide
	default:
		return SpreadVeryWide
	}
}

func validQuote(v *float64) bool {
	return v != nil && isFinite(*v) && *v > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
