package screener

import (
	"github.com/gregtusar/marketlens/pkg/models"
)

// AnalyzeDepth aggregates a validated DepthSnapshot into per-side totals,
// price ranges and counts, plus the spread at the best levels of the
// snapshot. It assumes validated input and does not re-check for a
// crossed book; a crossed snapshot simply produces a negative percentage
// the caller may flag.
func AnalyzeDepth(snap *models.DepthSnapshot) models.DepthAnalysis {
	analysis := models.DepthAnalysis{
		TickerID:  snap.TickerID,
		Timestamp: snap.Timestamp,
		BidCount:  len(snap.Bids),
		AskCount:  len(snap.Asks),
	}

	for _, b := range snap.Bids {
		analysis.TotalBidQty += b.Quantity
	}
	for _, a := range snap.Asks {
		analysis.TotalAskQty += a.Quantity
	}

	analysis.BidRange = priceRange(snap.Bids)
	analysis.AskRange = priceRange(snap.Asks)

	if analysis.BidRange != nil && analysis.AskRange != nil {
		bestBid := analysis.BidRange.Max
		bestAsk := analysis.AskRange.Min
		mid := (bestBid + bestAsk) / 2
		if mid != 0 {
			pct := ((bestAsk - bestBid) / mid) * 100
			analysis.SpreadAtDepth = &pct
		}
	}
	return analysis
}

func priceRange(entries []models.OrderBookEntry) *models.PriceRange {
	if len(entries) == 0 {
		return nil
	}
	r := models.PriceRange{Min: entries[0].Price, Max: entries[0].Price}
	for _, e := range entries[1:] {
		if e.Price < r.Min {
			r.Min = e.Price
		}
		if e.Price > r.Max {
			r.Max = e.Price
		}
	}
	return &r
}
