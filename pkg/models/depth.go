package models

// OrderBookEntry is one price level of an order book side. Price and
// Quantity are strictly positive once validated.
type OrderBookEntry struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// DepthSnapshot is a single on-demand capture of a market's order book.
// Bids are ordered by descending price, asks by ascending price.
// Timestamp is epoch milliseconds. Snapshots are not cached across
// fetches.
type DepthSnapshot struct {
	TickerID  string           `json:"ticker_id"`
	Timestamp int64            `json:"timestamp"`
	Bids      []OrderBookEntry `json:"bids"`
	Asks      []OrderBookEntry `json:"asks"`
}

// PriceRange is the min/max price observed on one book side.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DepthAnalysis aggregates a DepthSnapshot into per-side liquidity totals
// and a spread computed at the best levels of the snapshot. Ranges and
// SpreadAtDepth are nil when the relevant side is empty.
type DepthAnalysis struct {
	TickerID      string      `json:"ticker_id"`
	Timestamp     int64       `json:"timestamp"`
	TotalBidQty   float64     `json:"total_bid_qty"`
	TotalAskQty   float64     `json:"total_ask_qty"`
	BidRange      *PriceRange `json:"bid_range"`
	AskRange      *PriceRange `json:"ask_range"`
	BidCount      int         `json:"bid_count"`
	AskCount      int         `json:"ask_count"`
	SpreadAtDepth *float64    `json:"spread_at_depth"`
}
