package models

import (
	"time"
)

// TradingPair is one entry from the exchange pair listing. Immutable once
// parsed.
type TradingPair struct {
	TickerID string `json:"ticker_id"`
	Base     string `json:"base"`
	Target   string `json:"target"`
}

// MarketSummary is the 24h rollup for a single pair from the exchange
// summary endpoint. HighestBid/LowestAsk are nil when the corresponding
// book side has no resting orders.
type MarketSummary struct {
	TickerID        string   `json:"ticker_id"`
	LastPrice       float64  `json:"last_price"`
	BaseVolume24h   float64  `json:"base_volume_24h"`
	TargetVolume24h float64  `json:"target_volume_24h"`
	High24h         float64  `json:"high_24h"`
	Low24h          float64  `json:"low_24h"`
	HighestBid      *float64 `json:"highest_bid"`
	LowestAsk       *float64 `json:"lowest_ask"`
}

// MarketRecord is the joined per-market view served to consumers. A fresh
// set is produced on every refresh; records are never mutated in place.
// Spread is the bid-ask spread in percent of the midpoint, nil when either
// side of the book is missing.
type MarketRecord struct {
	TickerID   string          `json:"ticker_id"`
	Pair       string          `json:"pair"` // "BASE/TARGET" display form
	Base       string          `json:"base"`
	Target     string          `json:"target"`
	HighestBid *float64        `json:"highest_bid"`
	LowestAsk  *float64        `json:"lowest_ask"`
	Spread     *float64        `json:"spread"`
	Liquidity  LiquidityStatus `json:"liquidity"`
	LastPrice  float64         `json:"last_price"`
	Volume24h  float64         `json:"volume_24h"`
	High24h    *float64        `json:"high_24h,omitempty"`
	Low24h     *float64        `json:"low_24h,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
