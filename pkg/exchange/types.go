package exchange

// Wire formats as the exchange ships them. All numerics arrive as strings
// and every field is optional at the JSON layer; the Validator decides
// what is actually required.

type PairPayload struct {
	TickerID string `json:"ticker_id"`
	Base     string `json:"base"`
	Target   string `json:"target"`
}

// SummaryPayload uses a composite pair string ("ETH-EURC" or "BTC_USDT")
// rather than the canonical underscore ticker id.
type SummaryPayload struct {
	TradingPairs   string `json:"trading_pairs"`
	LastPrice      string `json:"last_price"`
	BaseVolume     string `json:"base_volume"`
	TargetVolume   string `json:"target_volume"`
	HighestBid     string `json:"highest_bid"`
	LowestAsk      string `json:"lowest_ask"`
	HighestPrice24 string `json:"highest_price_24h"`
	LowestPrice24  string `json:"lowest_price_24h"`
}

// DepthPayload carries [price, quantity] string tuples per level and an
// ISO-8601 timestamp. The ticker id is not part of the body; it comes
// from the request parameter.
type DepthPayload struct {
	Timestamp string     `json:"timestamp"`
	Bids      [][]string `json:"bids"`
	Asks      [][]string `json:"asks"`
}
