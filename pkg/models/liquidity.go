package models

// LiquidityStatus is the three-tier (red/amber/green) liquidity rating of
// a market. Green is the best tier; red is reserved for markets with no
// spread signal at all.
type LiquidityStatus string

const (
	LiquidityGreen LiquidityStatus = "green"
	LiquidityAmber LiquidityStatus = "amber"
	LiquidityRed   LiquidityStatus = "red"
)

// Priority orders statuses for sorting: higher is better.
func (s LiquidityStatus) Priority() int {
	switch s {
	case LiquidityGreen:
		return 2
	case LiquidityAmber:
		return 1
	default:
		return 0
	}
}

func (s LiquidityStatus) Description() string {
	switch s {
	case LiquidityGreen:
		return "Tight spread, healthy two-sided liquidity"
	case LiquidityAmber:
		return "Wide spread, trade with care"
	default:
		return "No active order book data"
	}
}

func (s LiquidityStatus) Recommendation() string {
	switch s {
	case LiquidityGreen:
		return "Suitable for market orders"
	case LiquidityAmber:
		return "Prefer limit orders and small sizes"
	default:
		return "Avoid until the book recovers"
	}
}

// Color returns the hex color used by UI consumers for this status.
func (s LiquidityStatus) Color() string {
	switch s {
	case LiquidityGreen:
		return "#16a34a"
	case LiquidityAmber:
		return "#d97706"
	default:
		return "#dc2626"
	}
}

func (s LiquidityStatus) Emoji() string {
	switch s {
	case LiquidityGreen:
		return "\U0001F7E2"
	case LiquidityAmber:
		return "\U0001F7E1"
	default:
		return "\U0001F534"
	}
}
