package screener

import (
	"github.com/gregtusar/marketlens/pkg/models"
)

// RAG thresholds. Red is reserved for "no spread signal"; even a very wide
// spread rates amber, because some liquidity beats none.
const greenMaxSpread = 2.0

// ClassifyLiquidity maps a spread percentage to the three-tier RAG rating.
func ClassifyLiquidity(spread *float64) models.LiquidityStatus {
	if spread == nil || !isFinite(*spread) {
		return models.LiquidityRed
	}
	if *spread <= greenMaxSpread {
		return models.LiquidityGreen
	}
	return models.LiquidityAmber
}
