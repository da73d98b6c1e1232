package screener

import (
	"sort"
	"time"

	"github.com/gregtusar/marketlens/pkg/models"
)

// AssembleMarkets joins the pair listing with the summary listing by
// ticker id and produces one MarketRecord per pair. A pair without a
// matching summary still yields a record: nil bid/ask/spread, zero price
// and volume, and a red rating. The result carries a stable baseline
// ordering by descending 24h volume so "no active sort" is still a
// meaningful view.
func AssembleMarkets(pairs []models.TradingPair, summaries []models.MarketSummary) []models.MarketRecord {
	byID := make(map[string]models.MarketSummary, len(summaries))
	for _, s := range summaries {
		byID[s.TickerID] = s
	}

	now := time.Now().UTC()
	records := make([]models.MarketRecord, 0, len(pairs))
	for _, p := range pairs {
		rec := models.MarketRecord{
			TickerID:  p.TickerID,
			Pair:      p.Base + "/" + p.Target,
			Base:      p.Base,
			Target:    p.Target,
			UpdatedAt: now,
		}

		if sum, ok := byID[p.TickerID]; ok {
			rec.HighestBid = sum.HighestBid
			rec.LowestAsk = sum.LowestAsk
			rec.Spread = Spread(sum.HighestBid, sum.LowestAsk)
			rec.LastPrice = sum.LastPrice
			rec.Volume24h = sum.TargetVolume24h
			high, low := sum.High24h, sum.Low24h
			rec.High24h = &high
			rec.Low24h = &low
		}
		rec.Liquidity = ClassifyLiquidity(rec.Spread)

		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Volume24h > records[j].Volume24h
	})
	return records
}
