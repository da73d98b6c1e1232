package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregtusar/marketlens/pkg/models"
)

func TestToggleRing(t *testing.T) {
	s := NewSorter(2, nil)

	// OFF -> DESC
	s.Toggle(SortByVolume)
	require.Equal(t, []SortKey{{Field: SortByVolume, Descending: true}}, s.Chain())

	// DESC -> ASC, position unchanged
	s.Toggle(SortByVolume)
	require.Equal(t, []SortKey{{Field: SortByVolume, Descending: false}}, s.Chain())

	// ASC -> OFF
	s.Toggle(SortByVolume)
	assert.Empty(t, s.Chain())
}

func TestToggleFlipKeepsPosition(t *testing.T) {
	s := NewSorter(2, nil)
	s.Toggle(SortByVolume)
	s.Toggle(SortBySpread)
	s.Toggle(SortByVolume) // flip the first entry in place

	assert.Equal(t, []SortKey{
		{Field: SortByVolume, Descending: false},
		{Field: SortBySpread, Descending: true},
	}, s.Chain())
}

func TestToggleEvictsOldestAtCapacity(t *testing.T) {
	s := NewSorter(2, nil)
	s.Toggle(SortByVolume)
	s.Toggle(SortBySpread)
	// Chain is [volume, spread]; a third field evicts volume and enters
	// at the lowest priority slot.
	s.Toggle(SortByPrice)

	assert.Equal(t, []SortKey{
		{Field: SortBySpread, Descending: true},
		{Field: SortByPrice, Descending: true},
	}, s.Chain())
}

func TestChainNeverExceedsCap(t *testing.T) {
	s := NewSorter(2, nil)
	sequence := []SortField{
		SortByVolume, SortBySpread, SortByPrice, SortByPair,
		SortByLiquidity, SortByVolume, SortBySpread, SortByPair,
		SortByPair, SortByPair, SortByPrice,
	}
	for _, f := range sequence {
		s.Toggle(f)
		assert.LessOrEqual(t, len(s.Chain()), 2)
	}
}

func TestRemovalResetsToDefaultChain(t *testing.T) {
	defaults := []SortKey{{Field: SortByVolume, Descending: true}}
	s := NewSorter(2, defaults)

	// Cycle volume all the way off; the chain falls back to the default
	// instead of going empty.
	s.Toggle(SortByVolume) // desc -> asc (volume is in the default chain)
	s.Toggle(SortByVolume) // asc -> off -> defaults restored
	assert.Equal(t, defaults, s.Chain())
}

func TestClearRestoresDefaults(t *testing.T) {
	defaults := []SortKey{{Field: SortByVolume, Descending: true}}
	s := NewSorter(2, defaults)
	s.Toggle(SortBySpread)
	s.Toggle(SortByPair)
	s.Clear()
	assert.Equal(t, defaults, s.Chain())

	noDefaults := NewSorter(2, nil)
	noDefaults.Toggle(SortBySpread)
	noDefaults.Clear()
	assert.Empty(t, noDefaults.Chain())
}

func sortFixture() []models.MarketRecord {
	return []models.MarketRecord{
		{TickerID: "A_USDT", Pair: "A/USDT", Spread: fp(1.0), Volume24h: 100, LastPrice: 5, Liquidity: models.LiquidityGreen},
		{TickerID: "B_USDT", Pair: "B/USDT", Spread: nil, Volume24h: 300, LastPrice: 1, Liquidity: models.LiquidityRed},
		{TickerID: "C_USDT", Pair: "C/USDT", Spread: fp(3.0), Volume24h: 200, LastPrice: 9, Liquidity: models.LiquidityAmber},
		{TickerID: "D_USDT", Pair: "D/USDT", Spread: fp(0.2), Volume24h: 200, LastPrice: 2, Liquidity: models.LiquidityGreen},
	}
}

func chainOf(keys ...SortKey) *Sorter {
	s := NewSorter(len(keys), keys)
	return s
}

func tickerIDs(records []models.MarketRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.TickerID
	}
	return ids
}

func TestSortMarketsEmptyChainPreservesOrder(t *testing.T) {
	s := NewSorter(2, nil)
	records := sortFixture()
	got := s.SortMarkets(records)
	assert.Equal(t, tickerIDs(records), tickerIDs(got))
}

func TestSortMarketsReturnsCopy(t *testing.T) {
	s := chainOf(SortKey{Field: SortByVolume, Descending: true})
	records := sortFixture()
	got := s.SortMarkets(records)

	assert.Equal(t, "A_USDT", records[0].TickerID, "input slice must not be reordered")
	assert.Equal(t, "B_USDT", got[0].TickerID)
}

func TestSortMarketsNullSpreadsLastBothDirections(t *testing.T) {
	records := sortFixture()

	asc := chainOf(SortKey{Field: SortBySpread, Descending: false}).SortMarkets(records)
	assert.Equal(t, []string{"D_USDT", "A_USDT", "C_USDT", "B_USDT"}, tickerIDs(asc))

	desc := chainOf(SortKey{Field: SortBySpread, Descending: true}).SortMarkets(records)
	assert.Equal(t, []string{"C_USDT", "A_USDT", "D_USDT", "B_USDT"}, tickerIDs(desc))
}

func TestSortMarketsCompoundTieBreak(t *testing.T) {
	// Volume desc, then price asc as tie-break between the two
	// 200-volume records.
	s := chainOf(
		SortKey{Field: SortByVolume, Descending: true},
		SortKey{Field: SortByPrice, Descending: false},
	)
	got := s.SortMarkets(sortFixture())
	assert.Equal(t, []string{"B_USDT", "D_USDT", "C_USDT", "A_USDT"}, tickerIDs(got))
}

func TestSortMarketsStableOnFullTie(t *testing.T) {
	records := []models.MarketRecord{
		{TickerID: "X_1", Volume24h: 10},
		{TickerID: "X_2", Volume24h: 10},
		{TickerID: "X_3", Volume24h: 10},
	}
	s := chainOf(SortKey{Field: SortByVolume, Descending: true})
	got := s.SortMarkets(records)
	assert.Equal(t, []string{"X_1", "X_2", "X_3"}, tickerIDs(got))
}

func TestSortMarketsByLiquidityPriority(t *testing.T) {
	// Descending liquidity puts the best (green) tier first.
	s := chainOf(SortKey{Field: SortByLiquidity, Descending: true})
	got := s.SortMarkets(sortFixture())
	assert.Equal(t, []string{"A_USDT", "D_USDT", "C_USDT", "B_USDT"}, tickerIDs(got))
}

func TestSortMarketsByPairName(t *testing.T) {
	s := chainOf(SortKey{Field: SortByPair, Descending: false})
	got := s.SortMarkets(sortFixture())
	assert.Equal(t, []string{"A_USDT", "B_USDT", "C_USDT", "D_USDT"}, tickerIDs(got))
}

func TestSortMarketsUnknownFieldIsNoOpTieBreak(t *testing.T) {
	s := chainOf(SortKey{Field: SortField("momentum"), Descending: true})
	records := sortFixture()
	got := s.SortMarkets(records)
	assert.Equal(t, tickerIDs(records), tickerIDs(got))
}

func TestParseSortKeys(t *testing.T) {
	keys := ParseSortKeys([]string{"volume:desc", "pair:asc", "bogus:desc", "spread"})
	assert.Equal(t, []SortKey{
		{Field: SortByVolume, Descending: true},
		{Field: SortByPair, Descending: false},
		{Field: SortBySpread, Descending: true},
	}, keys)
}
