package screener

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestSpreadMidpointFormula(t *testing.T) {
	got := Spread(fp(100), fp(102))
	require.NotNil(t, got)
	assert.InDelta(t, 1.9802, *got, 0.01)

	got = Spread(fp(100), fp(110))
	require.NotNil(t, got)
	assert.InDelta(t, 9.524, *got, 0.01)
}

func TestSpreadEqualBidAskIsExactlyZero(t *testing.T) {
	got := Spread(fp(250.5), fp(250.5))
	require.NotNil(t, got)
	assert.Equal(t, 0.0, *got)
}

func TestSpreadNullRules(t *testing.T) {
	cases := []struct {
		name string
		bid  *float64
		ask  *float64
	}{
		{"nil bid", nil, fp(100)},
		{"nil ask", fp(100), nil},
		{"zero bid", fp(0), fp(100)},
		{"zero ask", fp(100), fp(0)},
		{"negative bid", fp(-1), fp(100)},
		{"negative ask", fp(100), fp(-1)},
		{"nan bid", fp(math.NaN()), fp(100)},
		{"inf ask", fp(100), fp(math.Inf(1))},
		{"crossed book", fp(100), fp(99)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, Spread(tc.bid, tc.ask))
			assert.Nil(t, AbsoluteSpread(tc.bid, tc.ask))
			assert.Nil(t, MidPrice(tc.bid, tc.ask))
		})
	}
}

func TestSpreadRangeProperty(t *testing.T) {
	// For finite bid, ask > 0 with ask >= bid, spread stays in [0, 200).
	pairs := [][2]float64{
		{0.0001, 0.0001},
		{0.0001, 1000000},
		{1, 1.0000001},
		{50, 75},
		{16580, 16630},
	}
	for _, p := range pairs {
		got := Spread(fp(p[0]), fp(p[1]))
		require.NotNil(t, got)
		assert.GreaterOrEqual(t, *got, 0.0)
		assert.Less(t, *got, 200.0)
	}
}

func TestAbsoluteSpreadAndMidPrice(t *testing.T) {
	abs := AbsoluteSpread(fp(100), fp(102))
	require.NotNil(t, abs)
	assert.InDelta(t, 2.0, *abs, 1e-12)

	mid := MidPrice(fp(100), fp(102))
	require.NotNil(t, mid)
	assert.InDelta(t, 101.0, *mid, 1e-12)

	abs = AbsoluteSpread(fp(100), fp(100))
	require.NotNil(t, abs)
	assert.Equal(t, 0.0, *abs)
}

func TestQualityTierBoundaries(t *testing.T) {
	assert.Equal(t, SpreadTight, QualityOf(fp(0)))
	assert.Equal(t, SpreadTight, QualityOf(fp(0.49)))
	// Lower bounds are half-open: exactly 0.5 is normal, not tight.
	assert.Equal(t, SpreadNormal, QualityOf(fp(0.5)))
	assert.Equal(t, SpreadNormal, QualityOf(fp(1.99)))
	assert.Equal(t, SpreadWide, QualityOf(fp(2)))
	assert.Equal(t, SpreadWide, QualityOf(fp(4.99)))
	assert.Equal(t, SpreadVeryWide, QualityOf(fp(5)))
	assert.Equal(t, SpreadVeryWide, QualityOf(fp(120)))
	assert.Equal(t, SpreadUnknown, QualityOf(nil))
	assert.Equal(t, SpreadUnknown, QualityOf(fp(math.NaN())))
}
