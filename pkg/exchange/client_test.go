package exchange

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHTTPClient(srv.URL, 2*time.Second, 100, 50, logger)
}

func TestHTTPClientFetchPairs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pairs", r.URL.Path)
		w.Write([]byte(`[{"ticker_id":"BTC_USDT","base":"BTC","target":"USDT"}]`))
	})

	pairs, err := client.FetchPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "BTC_USDT", pairs[0].TickerID)
}

func TestHTTPClientFetchSummaries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/summary", r.URL.Path)
		w.Write([]byte(`[{
			"trading_pairs":"BTC-USDT",
			"last_price":"30000",
			"base_volume":"1.5",
			"target_volume":"45000",
			"highest_bid":"29999",
			"lowest_ask":"30001",
			"highest_price_24h":"31000",
			"lowest_price_24h":"29000"
		}]`))
	})

	sums, err := client.FetchSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "BTC_USDT", sums[0].TickerID)
	require.NotNil(t, sums[0].HighestBid)
	assert.Equal(t, 29999.0, *sums[0].HighestBid)
}

func TestHTTPClientFetchDepth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orderbook", r.URL.Path)
		assert.Equal(t, "BTC_USDT", r.URL.Query().Get("ticker_id"))
		assert.Equal(t, "50", r.URL.Query().Get("depth"))
		w.Write([]byte(`{
			"timestamp":"2023-11-14T22:13:20Z",
			"bids":[["16600","0.5"]],
			"asks":[["16610","0.6"]]
		}`))
	})

	snap, err := client.FetchDepth(context.Background(), "BTC_USDT")
	require.NoError(t, err)
	assert.Equal(t, "BTC_USDT", snap.TickerID)
	assert.Equal(t, int64(1700000000000), snap.Timestamp)
}

func TestHTTPClientNon2xxIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchPairs(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
}

func TestHTTPClientInvalidPayloadIsValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"ticker_id":"","base":"BTC","target":"USDT"}]`))
	})

	_, err := client.FetchPairs(context.Background())
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestHTTPClientMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.FetchPairs(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}
