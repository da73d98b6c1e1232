package exchange

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gregtusar/marketlens/pkg/models"
	"github.com/sirupsen/logrus"
)

// Validator coerces untrusted exchange payloads into typed domain records.
// Each entity has a strict variant that returns a *ValidationError listing
// every offending field, and a lenient ...OrNil variant that swallows the
// error and returns nil, for best-effort parsing paths.
type Validator struct {
	logger *logrus.Logger
}

func NewValidator(logger *logrus.Logger) *Validator {
	return &Validator{logger: logger}
}

// Pairs validates the pair listing. Every pair needs non-empty ticker_id,
// base and target.
func (v *Validator) Pairs(raw []PairPayload) ([]models.TradingPair, error) {
	var fields []FieldError
	pairs := make([]models.TradingPair, 0, len(raw))

	for i, p := range raw {
		tickerID := strings.TrimSpace(p.TickerID)
		base := strings.TrimSpace(p.Base)
		target := strings.TrimSpace(p.Target)

		if tickerID == "" {
			fields = append(fields, FieldError{Field: fmt.Sprintf("pairs[%d].ticker_id", i), Message: "must be a non-empty string"})
		}
		if base == "" {
			fields = append(fields, FieldError{Field: fmt.Sprintf("pairs[%d].base", i), Message: "must be a non-empty string"})
		}
		if target == "" {
			fields = append(fields, FieldError{Field: fmt.Sprintf("pairs[%d].target", i), Message: "must be a non-empty string"})
		}

		pairs = append(pairs, models.TradingPair{TickerID: tickerID, Base: base, Target: target})
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Entity: "pairs", Fields: fields}
	}
	return pairs, nil
}

// PairsOrNil is the non-throwing variant of Pairs.
func (v *Validator) PairsOrNil(raw []PairPayload) []models.TradingPair {
	pairs, err := v.Pairs(raw)
	if err != nil {
		v.logger.WithError(err).Debug("Discarded invalid pair payload")
		return nil
	}
	return pairs
}

// Summaries validates the summary listing. Required numeric fields must
// coerce to a non-negative number; highest_bid/lowest_ask are optional and
// degrade to nil when missing or non-numeric.
func (v *Validator) Summaries(raw []SummaryPayload) ([]models.MarketSummary, error) {
	var fields []FieldError
	summaries := make([]models.MarketSummary, 0, len(raw))

	for i, s := range raw {
		base, target, ok := SplitPairString(s.TradingPairs)
		if !ok {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("summaries[%d].trading_pairs", i),
				Message: fmt.Sprintf("%q is not a BASE-TARGET or BASE_TARGET pair", s.TradingPairs),
			})
		}

		sum := models.MarketSummary{
			TickerID:   base + "_" + target,
			HighestBid: optionalNumber(s.HighestBid),
			LowestAsk:  optionalNumber(s.LowestAsk),
		}

		required := []struct {
			name string
			raw  string
			dst  *float64
		}{
			{"last_price", s.LastPrice, &sum.LastPrice},
			{"base_volume", s.BaseVolume, &sum.BaseVolume24h},
			{"target_volume", s.TargetVolume, &sum.TargetVolume24h},
			{"highest_price_24h", s.HighestPrice24, &sum.High24h},
			{"lowest_price_24h", s.LowestPrice24, &sum.Low24h},
		}
		for _, f := range required {
			n, ok := parseNumber(f.raw)
			if !ok {
				fields = append(fields, FieldError{
					Field:   fmt.Sprintf("summaries[%d].%s", i, f.name),
					Message: fmt.Sprintf("%q is not a number", f.raw),
				})
				continue
			}
			if n < 0 {
				fields = append(fields, FieldError{
					Field:   fmt.Sprintf("summaries[%d].%s", i, f.name),
					Message: "must not be negative",
				})
				continue
			}
			*f.dst = n
		}

		summaries = append(summaries, sum)
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Entity: "summaries", Fields: fields}
	}
	return summaries, nil
}

// SummariesOrNil is the non-throwing variant of Summaries.
func (v *Validator) SummariesOrNil(raw []SummaryPayload) []models.MarketSummary {
	summaries, err := v.Summaries(raw)
	if err != nil {
		v.logger.WithError(err).Debug("Discarded invalid summary payload")
		return nil
	}
	return summaries
}

// Depth validates an order book payload. Every level must carry a strictly
// positive price and quantity; a single bad level fails the whole snapshot
// (no partial depth). The canonical ticker id comes from the request, not
// the body.
func (v *Validator) Depth(tickerID string, raw DepthPayload) (*models.DepthSnapshot, error) {
	var fields []FieldError

	ts, err := time.Parse(time.RFC3339, raw.Timestamp)
	if err != nil {
		fields = append(fields, FieldError{
			Field:   "timestamp",
			Message: fmt.Sprintf("%q is not an ISO-8601 timestamp", raw.Timestamp),
		})
	}

	bids := parseBookSide("bids", raw.Bids, &fields)
	asks := parseBookSide("asks", raw.Asks, &fields)

	if len(fields) > 0 {
		return nil, &ValidationError{Entity: "depth", Fields: fields}
	}

	return &models.DepthSnapshot{
		TickerID:  tickerID,
		Timestamp: ts.UnixMilli(),
		Bids:      bids,
		Asks:      asks,
	}, nil
}

// DepthOrNil is the non-throwing variant of Depth.
func (v *Validator) DepthOrNil(tickerID string, raw DepthPayload) *models.DepthSnapshot {
	snap, err := v.Depth(tickerID, raw)
	if err != nil {
		v.logger.WithError(err).Debug("Discarded invalid depth payload")
		return nil
	}
	return snap
}

func parseBookSide(side string, raw [][]string, fields *[]FieldError) []models.OrderBookEntry {
	entries := make([]models.OrderBookEntry, 0, len(raw))
	for i, level := range raw {
		if len(level) < 2 {
			*fields = append(*fields, FieldError{
				Field:   fmt.Sprintf("%s[%d]", side, i),
				Message: "must be a [price, quantity] tuple",
			})
			continue
		}
		price, okP := parseNumber(level[0])
		qty, okQ := parseNumber(level[1])
		if !okP || price <= 0 {
			*fields = append(*fields, FieldError{
				Field:   fmt.Sprintf("%s[%d].price", side, i),
				Message: fmt.Sprintf("%q is not a positive number", level[0]),
			})
		}
		if !okQ || qty <= 0 {
			*fields = append(*fields, FieldError{
				Field:   fmt.Sprintf("%s[%d].quantity", side, i),
				Message: fmt.Sprintf("%q is not a positive number", level[1]),
			})
		}
		entries = append(entries, models.OrderBookEntry{Price: price, Quantity: qty})
	}
	return entries
}

// SplitPairString splits a composite pair string on "-" or "_", whichever
// the exchange used, into base and target symbols.
func SplitPairString(pair string) (base, target string, ok bool) {
	pair = strings.TrimSpace(pair)
	sep := "_"
	if !strings.Contains(pair, "_") {
		sep = "-"
	}
	parts := strings.SplitN(pair, sep, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func optionalNumber(s string) *float64 {
	n, ok := parseNumber(s)
	if !ok {
		return nil
	}
	return &n
}
