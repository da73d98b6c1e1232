package screener

import (
	"strings"

	"github.com/gregtusar/marketlens/pkg/models"
)

// FilterField names a searchable attribute of a MarketRecord.
type FilterField string

const (
	FieldPair     FilterField = "pair"
	FieldTickerID FilterField = "ticker_id"
	FieldBase     FilterField = "base"
	FieldTarget   FilterField = "target"
)

// DefaultFilterFields is the search surface when the caller configures
// nothing.
func DefaultFilterFields() []FilterField {
	return []FilterField{FieldPair, FieldTickerID, FieldBase, FieldTarget}
}

// ParseFilterFields maps config strings to filter fields, dropping
// anything unrecognized. An empty result falls back to the defaults.
func ParseFilterFields(names []string) []FilterField {
	var fields []FilterField
	for _, n := range names {
		switch FilterField(strings.ToLower(strings.TrimSpace(n))) {
		case FieldPair, FieldTickerID, FieldBase, FieldTarget:
			fields = append(fields, FilterField(strings.ToLower(strings.TrimSpace(n))))
		}
	}
	if len(fields) == 0 {
		return DefaultFilterFields()
	}
	return fields
}

// FilterMarkets returns the records whose configured fields contain the
// trimmed, lowercased query as a substring. The filter is stable: the
// input order is preserved, and an empty or whitespace-only query returns
// the input unchanged.
func FilterMarkets(records []models.MarketRecord, query string, fields []FilterField) []models.MarketRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}
	if len(fields) == 0 {
		fields = DefaultFilterFields()
	}

	out := make([]models.MarketRecord, 0, len(records))
	for _, rec := range records {
		for _, f := range fields {
			v := filterValue(rec, f)
			if v == "" {
				continue
			}
			if strings.Contains(strings.ToLower(v), query) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

func filterValue(rec models.MarketRecord, field FilterField) string {
	switch field {
	case FieldPair:
		return rec.Pair
	case FieldTickerID:
		return rec.TickerID
	case FieldBase:
		return rec.Base
	case FieldTarget:
		return rec.Target
	default:
		return ""
	}
}
