package screener

import (
	"sort"
	"strings"

	"github.com/gregtusar/marketlens/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField names a sortable attribute of a MarketRecord.
type SortField string

const (
	SortByPair      SortField = "pair"
	SortBySpread    SortField = "spread"
	SortByVolume    SortField = "volume"
	SortByPrice     SortField = "price"
	SortByLiquidity SortField = "liquidity"
)

// ParseSortField validates a user-supplied sort field name.
func ParseSortField(name string) (SortField, bool) {
	f := SortField(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case SortByPair, SortBySpread, SortByVolume, SortByPrice, SortByLiquidity:
		return f, true
	}
	return "", false
}

// SortKey is one entry of the sort chain.
type SortKey struct {
	Field      SortField `json:"field"`
	Descending bool      `json:"descending"`
}

// ParseSortKeys maps config strings like "volume:desc" or "pair:asc" to
// sort keys, dropping anything unrecognized.
func ParseSortKeys(raw []string) []SortKey {
	var keys []SortKey
	for _, entry := range raw {
		parts := strings.SplitN(entry, ":", 2)
		field, ok := ParseSortField(parts[0])
		if !ok {
			continue
		}
		desc := true
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "asc") {
			desc = false
		}
		keys = append(keys, SortKey{Field: field, Descending: desc})
	}
	return keys
}

// Sorter holds the compound sort chain: an ordered list of sort keys,
// capped in length, applied as successive tie-breaks with chain[0] as the
// highest priority. Sorter is not safe for concurrent use; the Service
// serializes access.
type Sorter struct {
	maxKeys  int
	defaults []SortKey
	chain    []SortKey
	collator *collate.Collator
}

// NewSorter creates a sorter seeded with the default chain, which is also
// what Clear resets to. A non-positive maxKeys falls back to 2; defaults
// longer than the cap are truncated.
func NewSorter(maxKeys int, defaults []SortKey) *Sorter {
	if maxKeys <= 0 {
		maxKeys = 2
	}
	if len(defaults) > maxKeys {
		defaults = defaults[:maxKeys]
	}
	return &Sorter{
		maxKeys:  maxKeys,
		defaults: cloneKeys(defaults),
		chain:    cloneKeys(defaults),
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Toggle advances the per-field ring OFF -> DESC -> ASC -> OFF. A field
// not yet in the chain enters at DESC, evicting the oldest entry when the
// chain is at capacity; the newcomer lands at the end, i.e. lowest
// priority. Removing the last entry resets the chain to the defaults.
func (s *Sorter) Toggle(field SortField) {
	for i, k := range s.chain {
		if k.Field != field {
			continue
		}
		if k.Descending {
			s.chain[i].Descending = false
			return
		}
		s.chain = append(s.chain[:i], s.chain[i+1:]...)
		if len(s.chain) == 0 {
			s.chain = cloneKeys(s.defaults)
		}
		return
	}

	if len(s.chain) >= s.maxKeys {
		s.chain = append(s.chain[:0], s.chain[1:]...)
	}
	s.chain = append(s.chain, SortKey{Field: field, Descending: true})
}

// Clear resets the chain to the configured default (empty if none).
func (s *Sorter) Clear() {
	s.chain = cloneKeys(s.defaults)
}

// Chain returns a copy of the active sort chain.
func (s *Sorter) Chain() []SortKey {
	return cloneKeys(s.chain)
}

// Fingerprint is a compact rendering of the chain, used as a cache key
// component.
func (s *Sorter) Fingerprint() string {
	var b strings.Builder
	for i, k := range s.chain {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(k.Field))
		if k.Descending {
			b.WriteString(":desc")
		} else {
			b.WriteString(":asc")
		}
	}
	return b.String()
}

// SortMarkets returns an ordered copy of records, applying the chain
// entries in priority order as tie-breaks. Records equal on every active
// key keep their relative input order. An empty chain returns the input
// order untouched.
func (s *Sorter) SortMarkets(records []models.MarketRecord) []models.MarketRecord {
	out := make([]models.MarketRecord, len(records))
	copy(out, records)
	if len(s.chain) == 0 {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range s.chain {
			if c := s.compare(out[i], out[j], key); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

func (s *Sorter) compare(a, b models.MarketRecord, key SortKey) int {
	dir := 1
	if key.Descending {
		dir = -1
	}

	switch key.Field {
	case SortByPair:
		return dir * s.collator.CompareString(a.Pair, b.Pair)
	case SortBySpread:
		// Nil spreads sort last for both directions, so the nil checks
		// happen before the direction multiply.
		switch {
		case a.Spread == nil && b.Spread == nil:
			return 0
		case a.Spread == nil:
			return 1
		case b.Spread == nil:
			return -1
		}
		return dir * compareFloat(*a.Spread, *b.Spread)
	case SortByVolume:
		return dir * compareFloat(a.Volume24h, b.Volume24h)
	case SortByPrice:
		return dir * compareFloat(a.LastPrice, b.LastPrice)
	case SortByLiquidity:
		return dir * compareInt(a.Liquidity.Priority(), b.Liquidity.Priority())
	default:
		// Unknown fields are a no-op tie-break.
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cloneKeys(keys []SortKey) []SortKey {
	out := make([]SortKey, len(keys))
	copy(out, keys)
	return out
}
