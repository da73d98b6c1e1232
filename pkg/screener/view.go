package screener

import (
	"strings"
	"sync"

	"github.com/gregtusar/marketlens/pkg/models"
)

type viewKey struct {
	generation uint64
	query      string
	chain      string
}

// View memoizes the composed filter+sort result. The cache is keyed on
// the record set generation, the normalized query and the sort chain
// fingerprint, so any input change invalidates it.
type View struct {
	mu     sync.Mutex
	key    viewKey
	cached []models.MarketRecord
	valid  bool
}

func NewView() *View {
	return &View{}
}

// Apply runs the filter engine and the sorter over records, returning the
// cached result when none of the inputs changed since the previous call.
func (v *View) Apply(records []models.MarketRecord, generation uint64, query string, fields []FilterField, sorter *Sorter) []models.MarketRecord {
	key := viewKey{
		generation: generation,
		query:      strings.ToLower(strings.TrimSpace(query)),
		chain:      sorter.Fingerprint(),
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.valid && v.key == key {
		return v.cached
	}

	result := sorter.SortMarkets(FilterMarkets(records, query, fields))
	v.key = key
	v.cached = result
	v.valid = true
	return result
}

// Invalidate drops the cached result.
func (v *View) Invalidate() {
	v.mu.Lock()
	v.valid = false
	v.cached = nil
	v.mu.Unlock()
}
