package screener

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gregtusar/marketlens/pkg/exchange"
	"github.com/gregtusar/marketlens/pkg/models"
	"github.com/sirupsen/logrus"
)

// Options configure a Service. Zero values fall back to sane defaults.
type Options struct {
	MaxSortKeys   int
	DefaultSort   []SortKey
	SearchFields  []FilterField
	DebounceDelay time.Duration
}

// Service owns the current market record set and the sort chain. Both are
// replaced wholesale on change, never mutated in place; concurrent
// refreshes resolve last-write-wins.
type Service struct {
	client   exchange.Client
	logger   *logrus.Logger
	fields   []FilterField
	view     *View
	debounce *Debouncer

	mu          sync.RWMutex
	sorter      *Sorter
	records     []models.MarketRecord
	generation  uint64
	refreshedAt time.Time
}

func NewService(client exchange.Client, logger *logrus.Logger, opts Options) *Service {
	fields := opts.SearchFields
	if len(fields) == 0 {
		fields = DefaultFilterFields()
	}
	return &Service{
		client:   client,
		logger:   logger,
		fields:   fields,
		view:     NewView(),
		debounce: NewDebouncer(opts.DebounceDelay),
		sorter:   NewSorter(opts.MaxSortKeys, opts.DefaultSort),
	}
}

// Refresh fetches the pair listing and the summary listing concurrently,
// assembles the joined record set and swaps it in. If either fetch fails
// the whole refresh fails and the previous record set stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	var (
		pairs     []models.TradingPair
		summaries []models.MarketSummary
		pairsErr  error
		sumErr    error
	)

	done := make(chan struct{}, 2)
	go func() {
		pairs, pairsErr = s.client.FetchPairs(ctx)
		done <- struct{}{}
	}()
	go func() {
		summaries, sumErr = s.client.FetchSummaries(ctx)
		done <- struct{}{}
	}()
	<-done
	<-done

	if pairsErr != nil {
		return fmt.Errorf("refresh failed: %w", pairsErr)
	}
	if sumErr != nil {
		return fmt.Errorf("refresh failed: %w", sumErr)
	}

	records := AssembleMarkets(pairs, summaries)

	s.mu.Lock()
	s.records = records
	s.generation++
	s.refreshedAt = time.Now().UTC()
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"pairs":   len(pairs),
		"markets": len(records),
	}).Info("Market data refreshed")
	return nil
}

// RequestRefresh schedules a debounced refresh, coalescing bursts of
// externally triggered refreshes into one exchange round trip.
func (s *Service) RequestRefresh(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.debounce.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.Refresh(ctx); err != nil {
			s.logger.WithError(err).Error("Debounced refresh failed")
		}
	})
}

// Run refreshes on a fixed interval until the context is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.WithError(err).Error("Initial refresh failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.debounce.Stop()
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.WithError(err).Error("Refresh failed")
			}
		}
	}
}

// Markets returns the filtered, sorted view for query together with the
// active sort chain. The composed result is memoized until the records,
// the query or the chain change.
func (s *Service) Markets(query string) ([]models.MarketRecord, []SortKey) {
	s.mu.RLock()
	records := s.records
	generation := s.generation
	result := s.view.Apply(records, generation, query, s.fields, s.sorter)
	chain := s.sorter.Chain()
	s.mu.RUnlock()
	return result, chain
}

// ToggleSort advances the toggle ring for field and returns the new chain.
func (s *Service) ToggleSort(field SortField) []SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sorter.Toggle(field)
	return s.sorter.Chain()
}

// ClearSorts resets the chain to the configured default.
func (s *Service) ClearSorts() []SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sorter.Clear()
	return s.sorter.Chain()
}

// Depth fetches and analyzes the order book for one market. The snapshot
// is fetched on demand and never cached.
func (s *Service) Depth(ctx context.Context, tickerID string) (*models.DepthSnapshot, *models.DepthAnalysis, error) {
	tickerID = strings.TrimSpace(tickerID)
	if tickerID == "" {
		return nil, nil, &UserInputError{Msg: "market identifier is required"}
	}

	snap, err := s.client.FetchDepth(ctx, tickerID)
	if err != nil {
		return nil, nil, err
	}
	analysis := AnalyzeDepth(snap)
	return snap, &analysis, nil
}

// RefreshedAt reports when the current record set was assembled; zero
// before the first successful refresh.
func (s *Service) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
