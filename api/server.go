package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gregtusar/marketlens/pkg/exchange"
	"github.com/gregtusar/marketlens/pkg/models"
	"github.com/gregtusar/marketlens/pkg/screener"
	"github.com/sirupsen/logrus"
)

type Server struct {
	service *screener.Service
	logger  *logrus.Logger
	port    string
	httpSrv *http.Server
}

type MarketsResponse struct {
	Markets     []models.MarketRecord `json:"markets"`
	SortChain   []screener.SortKey    `json:"sort_chain"`
	RefreshedAt time.Time             `json:"refreshed_at"`
}

type DepthResponse struct {
	Snapshot *models.DepthSnapshot `json:"snapshot"`
	Analysis *models.DepthAnalysis `json:"analysis"`
}

type SortResponse struct {
	SortChain []screener.SortKey `json:"sort_chain"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewServer(service *screener.Service, logger *logrus.Logger, port string) *Server {
	return &Server{
		service: service,
		logger:  logger,
		port:    port,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/markets", s.handleMarkets)
	mux.HandleFunc("/api/markets/", s.handleDepth)
	mux.HandleFunc("/api/sort", s.handleClearSort)
	mux.HandleFunc("/api/sort/", s.handleToggleSort)
	mux.HandleFunc("/api/refresh", s.handleRefresh)

	s.httpSrv = &http.Server{
		Addr:              ":" + s.port,
		Handler:           corsMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Infof("Starting API server on port %s", s.port)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	markets, chain := s.service.Markets(query)

	s.writeJSON(w, http.StatusOK, MarketsResponse{
		Markets:     markets,
		SortChain:   chain,
		RefreshedAt: s.service.RefreshedAt(),
	})
}

// handleDepth serves GET /api/markets/{ticker}/depth.
func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/markets/")
	tickerID, action, found := strings.Cut(rest, "/")
	if !found || action != "depth" {
		http.NotFound(w, r)
		return
	}

	snap, analysis, err := s.service.Depth(r.Context(), tickerID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, DepthResponse{Snapshot: snap, Analysis: analysis})
}

// handleToggleSort serves POST /api/sort/{field}.
func (s *Server) handleToggleSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/sort/")
	field, ok := screener.ParseSortField(name)
	if !ok {
		s.writeError(w, &screener.UserInputError{Msg: "unknown sort field: " + name})
		return
	}

	chain := s.service.ToggleSort(field)
	s.writeJSON(w, http.StatusOK, SortResponse{SortChain: chain})
}

// handleClearSort serves DELETE /api/sort.
func (s *Server) handleClearSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	chain := s.service.ClearSorts()
	s.writeJSON(w, http.StatusOK, SortResponse{SortChain: chain})
}

// handleRefresh serves POST /api/refresh; repeated clicks are debounced
// into a single exchange round trip.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.service.RequestRefresh(0)
	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var userErr *screener.UserInputError
	var transportErr *exchange.TransportError
	var validationErr *exchange.ValidationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &userErr):
		status = http.StatusBadRequest
	case errors.As(err, &transportErr):
		status = http.StatusBadGateway
		if transportErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
	case errors.As(err, &validationErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("Request failed")
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("Failed to encode JSON response")
	}
}
