package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gregtusar/marketlens/api"
	"github.com/gregtusar/marketlens/internal/config"
	"github.com/gregtusar/marketlens/pkg/exchange"
	"github.com/gregtusar/marketlens/pkg/screener"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	logger  *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "marketlens",
		Short: "Ranked cryptocurrency market screener",
		Long:  `Pulls pair and summary data from an exchange, derives spread and liquidity ratings, and serves a searchable, sortable market view`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the screener API server with periodic refresh",
		Run:   runServe,
	}

	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Print the ranked market table once and exit",
		Run:   runTop,
	}
	topCmd.Flags().String("query", "", "filter markets by substring")
	topCmd.Flags().Int("limit", 25, "number of markets to print")

	rootCmd.AddCommand(serveCmd, topCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *screener.Service) {
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	client := exchange.NewHTTPClient(
		cfg.Exchange.BaseURL,
		time.Duration(cfg.Exchange.TimeoutSeconds)*time.Second,
		cfg.Exchange.RequestsPerSec,
		cfg.Exchange.DepthLimit,
		logger,
	)

	service := screener.NewService(client, logger, screener.Options{
		MaxSortKeys:   cfg.Screener.MaxSortKeys,
		DefaultSort:   screener.ParseSortKeys(cfg.Screener.DefaultSort),
		SearchFields:  screener.ParseFilterFields(cfg.Screener.SearchFields),
		DebounceDelay: time.Duration(cfg.Screener.DebounceMS) * time.Millisecond,
	})

	return cfg, service
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, service := setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go service.Run(ctx, time.Duration(cfg.Screener.RefreshInterval)*time.Second)

	apiServer := api.NewServer(service, logger, fmt.Sprintf("%d", cfg.Server.Port))
	go func() {
		if err := apiServer.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start API server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("marketlens is running. Press Ctrl+C to stop.")

	<-sigChan
	logger.Info("Received shutdown signal")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("API server shutdown failed")
	}

	logger.Info("marketlens stopped")
}

func runTop(cmd *cobra.Command, args []string) {
	_, service := setup()

	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := service.Refresh(ctx); err != nil {
		logger.WithError(err).Fatal("Refresh failed")
	}

	markets, _ := service.Markets(query)
	if limit > 0 && len(markets) > limit {
		markets = markets[:limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAIR\tLAST\tVOLUME 24H\tBID\tASK\tSPREAD %\tLIQ")
	for _, m := range markets {
		fmt.Fprintf(w, "%s\t%.8g\t%.8g\t%s\t%s\t%s\t%s\n",
			m.Pair, m.LastPrice, m.Volume24h,
			formatOptional(m.HighestBid), formatOptional(m.LowestAsk),
			formatOptional(m.Spread), m.Liquidity.Emoji())
	}
	w.Flush()
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.6g", *v)
}
