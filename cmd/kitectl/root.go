package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/config"
	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/credentials"
	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/kite"
	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/kite/cache"
	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/telemetry/logging"
	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kitectl",
	Short: "Command line client for the Kite Connect trading API",
	Long: `Kitectl drives the Kite Connect REST API from the terminal: login flow,
quotes, portfolio, order book and a locally persisted instrument master.

All requests run through the library's rate-limited, retrying pipeline, so
the tool is safe to script against the live service.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the config file with environment overrides and installs
// the configured logger as the process default.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return cfg, nil
}

// newClient builds the API client from configuration. It wires the token
// file watcher when one is configured and starts the metrics endpoint when
// enabled.
func newClient(cfg *config.Config) (*kite.Client, error) {
	opts := kite.Options{
		AccessToken:         cfg.Credentials.AccessToken,
		BaseURL:             cfg.Client.BaseURL,
		Timeout:             cfg.Client.Timeout,
		DisableRateLimiting: !cfg.RateLimiting.IsEnabled(),
		Logger:              slog.Default(),
		Retry: &kite.RetryPolicy{
			MaxRetries:         cfg.Retry.MaxRetries,
			BaseDelay:          cfg.Retry.BaseDelay,
			MaxDelay:           cfg.Retry.MaxDelay,
			ExponentialBackoff: cfg.Retry.BackoffEnabled(),
			RetryWrites:        cfg.Retry.RetryWrites,
		},
	}

	if cfg.Cache != nil {
		opts.Cache = &cache.Options{
			Enabled: true,
			TTL:     cfg.Cache.TTL,
			MaxSize: cfg.Cache.MaxEntries,
		}
	}

	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector(cfg.Metrics.Namespace, nil)
		opts.Metrics = collector
		if cfg.Metrics.ListenAddress != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			go func() {
				if err := http.ListenAndServe(cfg.Metrics.ListenAddress, mux); err != nil {
					slog.Error("metrics endpoint failed", "error", err)
				}
			}()
		}
	}

	client, err := kite.NewClient(cfg.Credentials.APIKey, opts)
	if err != nil {
		return nil, err
	}

	if cfg.Credentials.TokenFile != "" {
		src, err := credentials.NewFileSource(cfg.Credentials.TokenFile, slog.Default())
		if err != nil {
			return nil, err
		}
		client.SetAccessToken(src.Token())
		src.OnChange(client.SetAccessToken)
	}
	return client, nil
}
