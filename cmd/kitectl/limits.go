package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/kite/ratelimit"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show rate limiter state and request counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		stats := client.RateLimiterStats()
		fmt.Printf("rate limiting enabled: %v\n", stats.Enabled)
		fmt.Printf("requests dispatched:   %d\n\n", client.RequestCount())

		categories := make([]ratelimit.Category, 0, len(stats.Categories))
		for c := range stats.Categories {
			categories = append(categories, c)
		}
		sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

		fmt.Printf("%-12s %8s %8s\n", "CATEGORY", "CEILING", "COUNT")
		for _, c := range categories {
			cs := stats.Categories[c]
			fmt.Printf("%-12s %7d/s %8d\n", c, cs.RequestsPerSecond, cs.RequestCount)
		}

		cacheStats := client.CacheStats()
		fmt.Printf("\ncache: enabled=%v entries=%d hits=%d misses=%d\n",
			cacheStats.Enabled, cacheStats.Entries, cacheStats.Hits, cacheStats.Misses)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}
