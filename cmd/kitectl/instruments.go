package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/instruments"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Manage the local instrument master",
}

var instrumentsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Download the instrument dump and rebuild the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		store, err := instruments.OpenStore(cfg.Instruments.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		refresher := instruments.NewRefresher(client, store, cfg.Instruments.Exchanges, slog.Default())
		if err := refresher.Refresh(cmd.Context()); err != nil {
			return err
		}

		count, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("instrument store rebuilt, %d instruments\n", count)
		return nil
	},
}

var instrumentsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the scheduled instrument refresher until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Instruments.RefreshSchedule == "" {
			return fmt.Errorf("instruments.refresh_schedule is not configured")
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		store, err := instruments.OpenStore(cfg.Instruments.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		refresher := instruments.NewRefresher(client, store, cfg.Instruments.Exchanges, slog.Default())
		scheduler := instruments.NewScheduler(refresher, cfg.Instruments.RefreshSchedule, slog.Default())
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		slog.Info("instrument refresher running", "schedule", cfg.Instruments.RefreshSchedule)
		<-ctx.Done()
		return nil
	},
}

var instrumentsLookupCmd = &cobra.Command{
	Use:   "lookup EXCHANGE SYMBOL",
	Short: "Look up a single instrument by exchange and trading symbol",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := instruments.OpenStore(cfg.Instruments.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		inst, err := store.Lookup(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if inst == nil {
			return fmt.Errorf("no instrument %s:%s in local store", args[0], args[1])
		}
		printInstrument(inst)
		return nil
	},
}

var instrumentsSearchCmd = &cobra.Command{
	Use:   "search PREFIX",
	Short: "Search instruments by trading symbol prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := instruments.OpenStore(cfg.Instruments.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := store.Search(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}

		fmt.Printf("%-12s %-8s %-24s %-6s %-12s\n",
			"TOKEN", "EXCH", "SYMBOL", "TYPE", "SEGMENT")
		for i := range results {
			inst := &results[i]
			fmt.Printf("%-12d %-8s %-24s %-6s %-12s\n",
				inst.InstrumentToken, inst.Exchange, inst.Tradingsymbol,
				inst.InstrumentType, inst.Segment)
		}
		return nil
	},
}

func printInstrument(inst *instruments.Instrument) {
	fmt.Printf("token:       %d\n", inst.InstrumentToken)
	fmt.Printf("exchange:    %s\n", inst.Exchange)
	fmt.Printf("symbol:      %s\n", inst.Tradingsymbol)
	fmt.Printf("name:        %s\n", inst.Name)
	fmt.Printf("type:        %s\n", inst.InstrumentType)
	fmt.Printf("segment:     %s\n", inst.Segment)
	fmt.Printf("lot size:    %d\n", inst.LotSize)
	fmt.Printf("tick size:   %g\n", inst.TickSize)
	if inst.Expiry != "" {
		fmt.Printf("expiry:      %s\n", inst.Expiry)
	}
	if inst.Strike != 0 {
		fmt.Printf("strike:      %g\n", inst.Strike)
	}
}

func init() {
	instrumentsSearchCmd.Flags().Int("limit", 20, "maximum number of results")
	instrumentsCmd.AddCommand(instrumentsRefreshCmd)
	instrumentsCmd.AddCommand(instrumentsWatchCmd)
	instrumentsCmd.AddCommand(instrumentsLookupCmd)
	instrumentsCmd.AddCommand(instrumentsSearchCmd)
	rootCmd.AddCommand(instrumentsCmd)
}
