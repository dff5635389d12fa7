package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quoteMode string

var quoteCmd = &cobra.Command{
	Use:   "quote EXCHANGE:SYMBOL [EXCHANGE:SYMBOL...]",
	Short: "Fetch market quotes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		switch quoteMode {
		case "ltp":
			quotes, err := client.LTP(ctx, args...)
			if err != nil {
				return err
			}
			for symbol, q := range quotes {
				fmt.Printf("%-20s %12.2f\n", symbol, q.LastPrice)
			}
		case "ohlc":
			quotes, err := client.OHLCQuotes(ctx, args...)
			if err != nil {
				return err
			}
			for symbol, q := range quotes {
				fmt.Printf("%-20s last %10.2f  o %10.2f  h %10.2f  l %10.2f  c %10.2f\n",
					symbol, q.LastPrice, q.OHLC.Open, q.OHLC.High, q.OHLC.Low, q.OHLC.Close)
			}
		case "full":
			quotes, err := client.Quote(ctx, args...)
			if err != nil {
				return err
			}
			for symbol, q := range quotes {
				fmt.Printf("%-20s last %10.2f  vol %12d  buy %10d  sell %10d\n",
					symbol, q.LastPrice, q.Volume, q.BuyQuantity, q.SellQuantity)
			}
		default:
			return fmt.Errorf("unknown mode %q, want full, ohlc or ltp", quoteMode)
		}
		return nil
	},
}

func init() {
	quoteCmd.Flags().StringVar(&quoteMode, "mode", "full", "quote depth: full, ohlc or ltp")
	rootCmd.AddCommand(quoteCmd)
}
