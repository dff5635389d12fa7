package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "List demat holdings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		holdings, err := client.Holdings(cmd.Context())
		if err != nil {
			return err
		}
		if len(holdings) == 0 {
			fmt.Println("no holdings")
			return nil
		}

		fmt.Printf("%-16s %-6s %8s %12s %12s %12s\n",
			"SYMBOL", "EXCH", "QTY", "AVG", "LTP", "P&L")
		for _, h := range holdings {
			fmt.Printf("%-16s %-6s %8d %12.2f %12.2f %12.2f\n",
				h.Tradingsymbol, h.Exchange, h.Quantity, h.AveragePrice, h.LastPrice, h.PnL)
		}
		return nil
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List open positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		positions, err := client.Positions(cmd.Context())
		if err != nil {
			return err
		}
		if len(positions.Net) == 0 {
			fmt.Println("no open positions")
			return nil
		}

		fmt.Printf("%-16s %-6s %-6s %8s %12s %12s\n",
			"SYMBOL", "EXCH", "PROD", "QTY", "AVG", "P&L")
		for _, p := range positions.Net {
			fmt.Printf("%-16s %-6s %-6s %8d %12.2f %12.2f\n",
				p.Tradingsymbol, p.Exchange, p.Product, p.Quantity, p.AveragePrice, p.PnL)
		}
		return nil
	},
}

var marginsCmd = &cobra.Command{
	Use:   "margins",
	Short: "Show available funds and margin utilisation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		margins, err := client.Margins(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("equity:    net %12.2f  cash %12.2f  collateral %12.2f\n",
			margins.Equity.Net, margins.Equity.Available.Cash, margins.Equity.Available.Collateral)
		fmt.Printf("commodity: net %12.2f  cash %12.2f  collateral %12.2f\n",
			margins.Commodity.Net, margins.Commodity.Available.Cash, margins.Commodity.Available.Collateral)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(holdingsCmd)
	rootCmd.AddCommand(positionsCmd)
	rootCmd.AddCommand(marginsCmd)
}
