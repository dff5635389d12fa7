package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List the day's order book",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		orders, err := client.Orders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("no orders today")
			return nil
		}

		fmt.Printf("%-18s %-16s %-5s %-8s %8s %10s %-10s\n",
			"ORDER ID", "SYMBOL", "SIDE", "TYPE", "QTY", "PRICE", "STATUS")
		for _, o := range orders {
			fmt.Printf("%-18s %-16s %-5s %-8s %8d %10.2f %-10s\n",
				o.OrderID, o.Tradingsymbol, o.TransactionType, o.OrderType,
				o.Quantity, o.Price, o.Status)
		}
		return nil
	},
}

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List the day's executions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		trades, err := client.Trades(cmd.Context())
		if err != nil {
			return err
		}
		if len(trades) == 0 {
			fmt.Println("no trades today")
			return nil
		}

		fmt.Printf("%-18s %-16s %-5s %8s %10s\n",
			"TRADE ID", "SYMBOL", "SIDE", "QTY", "PRICE")
		for _, t := range trades {
			fmt.Printf("%-18s %-16s %-5s %8d %10.2f\n",
				t.TradeID, t.Tradingsymbol, t.TransactionType, t.Quantity, t.AveragePrice)
		}
		return nil
	},
}

var cancelOrderCmd = &cobra.Command{
	Use:   "cancel VARIETY ORDER_ID",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		orderID, err := client.CancelOrder(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("cancelled %s\n", orderID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(tradesCmd)
	rootCmd.AddCommand(cancelOrderCmd)
}
