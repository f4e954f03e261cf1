package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	ordersApi "buildmart.GO/api/orders"
)

var (
	ordersPage   int
	ordersLimit  int
	ordersStatus string
)

var ordersListCmd = &cobra.Command{
	Use:   "orders:list",
	Short: "List your orders",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		list, err := ordersApi.New(c).List(context.Background(), ordersApi.ListOptions{
			Page:   ordersPage,
			Limit:  ordersLimit,
			Status: ordersStatus,
		})
		if err != nil {
			fail(err)
		}
		for _, o := range list.Orders {
			fmt.Printf("%-20s %-12s %10.2f  %s\n", o.Number, o.Status, o.Total, o.CreatedAt)
		}
		fmt.Printf("%d of %d orders\n", len(list.Orders), list.Total)
	},
}

var ordersTrackCmd = &cobra.Command{
	Use:   "orders:track <order-id>",
	Short: "Show an order's fulfilment history",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		events, err := ordersApi.New(c).Track(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		for _, e := range events {
			line := fmt.Sprintf("%-22s %-12s", e.Timestamp, e.Status)
			if e.Note != "" {
				line += "  " + e.Note
			}
			fmt.Println(line)
		}
	},
}

func init() {
	ordersListCmd.Flags().IntVar(&ordersPage, "page", 1, "Page number")
	ordersListCmd.Flags().IntVar(&ordersLimit, "limit", 20, "Page size")
	ordersListCmd.Flags().StringVar(&ordersStatus, "status", "", "Filter by status")
	rootCmd.AddCommand(ordersListCmd)
	rootCmd.AddCommand(ordersTrackCmd)
}
