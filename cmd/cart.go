package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cartApi "buildmart.GO/api/cart"
	"buildmart.GO/model"
)

var addQuantity int

var cartShowCmd = &cobra.Command{
	Use:   "cart:show",
	Short: "Show the current cart",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		cart, err := cartApi.New(c).Get(context.Background())
		if err != nil {
			fail(err)
		}
		printCart(cart)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "cart:add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		cart, err := cartApi.New(c).Add(context.Background(), model.AddToCartInput{
			ProductID: args[0],
			Quantity:  addQuantity,
		})
		if err != nil {
			fail(err)
		}
		printCart(cart)
	},
}

func printCart(cart *model.Cart) {
	if len(cart.Items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, item := range cart.Items {
		fmt.Printf("%-14s %-40s x%-3d %10.2f\n", item.SKU, item.Name, item.Quantity, item.Subtotal)
	}
	fmt.Printf("Subtotal: %.2f\nTotal:    %.2f\n", cart.Subtotal, cart.Total)
}

func init() {
	cartAddCmd.Flags().IntVarP(&addQuantity, "quantity", "q", 1, "Quantity to add")
	rootCmd.AddCommand(cartShowCmd)
	rootCmd.AddCommand(cartAddCmd)
}
