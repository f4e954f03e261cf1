package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	catalogApi "buildmart.GO/api/catalog"
	"buildmart.GO/model"
)

var (
	productsPage     int
	productsLimit    int
	productsCategory string
	productsSearch   string
)

var productsCmd = &cobra.Command{
	Use:   "catalog:products",
	Short: "List catalog products",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		api := catalogApi.New(c)
		opts := catalogApi.ListOptions{Page: productsPage, Limit: productsLimit, Search: productsSearch}
		ctx := context.Background()

		if productsCategory != "" {
			pl, err := api.ProductsByCategory(ctx, productsCategory, opts)
			if err != nil {
				fail(err)
			}
			printProducts(pl.Products, pl.Total)
			return
		}
		pl, err := api.Products(ctx, opts)
		if err != nil {
			fail(err)
		}
		printProducts(pl.Products, pl.Total)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "catalog:categories",
	Short: "List catalog categories",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		categories, err := catalogApi.New(c).Categories(context.Background())
		if err != nil {
			fail(err)
		}
		for _, cat := range categories {
			fmt.Printf("%-30s %-30s %d products\n", cat.Name, cat.Slug, cat.ProductCount)
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "catalog:search <term>",
	Short: "Search the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		pl, err := catalogApi.New(c).Search(context.Background(), args[0], catalogApi.ListOptions{Limit: productsLimit})
		if err != nil {
			fail(err)
		}
		printProducts(pl.Products, pl.Total)
	},
}

func printProducts(products []model.Product, total int) {
	for _, p := range products {
		price := p.Price
		if p.SpecialPrice != nil {
			price = *p.SpecialPrice
		}
		fmt.Printf("%-14s %-40s %10.2f  stock=%d\n", p.SKU, p.Name, price, p.StockQuantity)
	}
	fmt.Printf("%d of %d products\n", len(products), total)
}

func init() {
	productsCmd.Flags().IntVar(&productsPage, "page", 1, "Page number")
	productsCmd.Flags().IntVar(&productsLimit, "limit", 20, "Page size")
	productsCmd.Flags().StringVar(&productsCategory, "category", "", "Filter by category slug")
	productsCmd.Flags().StringVar(&productsSearch, "search", "", "Filter by search term")
	searchCmd.Flags().IntVar(&productsLimit, "limit", 20, "Max results")
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(searchCmd)
}
