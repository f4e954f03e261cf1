package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	adminApi "buildmart.GO/api/admin"
	"buildmart.GO/crud"
	"buildmart.GO/model"
)

var (
	exportFormat   string
	exportResource string
	importResource string
	importUpdate   bool
	importSkip     bool
	lowStockLimit  int
)

var adminExportCmd = &cobra.Command{
	Use:   "admin:export",
	Short: "Export an admin resource to a file (csv, json or excel)",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		svc := crud.New[model.AdminProduct](c.BaseURL(), exportResource, c.Token)
		result := svc.Export(context.Background(), exportFormat, nil)
		if !result.Success {
			fmt.Printf("Export failed: %s\n", result.Error)
			os.Exit(1)
		}
		if err := os.WriteFile(result.Filename, result.Data, 0644); err != nil {
			fmt.Printf("Export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %s -> %s (%d bytes)\n", exportResource, result.Filename, len(result.Data))
	},
}

var adminImportCmd = &cobra.Command{
	Use:   "admin:import <file>",
	Short: "Import an admin resource from a data file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fail(err)
		}
		defer f.Close()

		c := newClient()
		svc := crud.New[model.AdminProduct](c.BaseURL(), importResource, c.Token)
		result := svc.Import(context.Background(), args[0], f, crud.ImportOptions{
			UpdateExisting: importUpdate,
			SkipErrors:     importSkip,
		})
		if !result.Success {
			fmt.Printf("Import failed: %s\n", result.Error)
			os.Exit(1)
		}
		if summary := result.Data; summary != nil {
			fmt.Printf("Imported: %d succeeded, %d failed\n", summary.Success, summary.Failed)
			for _, e := range summary.Errors {
				fmt.Println("  " + e)
			}
		} else {
			fmt.Println("Import done")
		}
	},
}

var adminLowStockCmd = &cobra.Command{
	Use:   "admin:lowstock",
	Short: "List products at or below the low-stock threshold",
	Run: func(cmd *cobra.Command, args []string) {
		c := newClient()
		products, err := adminApi.New(c).LowStock(context.Background(), lowStockLimit)
		if err != nil {
			fail(err)
		}
		for _, p := range products {
			fmt.Printf("%-14s %-40s stock=%d\n", p.SKU, p.Name, p.StockQuantity)
		}
		fmt.Printf("%d products low on stock\n", len(products))
	},
}

func init() {
	adminExportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv, json or excel")
	adminExportCmd.Flags().StringVar(&exportResource, "resource", "products", "Resource to export")
	adminImportCmd.Flags().StringVar(&importResource, "resource", "products", "Resource to import into")
	adminImportCmd.Flags().BoolVar(&importUpdate, "update-existing", false, "Update rows that already exist")
	adminImportCmd.Flags().BoolVar(&importSkip, "skip-errors", false, "Keep going past bad rows")
	adminLowStockCmd.Flags().IntVar(&lowStockLimit, "threshold", 0, "Stock threshold (backend default when 0)")
	rootCmd.AddCommand(adminExportCmd)
	rootCmd.AddCommand(adminImportCmd)
	rootCmd.AddCommand(adminLowStockCmd)
}
