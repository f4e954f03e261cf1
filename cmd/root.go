package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"buildmart.GO/client"
	"buildmart.GO/config"
)

var rootCmd = &cobra.Command{
	Use:   "buildmart",
	Short: "BuildMart storefront and back-office CLI",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// ASCII banner (random font each run)
		fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
		fig := figure.NewFigure("BuildMart ->", fonts[rand.Intn(len(fonts))], true)
		fig.Print()
		fmt.Println("Hardware & construction store CLI")
		_ = cmd.Help()
	},
}

// Execute runs the root command after applying registered extensions.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient builds the shared SDK client from AppConfig with the persistent
// file token store, so every command reuses the saved session.
func newClient() *client.Client {
	config.LoadAppConfig()
	opts := client.Options{
		BaseURL: config.AppConfig.APIBaseURL,
		Timeout: config.AppConfig.Timeout,
		Debug:   config.AppConfig.Debug,
	}
	if store, err := client.NewFileTokenStore(config.AppConfig.TokenFile); err == nil {
		opts.TokenStore = store
	} else {
		fmt.Printf("Warning: session persistence unavailable: %v\n", err)
	}
	return client.New(opts)
}

// fail prints an API error in a consistent shape and exits non-zero.
func fail(err error) {
	if apiErr, ok := client.AsAPIError(err); ok {
		fmt.Printf("Error: %s (status %d", apiErr.Message, apiErr.Status)
		if apiErr.Code != "" {
			fmt.Printf(", code %s", apiErr.Code)
		}
		if apiErr.Field != "" {
			fmt.Printf(", field %s", apiErr.Field)
		}
		fmt.Println(")")
	} else {
		fmt.Printf("Error: %v\n", err)
	}
	os.Exit(1)
}
