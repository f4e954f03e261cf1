package custom

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"buildmart.GO/cmd"
	"buildmart.GO/cron"
	"buildmart.GO/devserver"
)

func init() {
	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			fmt.Println("Hello from custom command")
		},
	})

	// Cron job
	cron.Register("customping", "@every 1m", func(args ...string) {
		fmt.Println("Custom cron: ping at", args)
	})

	// Dev server route
	devserver.RegisterModule(func(s *devserver.Server, g *echo.Group) {
		g.GET("/custom/ping", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"pong": "ok"})
		})
	})
}
