package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	adminApi "buildmart.GO/api/admin"
	authApi "buildmart.GO/api/auth"
	"buildmart.GO/client"
)

// sdkClient builds a client straight from the environment. The jobs package
// cannot use config (config declares the job map), so it reads env itself.
func sdkClient() *client.Client {
	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}
	opts := client.Options{BaseURL: baseURL}
	store, err := client.NewFileTokenStore(os.Getenv("TOKEN_FILE"))
	if err != nil {
		log.Printf("jobs: token store unavailable: %v", err)
	} else {
		opts.TokenStore = store
	}
	return client.New(opts)
}

// RefreshTokenJob rotates the persisted session token so long-running
// sessions do not expire between CLI invocations. No-op when logged out.
func RefreshTokenJob(args ...string) {
	c := sdkClient()
	if c.Token() == "" {
		log.Println("token refresh: no active session, skipping")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := authApi.New(c).Refresh(ctx); err != nil {
		log.Printf("token refresh failed: %v", err)
		return
	}
	log.Println("token refresh: session renewed")
}

// LowStockReportJob pulls the low-stock report and writes it next to the
// other reports (REPORTS_DIR, default ./reports). Needs an admin session.
func LowStockReportJob(args ...string) {
	c := sdkClient()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	products, err := adminApi.New(c).LowStock(ctx, 0)
	if err != nil {
		log.Printf("low-stock report failed: %v", err)
		return
	}

	dir := os.Getenv("REPORTS_DIR")
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("low-stock report: %v", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("low-stock-%s.csv", time.Now().Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		log.Printf("low-stock report: %v", err)
		return
	}
	defer f.Close()

	fmt.Fprintln(f, "sku,name,stock_quantity")
	for _, p := range products {
		fmt.Fprintf(f, "%s,%s,%d\n", p.SKU, p.Name, p.StockQuantity)
	}
	log.Printf("low-stock report: %d products -> %s", len(products), path)
}
