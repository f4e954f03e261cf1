// Standalone dev backend — run with: go run ./cmd/devserver
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"

	_ "buildmart.GO/custom"

	"buildmart.GO/config"
	"buildmart.GO/devserver"
)

func main() {
	_ = godotenv.Load()
	config.LoadAppConfig()
	config.InitRedis()

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("db:", err)
	}
	if err := devserver.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	if err := devserver.Seed(db); err != nil {
		log.Fatal("seed:", err)
	}

	s := devserver.New(db)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	fig := figure.NewFigure("BuildMart API ->", fonts[rand.Intn(len(fonts))], true)
	fig.Print()
	fmt.Println("Standalone dev backend")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("API at http://localhost:%s/api", port)
	log.Fatal(s.Start(port))
}
