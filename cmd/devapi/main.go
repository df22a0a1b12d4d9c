package main

import (
	"log"
	"net/http"

	"github.com/josei-decelis/sistema-ventas-cli/internal/config"
	"github.com/josei-decelis/sistema-ventas-cli/internal/devapi"
)

func main() {
	cfg := config.Load()

	db := devapi.Connect(cfg.DatabaseDSN)
	defer db.Close()

	devapi.Migrate(db)
	devapi.Seed(db)

	handler := devapi.New(db)

	log.Printf("sistema-ventas dev API starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
