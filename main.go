package main

import (
	"github.com/vulnlab/socialsite/config"
	"github.com/vulnlab/socialsite/routes"
	"github.com/vulnlab/socialsite/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(cfg)

	if cfg.Insecure {
		utils.Sugar.Warn("INSECURE mode is ON: content sanitization disabled, stored XSS is possible")
	}

	r := routes.SetupRouter(db, cfg)

	utils.Sugar.Infof("Starting server on port %s (insecure=%v, graceful)", cfg.AppPort, cfg.Insecure)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
