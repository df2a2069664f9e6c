package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/personadesk/internal/server"
	"github.com/dmitrijs2005/personadesk/internal/server/config"
)

func main() {

	ctx := context.Background()
	logger := server.NewDefaultLogger()

	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "CRITICAL: cannot start reel proxy", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "reel proxy failed", "error", err)
		os.Exit(1)
	}

}
