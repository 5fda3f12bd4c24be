package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/doccatalog/internal/logging"
	"github.com/dmitrijs2005/doccatalog/internal/server"
	"github.com/dmitrijs2005/doccatalog/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stdout, "json", cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
