package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/doccatalog/internal/client/cli"
	"github.com/dmitrijs2005/doccatalog/internal/client/client"
	"github.com/dmitrijs2005/doccatalog/internal/client/config"
	"github.com/dmitrijs2005/doccatalog/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, "text", cfg.LogLevel)

	apiClient, err := client.NewHTTPClient(cfg.BaseURL, client.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	app := cli.NewApp(cfg, apiClient, logger, os.Stdin, os.Stdout)
	app.Run(ctx)

}
