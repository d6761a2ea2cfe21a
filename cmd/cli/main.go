package main

import (
	"context"
	"log"
	"os"

	"github.com/phoenix-letters/phoenix-go/internal/buildinfo"
	"github.com/phoenix-letters/phoenix-go/internal/client/cli"
	"github.com/phoenix-letters/phoenix-go/internal/client/config"
	"github.com/phoenix-letters/phoenix-go/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, logging.NewDefault())

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
