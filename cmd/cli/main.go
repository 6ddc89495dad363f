package main

import (
	"context"

	"github.com/DorLamesh/devops-web-app/internal/client/cli"
	"github.com/DorLamesh/devops-web-app/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
