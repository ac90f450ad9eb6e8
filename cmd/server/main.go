package main

import (
	"context"
	"log"

	"github.com/anvitha-acharya/DevOrgs/internal/server"
	"github.com/anvitha-acharya/DevOrgs/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
