package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"taskKeeper/internal/app"
	"taskKeeper/internal/config"
)

func main() {
	configPath := flag.String("config", "", "путь к config.yml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "конфигурация:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	application, err := app.New(cfg).Init(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "инициализация:", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		os.Exit(1)
	}
}
