package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/nikolayk812/artisan-shop/internal/app"
	"github.com/nikolayk812/artisan-shop/internal/config"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("c", "artisan.yml", "config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication(cfg)
	defer application.Close()

	if err := application.Init(ctx); err != nil {
		return fmt.Errorf("application.Init: %w", err)
	}

	if err := application.Run(ctx); err != nil {
		zap.L().Error("storefront stopped", zap.Error(err))
		return err
	}

	return nil
}
