package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/viralforge/mesh/services/data-ai/M26-video-generation-gateway/internal/app/bootstrap"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/default.yaml"
	}

	ctx := context.Background()
	runtime, err := bootstrap.NewRuntime(ctx, configPath)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	if err := runtime.Run(ctx); err != nil {
		slog.Error("runtime exited", "error", err)
		os.Exit(1)
	}
}
