package main

import (
	"context"
	"log"
	"os"

	"github.com/arceusss10/sports-news-dashboard/internal/app/bootstrap"
)

func main() {
	ctx := context.Background()
	configPath := "configs/default.yaml"
	if override := os.Getenv("CONFIG_PATH"); override != "" {
		configPath = override
	}
	runtime, err := bootstrap.NewRuntime(ctx, configPath)
	if err != nil {
		log.Fatalf("bootstrap worker runtime: %v", err)
	}
	if err := runtime.RunWorker(ctx); err != nil {
		log.Fatalf("run worker: %v", err)
	}
}
