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
		log.Fatalf("bootstrap api runtime: %v", err)
	}
	if err := runtime.RunAPI(ctx); err != nil {
		log.Fatalf("run api: %v", err)
	}
}
