package main

import (
	"context"
	"log"

	"github.com/Apurer/go-vehicle-catalog/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("vehicle catalog API failed: %v", err)
	}
}
