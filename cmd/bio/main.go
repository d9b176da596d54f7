package main

import (
	"log"

	"github.com/MrSnakeDoc/bio/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ bio failed to start: %v", err)
	}
}
