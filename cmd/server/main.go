package main

import (
	"log"

	"github.com/w24010/Mapmoments/internal/transport/http"
)

func main() {
	if err := http.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
