package main

import (
	"context"
	"log"

	"github.com/dalemusser/waffle/app"
	"github.com/tnorman/wayfarer/internal/app/bootstrap"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
