package main

import (
	"context"
	"time"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/app"
)

func main() {
	application := app.New()    // Load config, wire libraries and modules
	wait := application.Start() // Serve HTTP until a termination signal arrives
	<-wait

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application.Stop(ctx) // Drain runs, consumers and the blob store
}
