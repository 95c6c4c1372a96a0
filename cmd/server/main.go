// Command server runs the FixNote HTTP API and Telegram bot in one process.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/heartmarshall/fixnote-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
