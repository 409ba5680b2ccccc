package main

import (
	"context"
	"errors"
	"log"
	"os"

	"tableflip.dev/jot/pkg/commands"
	"tableflip.dev/jot/pkg/nav"
)

func main() {
	if err := commands.New().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, nav.ErrJournalNotFound) {
			os.Exit(1)
		}
		log.Fatalf("error during command execution: %v", err)
	}
}
