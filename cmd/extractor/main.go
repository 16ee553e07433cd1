package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Davidamascen07/Projeto-extractor-ocr/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
