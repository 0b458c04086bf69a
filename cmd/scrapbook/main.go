package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"scrapbook/internal/cli"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCommand()
	rootCmd.SetContext(ctx)

	code := cli.Execute(rootCmd, os.Args[1:])
	stop()
	os.Exit(code)
}
