package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"timeguard/internal/cli"
)

func main() {
	// Values from .env never override the real environment
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}
