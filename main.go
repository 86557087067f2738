package main

import (
	"github.com/joho/godotenv"

	"soldash/internal/cli"
)

func main() {
	// Optional; configuration also comes from SOLDASH_* env vars and the config file.
	_ = godotenv.Load()

	cli.Execute()
}
